package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/logger"
)

// Exit codes returned by Execute.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var (
	jsonOutput bool
	yamlOutput bool
	verbose    bool
	version    = "dev"

	// errOut receives error messages and usage text
	errOut io.Writer = os.Stderr
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qibuild-config XML_CONFIG",
	Short: "Edit qibuild build-tool configuration files",
	Long: `qibuild-config reads and edits qibuild.xml, the configuration shared by
the qibuild tools: build and SDK directories, IncrediBuild, the registered
IDEs, and named build configurations.

Given only a file, it prints the configuration. Subcommands edit it in place,
keeping every element they do not touch.

Examples:
  qibuild-config ~/.config/qi/qibuild.xml
  qibuild-config set qibuild.xml build-dir /path/to/build
  qibuild-config ide add qibuild.xml QtCreator /usr/bin/qtcreator`,
	Args:              usageArgs(cobra.MaximumNArgs(1)),
	PersistentPreRunE: checkOutputFlags,
	RunE:              runRoot,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return ExitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n\n%s", err, cmd.UsageString())
		return ExitUsage
	}
	_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
	return ExitError
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &usageError{err: errors.New("missing XML_CONFIG argument")}
	}
	return runShow(cmd, args)
}

func checkOutputFlags(cmd *cobra.Command, args []string) error {
	if jsonOutput && yamlOutput {
		return &usageError{err: errors.New("--json and --yaml cannot be used together")}
	}
	return nil
}

// usageError marks a command line the user has to fix; it maps to ExitUsage
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// usageArgs turns argument validation failures into usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
