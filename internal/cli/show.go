package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show XML_CONFIG",
	Short: "Show the whole configuration",
	Long: `Show the build settings, defaults, IDEs and build configurations of a
qibuild configuration file. A missing file shows as an empty configuration.

Examples:
  qibuild-config show qibuild.xml
  qibuild-config show qibuild.xml --json`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	s, err := loadStore(path)
	if err != nil {
		return err
	}

	view := newConfigView(path, s)
	if ok, err := structured(view); ok {
		return err
	}

	output.Print("Configuration: %s", path)
	output.Print("")
	output.Print("Build:")
	output.Print("  Build dir:        %s", orNone(view.BuildDir))
	output.Print("  SDK dir:          %s", orNone(view.SDKDir))
	output.Print("  IncrediBuild:     %s", strconv.FormatBool(view.Incredibuild))
	output.Print("")
	output.Print("Defaults:")
	output.Print("  Config:           %s", orNone(view.Defaults.Config))
	output.Print("  IDE:              %s", orNone(view.Defaults.IDE))
	output.Print("  CMake generator:  %s", orNone(view.Defaults.Generator))
	output.Print("  Env path:         %s", orNone(view.Defaults.EnvPath))
	output.Print("")

	output.Print("IDEs:")
	if err := printIDETable(view); err != nil {
		return err
	}
	output.Print("")
	output.Print("Build configurations:")
	return printConfigTable(view)
}
