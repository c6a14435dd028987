package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
	"github.com/dmerejkowsky/qibuild/internal/output"
)

var openCmd = &cobra.Command{
	Use:   "open XML_CONFIG [CONFIG]",
	Short: "Launch the IDE of a build configuration",
	Long: `Launch the IDE used with CONFIG: the configuration's own ide when set,
else the default IDE. Without CONFIG the default configuration is used.

Examples:
  qibuild-config open qibuild.xml
  qibuild-config open qibuild.xml mingw32`,
	Args: usageArgs(cobra.RangeArgs(1, 2)),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	path := args[0]
	var configName string
	if len(args) == 2 {
		configName = args[1]
	}

	s, err := loadStore(path)
	if err != nil {
		return err
	}

	ide, ok := s.ResolveIDE(configName)
	if !ok {
		if configName == "" {
			configName = s.DefaultConfig()
		}
		return apperrors.Wrap(apperrors.ErrCodeNotFound,
			fmt.Sprintf("no registered IDE for configuration %q", configName), nil)
	}
	if ide.Path == "" {
		return apperrors.WrapName(apperrors.ErrCodeValidation, ide.Name,
			fmt.Errorf("IDE has no path, set one with 'qibuild-config ide add %s %q PATH'", path, ide.Name))
	}

	output.Info("Launching %s...", ide.Name)
	if err := deps.Executor.Start(ide.Path); err != nil {
		return fmt.Errorf("failed to launch %s: %w", ide.Name, err)
	}

	result := newSuccessResult(path, "opened", ide.Name)
	result.Message = ide.Path
	return outputResult(result, "%s started", ide.Name)
}
