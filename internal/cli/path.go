package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/logger"
	"github.com/dmerejkowsky/qibuild/internal/output"
	"github.com/dmerejkowsky/qibuild/internal/platform"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the user configuration",
	Long: `Print where the qibuild tools keep the user configuration file,
~/.config/qi/qibuild.xml, and whether it exists yet.

Examples:
  qibuild-config show "$(qibuild-config path)"`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

type pathResult struct {
	Platform   string `json:"platform" yaml:"platform"`
	ConfigDir  string `json:"config_dir" yaml:"config_dir"`
	UserConfig string `json:"user_config" yaml:"user_config"`
	Exists     bool   `json:"exists" yaml:"exists"`
}

func runPath(cmd *cobra.Command, args []string) error {
	paths, err := deps.PlatformDetector.DetectPaths()
	if err != nil {
		return fmt.Errorf("failed to locate user configuration: %w", err)
	}

	result := pathResult{
		Platform:   platform.Platform(),
		ConfigDir:  paths.ConfigDir,
		UserConfig: paths.UserConfig,
		Exists:     paths.Exists(),
	}
	if ok, err := structured(result); ok {
		return err
	}

	output.Print("%s", result.UserConfig)
	if !result.Exists {
		logger.Info("%s does not exist yet", result.UserConfig)
	}
	return nil
}
