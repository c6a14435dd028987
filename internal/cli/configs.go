package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/config"
	"github.com/dmerejkowsky/qibuild/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage named build configurations",
	Long: `List, add and remove the named build configurations of a qibuild
configuration file. Each one has a CMake generator, an environment (extra
PATH entries and a setup script) and the name of the IDE used with it.`,
}

var configListCmd = &cobra.Command{
	Use:     "list XML_CONFIG",
	Aliases: []string{"ls"},
	Short:   "List the build configurations",
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runConfigList,
}

var configAddCmd = &cobra.Command{
	Use:   "add XML_CONFIG NAME",
	Short: "Add a build configuration or change it",
	Long: `Register a build configuration under NAME. When NAME already exists only
the settings given as flags change; the others keep their values.

Examples:
  qibuild-config config add qibuild.xml mingw32 --generator "MinGW Makefiles"
  qibuild-config config add qibuild.xml mingw32 --env-path 'c:\MinGW\bin'
  qibuild-config config add qibuild.xml vs2010 --bat-file vcvarsall.bat --ide "Visual Studio"`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runConfigAdd,
}

var configRemoveCmd = &cobra.Command{
	Use:     "remove XML_CONFIG NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a build configuration",
	Args:    usageArgs(cobra.ExactArgs(2)),
	RunE:    runConfigRemove,
}

// defineConfigAddFlags declares the settings "config add" can change
func defineConfigAddFlags(cmd *cobra.Command) {
	cmd.Flags().String("generator", "", "CMake generator")
	cmd.Flags().String("env-path", "", "Extra PATH entries")
	cmd.Flags().String("bat-file", "", "Environment setup script")
	cmd.Flags().String("ide", "", "Name of the IDE used with this configuration")
}

func init() {
	defineConfigAddFlags(configAddCmd)

	configCmd.AddCommand(configListCmd, configAddCmd, configRemoveCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	path := args[0]

	s, err := loadStore(path)
	if err != nil {
		return err
	}

	view := newConfigView(path, s)
	if ok, err := structured(view.Configs); ok {
		return err
	}
	return printConfigTable(view)
}

// mergeConfigFlags overwrites the fields of cfg whose flag was given
func mergeConfigFlags(cmd *cobra.Command, cfg *config.NamedConfiguration) {
	flags := cmd.Flags()
	for name, field := range map[string]*string{
		"generator": &cfg.CMake.Generator,
		"env-path":  &cfg.Env.Path,
		"bat-file":  &cfg.Env.BatFile,
		"ide":       &cfg.IDE,
	} {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}
}

func runConfigAdd(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	var updated bool
	err := updateStore(cmd, path, func(s *config.Store) error {
		cfg, exists := s.Config(name)
		updated = exists
		cfg.Name = name
		mergeConfigFlags(cmd, &cfg)
		return s.AddConfig(cfg)
	})
	if err != nil {
		return fmt.Errorf("failed to add config: %w", err)
	}

	action := "added"
	if updated {
		action = "updated"
	}
	return outputResult(newSuccessResult(path, "config "+action, name), "Build configuration %s %s", name, action)
}

func runConfigRemove(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	var wasDefault bool
	err := updateStore(cmd, path, func(s *config.Store) error {
		wasDefault = s.DefaultConfig() == name
		return s.RemoveConfig(name)
	})
	if err != nil {
		return fmt.Errorf("failed to remove config: %w", err)
	}

	if wasDefault && !jsonOutput && !yamlOutput {
		output.Warn("%s was the default configuration; run 'qibuild-config set %s default-config NAME'", name, path)
	}
	return outputResult(newSuccessResult(path, "config removed", name), "Build configuration %s removed", name)
}
