package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/config"
)

// setter applies a validated value to a store
type setter func(s *config.Store, value string) error

// settings maps each key accepted by "set" to its setter
var settings = map[string]setter{
	"build-dir": func(s *config.Store, v string) error {
		s.SetBuildDir(v)
		return nil
	},
	"sdk-dir": func(s *config.Store, v string) error {
		s.SetSDKDir(v)
		return nil
	},
	"env-path": func(s *config.Store, v string) error {
		s.SetDefaultsEnvPath(v)
		return nil
	},
	"incredibuild": func(s *config.Store, v string) error {
		on, err := parseBool(v)
		if err != nil {
			return err
		}
		s.SetIncredibuild(on)
		return nil
	},
	"default-config": func(s *config.Store, v string) error {
		s.SetDefaultConfig(v)
		return nil
	},
	"default-ide": func(s *config.Store, v string) error {
		s.SetDefaultIDE(v)
		return nil
	},
	"default-generator": func(s *config.Store, v string) error {
		s.SetDefaultCMakeGenerator(v)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set XML_CONFIG KEY VALUE",
	Short: "Set a build setting or default",
	Long: `Set one value in a qibuild configuration file. The file and any missing
elements are created as needed.

Keys:
  build-dir           <build build_dir>
  sdk-dir             <build sdk_dir>
  incredibuild        <build incredibuild> (true/false, 1/0, yes/no)
  env-path            <defaults><env path>
  default-config      <defaults config>
  default-ide         <defaults ide>
  default-generator   <defaults><cmake generator>

Examples:
  qibuild-config set qibuild.xml build-dir /path/to/build
  qibuild-config set qibuild.xml incredibuild yes`,
	Args: usageArgs(cobra.ExactArgs(3)),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func settingKeys() []string {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func runSet(cmd *cobra.Command, args []string) error {
	path, key, value := args[0], args[1], args[2]

	apply, ok := settings[key]
	if !ok {
		return &usageError{err: fmt.Errorf("unknown key %q (valid keys: %s)", key, strings.Join(settingKeys(), ", "))}
	}
	if key == "incredibuild" {
		if _, err := parseBool(value); err != nil {
			return &usageError{err: err}
		}
	}

	err := updateStore(cmd, path, func(s *config.Store) error {
		return apply(s, value)
	})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	result := newSuccessResult(path, "set", key)
	result.Message = value
	return outputResult(result, "%s set to %q", key, value)
}
