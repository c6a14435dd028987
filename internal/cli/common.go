package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/config"
	"github.com/dmerejkowsky/qibuild/internal/output"
)

// configView is the whole configuration as printed by show and export
type configView struct {
	Path         string                      `json:"path" yaml:"path"`
	BuildDir     string                      `json:"build_dir" yaml:"build_dir"`
	SDKDir       string                      `json:"sdk_dir" yaml:"sdk_dir"`
	Incredibuild bool                        `json:"incredibuild" yaml:"incredibuild"`
	Defaults     defaultsView                `json:"defaults" yaml:"defaults"`
	IDEs         []config.IDE                `json:"ides" yaml:"ides"`
	Configs      []config.NamedConfiguration `json:"configs" yaml:"configs"`
}

type defaultsView struct {
	Config    string `json:"config" yaml:"config"`
	IDE       string `json:"ide" yaml:"ide"`
	Generator string `json:"generator" yaml:"generator"`
	EnvPath   string `json:"env_path" yaml:"env_path"`
}

func newConfigView(path string, s *config.Store) configView {
	return configView{
		Path:         path,
		BuildDir:     s.BuildDir(),
		SDKDir:       s.SDKDir(),
		Incredibuild: s.Incredibuild(),
		Defaults: defaultsView{
			Config:    s.DefaultConfig(),
			IDE:       s.DefaultIDE(),
			Generator: s.DefaultCMakeGenerator(),
			EnvPath:   s.DefaultsEnvPath(),
		},
		IDEs:    sortedIDEs(s),
		Configs: sortedConfigs(s),
	}
}

func sortedIDEs(s *config.Store) []config.IDE {
	return config.NewIDEList(s.IDEs()).Rows()
}

func sortedConfigs(s *config.Store) []config.NamedConfiguration {
	configs := make([]config.NamedConfiguration, 0)
	for _, cfg := range s.Configs() {
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})
	return configs
}

// commandContext returns the context of cmd, or Background when cmd is nil
// or was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// loadStore loads the configuration at path
func loadStore(path string) (*config.Store, error) {
	s, err := deps.Store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// updateStore applies fn to the configuration at path and saves it
func updateStore(cmd *cobra.Command, path string, fn func(*config.Store) error) error {
	return deps.Store.Update(commandContext(cmd), path, fn)
}

// structured prints data as JSON or YAML and reports whether it did
func structured(data interface{}) (bool, error) {
	switch {
	case yamlOutput:
		return true, output.YAML(data)
	case jsonOutput:
		return true, output.JSON(data)
	default:
		return false, nil
	}
}

// outputResult handles structured or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if ok, err := structured(data); ok {
		return err
	}
	output.Success(successMsg, args...)
	return nil
}

// parseBool accepts true/false, 1/0 and yes/no in any case
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q (use true/false, 1/0 or yes/no)", value)
	}
}

// orNone renders empty values in human output
func orNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success" yaml:"success"`
	File    string `json:"file" yaml:"file"`
	Action  string `json:"action" yaml:"action"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// newSuccessResult creates a success result
func newSuccessResult(file, action, name string) CommandResult {
	return CommandResult{
		Success: true,
		File:    file,
		Action:  action,
		Name:    name,
	}
}
