package cli

import (
	"github.com/dmerejkowsky/qibuild/internal/output"
)

// printIDETable renders the IDEs of view, sorted by name
func printIDETable(view configView) error {
	if len(view.IDEs) == 0 {
		output.Info("No IDEs configured")
		return nil
	}

	headers := []string{"NAME", "PATH"}
	rows := make([][]string, 0, len(view.IDEs))
	for _, ide := range view.IDEs {
		rows = append(rows, []string{ide.Name, ide.Path})
	}
	return output.Table(headers, rows)
}

// printConfigTable renders the build configurations of view, sorted by
// name. The default configuration is marked with a star.
func printConfigTable(view configView) error {
	if len(view.Configs) == 0 {
		output.Info("No build configurations")
		return nil
	}

	headers := []string{"NAME", "GENERATOR", "IDE", "ENV PATH", "BAT FILE"}
	rows := make([][]string, 0, len(view.Configs))
	for _, cfg := range view.Configs {
		name := cfg.Name
		if name == view.Defaults.Config {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			cfg.CMake.Generator,
			cfg.IDE,
			cfg.Env.Path,
			cfg.Env.BatFile,
		})
	}
	return output.Table(headers, rows)
}
