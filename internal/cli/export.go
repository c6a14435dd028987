package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/logger"
	"github.com/dmerejkowsky/qibuild/internal/output"
)

var exportFile string

var exportCmd = &cobra.Command{
	Use:   "export XML_CONFIG",
	Short: "Dump the configuration as JSON or YAML",
	Long: `Write the whole configuration as JSON (the default) or YAML, to stdout
or to a file.

Examples:
  qibuild-config export qibuild.xml
  qibuild-config export qibuild.xml --yaml -o qibuild.yaml`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "output", "o", "", "Write to FILE instead of stdout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	path := args[0]

	s, err := loadStore(path)
	if err != nil {
		return err
	}
	view := newConfigView(path, s)

	if exportFile != "" {
		f, createErr := os.Create(exportFile)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", exportFile, createErr)
		}
		prev := output.SetOutput(f)
		defer func() {
			output.SetOutput(prev)
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to write %s: %w", exportFile, cerr)
			}
		}()
		logger.Debug("exporting %s to %s", path, exportFile)
	}

	if yamlOutput {
		return output.YAML(view)
	}
	return output.JSON(view)
}
