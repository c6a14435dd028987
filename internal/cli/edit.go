package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/output"
)

var editCmd = &cobra.Command{
	Use:   "edit XML_CONFIG",
	Short: "Edit the configuration file in an editor",
	Long: `Open the configuration file in an editor, then check that it still
parses.

Uses $EDITOR environment variable or defaults to vi.

Examples:
  qibuild-config edit qibuild.xml
  EDITOR=nano qibuild-config edit qibuild.xml`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

// getEditor returns $EDITOR split into program and arguments, or vi
func getEditor() []string {
	if fields := strings.Fields(os.Getenv("EDITOR")); len(fields) > 0 {
		return fields
	}
	return []string{"vi"}
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]

	editor := getEditor()
	editorPath, err := deps.Executor.LookPath(editor[0])
	if err != nil {
		return fmt.Errorf("editor not found: %s", editor[0])
	}

	output.Info("Opening %s with %s...", path, editor[0])

	editorArgs := append(editor[1:], path)
	if err := deps.Executor.RunInteractive(editorPath, editorArgs...); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	s, err := deps.Store.Load(path)
	if err != nil {
		return fmt.Errorf("%s no longer parses, fix it and run edit again: %w", path, err)
	}

	ides, configs := len(s.IDEs()), len(s.Configs())
	result := newSuccessResult(path, "edited", "")
	result.Message = fmt.Sprintf("%d ides, %d configs", ides, configs)
	return outputResult(result, "%s is valid (%d IDEs, %d build configurations)", path, ides, configs)
}
