package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/config"
	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
	"github.com/dmerejkowsky/qibuild/internal/input"
	"github.com/dmerejkowsky/qibuild/internal/output"
)

var forceClear bool

var ideCmd = &cobra.Command{
	Use:   "ide",
	Short: "Manage the registered IDEs",
	Long: `List, add, rename and remove the IDEs of a qibuild configuration file.
IDEs are keyed by name; adding an existing name updates its path.`,
}

var ideListCmd = &cobra.Command{
	Use:     "list XML_CONFIG",
	Aliases: []string{"ls"},
	Short:   "List the registered IDEs",
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runIDEList,
}

var ideAddCmd = &cobra.Command{
	Use:   "add XML_CONFIG NAME [PATH]",
	Short: "Add an IDE or change its path",
	Long: `Register an IDE under NAME. When NAME is already registered its path is
replaced instead of adding a second entry.

Examples:
  qibuild-config ide add qibuild.xml QtCreator /usr/bin/qtcreator
  qibuild-config ide add qibuild.xml "Visual Studio"`,
	Args: usageArgs(cobra.RangeArgs(2, 3)),
	RunE: runIDEAdd,
}

var ideRemoveCmd = &cobra.Command{
	Use:     "remove XML_CONFIG NAME",
	Aliases: []string{"rm"},
	Short:   "Remove an IDE",
	Args:    usageArgs(cobra.ExactArgs(2)),
	RunE:    runIDERemove,
}

var ideRenameCmd = &cobra.Command{
	Use:   "rename XML_CONFIG OLD NEW",
	Short: "Rename an IDE, keeping its path",
	Args:  usageArgs(cobra.ExactArgs(3)),
	RunE:  runIDERename,
}

var ideClearCmd = &cobra.Command{
	Use:   "clear XML_CONFIG",
	Short: "Remove every IDE",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runIDEClear,
}

func init() {
	ideClearCmd.Flags().BoolVarP(&forceClear, "force", "f", false, "Clear without confirmation")

	ideCmd.AddCommand(ideListCmd, ideAddCmd, ideRemoveCmd, ideRenameCmd, ideClearCmd)
	rootCmd.AddCommand(ideCmd)
}

func runIDEList(cmd *cobra.Command, args []string) error {
	path := args[0]

	s, err := loadStore(path)
	if err != nil {
		return err
	}

	view := newConfigView(path, s)
	if ok, err := structured(view.IDEs); ok {
		return err
	}
	return printIDETable(view)
}

func runIDEAdd(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]
	var idePath string
	if len(args) == 3 {
		idePath = args[2]
	}

	var updated bool
	err := updateStore(cmd, path, func(s *config.Store) error {
		_, updated = s.IDE(name)
		return s.AddIDE(config.IDE{Name: name, Path: idePath})
	})
	if err != nil {
		return fmt.Errorf("failed to add ide: %w", err)
	}

	action := "added"
	if updated {
		action = "updated"
	}
	return outputResult(newSuccessResult(path, "ide "+action, name), "IDE %s %s", name, action)
}

func runIDERemove(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	err := updateStore(cmd, path, func(s *config.Store) error {
		return s.RemoveIDE(name)
	})
	if err != nil {
		return fmt.Errorf("failed to remove ide: %w", err)
	}

	return outputResult(newSuccessResult(path, "ide removed", name), "IDE %s removed", name)
}

func runIDERename(cmd *cobra.Command, args []string) error {
	path, oldName, newName := args[0], args[1], args[2]

	err := updateStore(cmd, path, func(s *config.Store) error {
		if _, exists := s.IDE(newName); exists && newName != oldName {
			return apperrors.Validation(fmt.Sprintf("ide %s already exists", newName))
		}
		list := config.NewIDEList(s.IDEs())
		row := list.IndexOf(oldName)
		if row < 0 {
			return apperrors.NotFound("ide", oldName)
		}
		if err := list.SetName(row, newName); err != nil {
			return err
		}
		return list.ApplyTo(s)
	})
	if err != nil {
		return fmt.Errorf("failed to rename ide: %w", err)
	}

	result := newSuccessResult(path, "ide renamed", newName)
	result.Message = "renamed from " + oldName
	return outputResult(result, "IDE %s renamed to %s", oldName, newName)
}

func runIDEClear(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !forceClear {
		output.Print("Remove every IDE from %s? [y/N]: ", path)
		if !input.Confirm(deps.StdinReader) {
			output.Info("Clear cancelled")
			return nil
		}
	}

	var removed int
	err := updateStore(cmd, path, func(s *config.Store) error {
		removed = len(s.IDEs())
		s.ClearIDEs()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear ides: %w", err)
	}

	result := newSuccessResult(path, "ides cleared", "")
	result.Message = fmt.Sprintf("%d removed", removed)
	return outputResult(result, "Removed %d IDEs", removed)
}
