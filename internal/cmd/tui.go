package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calyptra/rexcraft/internal/recipe"
	"github.com/calyptra/rexcraft/ui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [recipe]",
	Short: "Build and test a pattern interactively",
	Long: `Start the interactive Terminal User Interface for building patterns.

The TUI provides:
- An ordered operation list (add, edit, delete)
- A live preview of the rendered pattern, or the structural error
- A sample tester showing which sample strings the pattern matches

When a recipe file is given, the operation list starts from its lines.

Examples:
  rexcraft tui
  rexcraft tui decimal.rex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	var lines []string
	var savePath string

	fs := afero.NewOsFs()

	if len(args) == 1 {
		savePath = args[0]
		parser := recipe.NewParser(fs)

		var err error
		lines, err = parser.LoadLines(savePath)
		if err != nil {
			return fmt.Errorf("failed to load recipe: %w", err)
		}

		// Reject recipes that do not even parse line by line
		if _, err := recipe.Build(lines); err != nil {
			return fmt.Errorf("invalid recipe: %w", err)
		}
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting TUI with %d operation(s)...\n", len(lines))
	}

	model := ui.NewAppModel(lines, savePath, fs)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
