package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docrag/internal/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive search session",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	service, err := newService(cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(service), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
