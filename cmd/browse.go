package main

import (
	"catalog-browser/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		browser, closeData, err := openDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeData()

		_, err = tea.NewProgram(tui.New(browser), tea.WithAltScreen()).Run()
		return err
	},
}
