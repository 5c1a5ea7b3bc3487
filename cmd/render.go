package main

import (
	"fmt"
	"io"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/tui"

	"github.com/spf13/cobra"
)

var (
	renderOwner int64
	renderQuery string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the filtered product table once",
	Example: `  catalog render --owner 2
  catalog render --query app`,
	RunE: func(cmd *cobra.Command, args []string) error {
		browser, closeData, err := openDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeData()
		return renderOnce(cmd.OutOrStdout(), browser, renderOwner, renderQuery)
	},
}

func init() {
	renderCmd.Flags().Int64Var(&renderOwner, "owner", catalog.NoOwner, "show only products whose category belongs to this user id (0 for all)")
	renderCmd.Flags().StringVar(&renderQuery, "query", "", "case-insensitive product name filter")
}

func renderOnce(w io.Writer, b *catalog.Browser, ownerID int64, query string) error {
	state, err := b.StateFor(ownerID, query)
	if err != nil {
		return fmt.Errorf("owner %d: %w", ownerID, err)
	}
	_, err = fmt.Fprintln(w, tui.RenderTable(b.Render(state), tui.DefaultStyles()))
	return err
}
