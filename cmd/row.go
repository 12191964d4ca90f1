package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/posterrow/row"
)

var (
	rowLarge  bool
	rowTitle  string
	rowFilter string
)

// rowCmd represents the row command
var rowCmd = &cobra.Command{
	Use:   "row FETCH_URL",
	Short: "Fetch one row and print its posters",
	Long: `Fetch a catalog collection, e.g. /trending/all/week, and print the poster
image URL of every item in it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRow,
}

func init() {
	rowCmd.Flags().BoolVarP(&rowLarge, "large", "l", false, "use the large poster layout")
	rowCmd.Flags().StringVarP(&rowTitle, "title", "t", "", "row title")
	rowCmd.Flags().StringVarP(&rowFilter, "filter", "f", "", "filter expression")
}

func runRow(cmd *cobra.Command, args []string) error {
	r, err := row.New(row.Config{
		Title:       rowTitle,
		FetchSource: args[0],
		Large:       rowLarge,
		Filter:      rowFilter,
	}, tmdbClient, resolver, logger, row.WithPosterBaseURL(cfg.Poster.BaseURL))
	if err != nil {
		return err
	}

	if err := r.Mount(cmd.Context()); err != nil {
		return err
	}

	view := r.View()
	if len(view.Posters) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	title := view.Title
	if title == "" {
		title = view.FetchSource
	}
	fmt.Printf("\n%s (%d items)\n", title, len(view.Posters))
	fmt.Println(strings.Repeat("-", 80))

	for _, p := range view.Posters {
		fmt.Printf("%-10d %-40s %s\n", p.Key, p.Alt, p.Src)
	}

	return nil
}
