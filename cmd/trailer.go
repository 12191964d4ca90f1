package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/posterrow/trailer"
)

// trailerCmd represents the trailer command
var trailerCmd = &cobra.Command{
	Use:   "trailer NAME",
	Short: "Resolve the trailer of a movie or show",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrailer,
}

func runTrailer(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	watchURL, err := resolver.Resolve(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("no trailer for %q: %w", name, err)
	}

	videoID, err := trailer.VideoID(watchURL)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n", videoID, watchURL)
	return nil
}
