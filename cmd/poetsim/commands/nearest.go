// ABOUTME: Nearest and rank commands answer author similarity queries
// ABOUTME: Angles are reported in radians alongside the cosine
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/poetsim/internal/models"
)

// nearestResult is the structured output of nearest
type nearestResult struct {
	Author  string  `json:"author" yaml:"author"`
	Nearest string  `json:"nearest" yaml:"nearest"`
	Angle   float64 `json:"angle" yaml:"angle"`
	Cosine  float64 `json:"cosine" yaml:"cosine"`
}

// NewNearestCmd creates the nearest command
func NewNearestCmd() *cobra.Command {
	flags := &corpusFlags{}

	cmd := &cobra.Command{
		Use:   "nearest <corpus> <author>",
		Short: "Find the author who writes most like the given one",
		Long: `Find the author whose vector has the smallest angle to the given author's.

When two authors are equally close, the one appearing first in the corpus wins.

Examples:
  poetsim nearest poems.tsv 李白
  poetsim nearest --format json poems.tsv 杜甫`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cache, err := openSession(cmd, args[0], flags)
			if err != nil {
				return err
			}
			defer cache.Close()

			n, err := s.NearestAuthor(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result := nearestResult{Author: args[1], Nearest: n.Author, Angle: n.Angle, Cosine: n.Cosine}
			if done, err := writeStructured(out, result); done {
				return err
			}

			if quiet {
				_, err = fmt.Fprintln(out, n.Author)
				return err
			}
			_, err = fmt.Fprintf(out, "%s → %s (angle %.4f rad, cosine %.4f)\n", args[1], n.Author, n.Angle, n.Cosine)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// NewRankCmd creates the rank command
func NewRankCmd() *cobra.Command {
	flags := &corpusFlags{}
	var limit int

	cmd := &cobra.Command{
		Use:   "rank <corpus> <author>",
		Short: "Rank other authors by similarity",
		Long: `List the other authors ordered by angle to the given author, closest first.

Examples:
  poetsim rank poems.tsv 李白
  poetsim rank --limit 3 poems.tsv 王维`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(limit, "--limit"); err != nil {
				return err
			}

			s, cache, err := openSession(cmd, args[0], flags)
			if err != nil {
				return err
			}
			defer cache.Close()

			neighbors, err := s.Rank(args[1], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, neighbors); done {
				return err
			}
			return writeNeighborTable(cmd, neighbors)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of authors to show")
	return cmd
}

func writeNeighborTable(cmd *cobra.Command, neighbors []models.Neighbor) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tAUTHOR\tANGLE\tCOSINE\n")
	fmt.Fprintf(w, "-\t------\t-----\t------\n")
	for i, n := range neighbors {
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\n", i+1, truncate(n.Author, 30), n.Angle, n.Cosine)
	}
	return w.Flush()
}
