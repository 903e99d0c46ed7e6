// ABOUTME: Authors command lists the authors in a corpus
// ABOUTME: Shows in-vocabulary and out-of-vocabulary token counts per author
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// authorRow is one line of authors output
type authorRow struct {
	Author string `json:"author" yaml:"author"`
	Tokens int    `json:"tokens" yaml:"tokens"`
	OOV    int    `json:"oov" yaml:"oov"`
}

// NewAuthorsCmd creates the authors command
func NewAuthorsCmd() *cobra.Command {
	flags := &corpusFlags{}

	cmd := &cobra.Command{
		Use:   "authors <corpus>",
		Short: "List authors with token statistics",
		Long: `List every author with a vector, in corpus order.

TOKENS counts tokens found in the embedding vocabulary and OOV counts the
ones that were skipped. For TF-IDF runs OOV counts tokens below the
document frequency cutoff.

Examples:
  poetsim authors poems.tsv
  poetsim authors --format yaml poems.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cache, err := openSession(cmd, args[0], flags)
			if err != nil {
				return err
			}
			defer cache.Close()

			vectors := s.Authors()
			rows := make([]authorRow, len(vectors))
			for i, av := range vectors {
				rows[i] = authorRow{Author: av.Author, Tokens: av.TokenCount, OOV: av.OOVCount}
			}

			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, rows); done {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "AUTHOR\tTOKENS\tOOV\n")
			fmt.Fprintf(w, "------\t------\t---\n")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%d\n", truncate(r.Author, 30), r.Tokens, r.OOV)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !quiet {
				fmt.Fprintf(out, "\nTotal: %d author(s)\n", len(rows))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
