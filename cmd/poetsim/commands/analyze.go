// ABOUTME: Analyze command builds or restores author vectors for a corpus
// ABOUTME: Prints a summary of the run backing the vectors
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// analyzeSummary is the structured output of analyze
type analyzeSummary struct {
	RunID       string   `json:"run_id" yaml:"run_id"`
	Fingerprint string   `json:"fingerprint" yaml:"fingerprint"`
	Method      string   `json:"method" yaml:"method"`
	Dimension   int      `json:"dimension" yaml:"dimension"`
	Authors     int      `json:"authors" yaml:"authors"`
	Tokens      int      `json:"tokens" yaml:"tokens"`
	Skipped     []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Cached      bool     `json:"cached" yaml:"cached"`
}

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	flags := &corpusFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <corpus>",
		Short: "Build author vectors for a corpus",
		Long: `Build one vector per author and store it in the result cache.

Later commands on the same corpus and settings reuse the cached vectors.

Examples:
  poetsim analyze poems.tsv
  poetsim analyze --segment --method tfidf poems.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cache, err := openSession(cmd, args[0], flags)
			if err != nil {
				return err
			}
			defer cache.Close()

			run := s.Run()
			summary := analyzeSummary{
				RunID:       run.RunID,
				Fingerprint: run.Fingerprint,
				Method:      run.Method,
				Dimension:   run.Dimension,
				Authors:     run.AuthorCount,
				Tokens:      s.Corpus().TokenCount(),
				Skipped:     run.Skipped,
				Cached:      s.FromCache(),
			}

			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, summary); done {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Run\t%s\n", summary.RunID)
			fmt.Fprintf(w, "Fingerprint\t%s\n", truncate(summary.Fingerprint, 16))
			fmt.Fprintf(w, "Method\t%s\n", summary.Method)
			fmt.Fprintf(w, "Dimension\t%d\n", summary.Dimension)
			fmt.Fprintf(w, "Authors\t%d\n", summary.Authors)
			fmt.Fprintf(w, "Tokens\t%d\n", summary.Tokens)
			if len(summary.Skipped) > 0 {
				fmt.Fprintf(w, "Skipped\t%s\n", strings.Join(summary.Skipped, ", "))
			}
			fmt.Fprintf(w, "Cached\t%t\n", summary.Cached)
			return w.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}
