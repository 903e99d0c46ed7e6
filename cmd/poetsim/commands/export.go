// ABOUTME: Export command writes author vectors to a file
// ABOUTME: YAML, JSON or Markdown chosen by the output extension
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/poetsim/internal/storage"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	flags := &corpusFlags{}

	cmd := &cobra.Command{
		Use:   "export <corpus> <output>",
		Short: "Export author vectors to YAML, JSON or Markdown",
		Long: `Export the vectors of every author together with the run metadata.

The format is chosen from the output extension: .yaml/.yml, .json or .md.
Markdown exports list token statistics without the vectors.

Examples:
  poetsim export poems.tsv vectors.yaml
  poetsim export --method tfidf poems.tsv vectors.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := args[1]
			if _, err := storage.FormatForPath(output); err != nil {
				return err
			}

			s, cache, err := openSession(cmd, args[0], flags)
			if err != nil {
				return err
			}
			defer cache.Close()

			data := storage.NewExportData(s.Run(), s.Authors())
			if err := storage.ExportToFile(data, output); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d author(s) to %s\n", len(data.Authors), output)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
