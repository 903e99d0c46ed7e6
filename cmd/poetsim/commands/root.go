// ABOUTME: Root command and global flags for the poetsim CLI
// ABOUTME: Configures logging and output format before any subcommand runs
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format. auto is the default and renders
// tables, the same as table.
const (
	formatAuto  = "auto"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string

	logger = log.New(os.Stderr)
)

const banner = `
 ██████   ██████  ███████ ████████ ███████ ██ ███    ███
 ██   ██ ██    ██ ██         ██    ██      ██ ████  ████
 ██████  ██    ██ █████      ██    ███████ ██ ██ ████ ██
 ██      ██    ██ ██         ██         ██ ██ ██  ██  ██
 ██       ██████  ███████    ██    ███████ ██ ██      ██
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poetsim",
		Short: "Find poets who write alike",
		Long: banner + `
poetsim turns a poetry corpus into one vector per author, the mean of
the word embeddings of everything that author wrote, and answers which
other author is closest by angle.

Corpora are TSV (author<TAB>text per line) or YAML (author: text).
Results print as tables unless --format json or --format yaml is given.
Vectors are cached by corpus fingerprint, so repeated queries on the
same corpus skip training.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet cannot be used together")
			}
			switch outputFormat {
			case formatAuto, formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("--format must be auto, table, json or yaml, got %q", outputFormat)
			}

			logger = newLogger(cmd.ErrOrStderr())
			_ = godotenv.Load()
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only show errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", formatAuto, "Output format: table, json or yaml (auto is the same as table)")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewNearestCmd())
	cmd.AddCommand(NewRankCmd())
	cmd.AddCommand(NewAuthorsCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newLogger(w io.Writer) *log.Logger {
	l := log.New(w)
	switch {
	case verbose:
		l.SetLevel(log.DebugLevel)
	case quiet:
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	return l
}
