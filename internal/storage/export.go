// ABOUTME: Export of author vectors to YAML, JSON and Markdown files
// ABOUTME: Format is picked from the output file extension
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/poetsim/internal/models"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version    string                `yaml:"version" json:"version"`
	ExportedAt string                `yaml:"exported_at" json:"exported_at"`
	Tool       string                `yaml:"tool" json:"tool"`
	Run        models.Run            `yaml:"run" json:"run"`
	Authors    []models.AuthorVector `yaml:"authors" json:"authors"`
}

// NewExportData bundles a run and its vectors for export
func NewExportData(run models.Run, vectors []models.AuthorVector) *ExportData {
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "poetsim",
		Run:        run,
		Authors:    vectors,
	}
}

// FormatForPath maps a file extension to an export format
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("cannot infer export format from %q (use .yaml, .json or .md)", path)
	}
}

// ExportToFile writes data to outputPath in the format implied by its extension
func ExportToFile(data *ExportData, outputPath string) error {
	format, err := FormatForPath(outputPath)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Write(file, data, format)
}

// Write encodes data to w in the given format
func Write(w io.Writer, data *ExportData, format string) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatMarkdown:
		return writeMarkdown(w, data)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// writeMarkdown writes a summary table without the vectors themselves
func writeMarkdown(w io.Writer, data *ExportData) error {
	_, _ = fmt.Fprintf(w, "# Author Vectors - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)
	_, _ = fmt.Fprintf(w, "- **Run:** %s\n", data.Run.RunID)
	_, _ = fmt.Fprintf(w, "- **Method:** %s\n", data.Run.Method)
	_, _ = fmt.Fprintf(w, "- **Dimension:** %d\n", data.Run.Dimension)
	if len(data.Run.Skipped) > 0 {
		_, _ = fmt.Fprintf(w, "- **Skipped:** %s\n", strings.Join(data.Run.Skipped, ", "))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "| Author | Tokens | Out of vocabulary |")
	_, _ = fmt.Fprintln(w, "|--------|--------|-------------------|")
	for _, av := range data.Authors {
		_, _ = fmt.Fprintf(w, "| %s | %d | %d |\n", av.Author, av.TokenCount, av.OOVCount)
	}
	return nil
}
