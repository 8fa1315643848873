package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/application/usecase"
	"github.com/atelo/atelo/internal/cli/styles"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Turn free text into records",
	Long: `Classify free text into office, project or regulation records.

Input comes from the given files, or stdin when no file is named. Each
blank-line-separated paragraph becomes one record candidate. Candidates the
extractor is not confident about are reported and skipped.

Examples:
  atelo ingest notes.txt
  pbpaste | atelo ingest`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, args []string) error {
	app := GetApp()
	ctx := app.Ctx()
	t := app.Theme

	text, err := readIngestInput(args)
	if err != nil {
		return err
	}

	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return fmt.Errorf("no input to ingest")
	}

	items, err := app.IngestUC.IngestBatch(ctx, paragraphs, app.Config.Ingest.Concurrency)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	stored := 0
	for _, item := range items {
		switch {
		case item.Err == nil:
			stored++
			fmt.Printf("%s %s %s\n",
				t.SuccessStyle.Render(styles.IconCheck),
				t.Normal.Render(string(item.Result.Kind)),
				t.Subtle.Render(item.Result.RecordID),
			)
		case errors.Is(item.Err, usecase.ErrLowConfidence):
			fmt.Printf("%s %s\n",
				t.Subtle.Render(styles.IconWarning),
				t.Subtle.Render(fmt.Sprintf("paragraph %d skipped: low confidence", item.Index+1)),
			)
		default:
			fmt.Printf("%s %s\n",
				t.ErrorStyle.Render(styles.IconX),
				t.ErrorStyle.Render(fmt.Sprintf("paragraph %d: %v", item.Index+1, item.Err)),
			)
		}
	}

	fmt.Printf("\n%s\n", t.Subtle.Render(fmt.Sprintf("%d of %d paragraphs stored", stored, len(items))))
	return nil
}

func readIngestInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	var b strings.Builder
	for _, path := range args {
		data, err := os.ReadFile(path) //nolint:gosec // user-supplied input path
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		b.Write(data)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// splitParagraphs breaks text on blank lines, dropping empty chunks.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, chunk := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
