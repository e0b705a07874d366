// package formatter renders episode dates and exports episode lists to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/desertthunder/podshelf/internal/models"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/dustin/go-humanize"
)

// FormatDate renders a date for display, e.g. "January 2, 2006". The zero date renders as "".
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("January 2, 2006")
}

// FormatDateMachine renders a date in the machine-readable "2006-01-02" form.
func FormatDateMachine(d models.Date) string {
	return d.String()
}

// RelativeDate describes d relative to now, e.g. "3 weeks ago".
func RelativeDate(d models.Date, now time.Time) string {
	if d.IsZero() {
		return ""
	}
	return humanize.RelTime(d.Time(), now, "ago", "from now")
}

// TruncateText shortens text to at most maxLength runes, appending "..." when cut.
func TruncateText(text string, maxLength int) string {
	if text == "" || maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimRightFunc(string(runes[:maxLength]), func(r rune) bool { return r == ' ' }) + "..."
}

// Stats renders the "Showing N of M episodes" line.
func Stats(shown, total int) string {
	return fmt.Sprintf("Showing %s of %s episodes", humanize.Comma(int64(shown)), humanize.Comma(int64(total)))
}

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat accepts the format names used on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text", "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: export format %q", shared.ErrUnsupportedFormat, name)
	}
}

// ExportToCSV converts episodes to CSV with columns: Title, Series Code, Series, Date, Link, Description
func ExportToCSV(episodes []models.Episode) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Series Code", "Series", "Date", "Link", "Description"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, ep := range episodes {
		record := []string{ep.Title, ep.SeriesCode, ep.Series, FormatDateMachine(ep.Date), ep.Link, ep.Description}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts episodes to a Markdown document headed by title
func ExportToMarkdown(title string, episodes []models.Episode) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Episodes**: %d\n\n", len(episodes))

	for _, ep := range episodes {
		fmt.Fprintf(&buf, "## [%s](%s)\n\n", ep.Title, ep.Link)
		meta := ep.Series
		if date := FormatDate(ep.Date); date != "" {
			meta = fmt.Sprintf("%s • %s", meta, date)
		}
		fmt.Fprintf(&buf, "_%s_\n\n", meta)
		if ep.Description != "" {
			fmt.Fprintf(&buf, "%s\n\n", ep.Description)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts episodes to numbered plain text lines
func ExportToText(episodes []models.Episode) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Episodes: %d\n\n", len(episodes))
	for i, ep := range episodes {
		fmt.Fprintf(&buf, "%d. [%s] %s (%s)\n", i+1, ep.SeriesCode, ep.Title, FormatDateMachine(ep.Date))
		if ep.Link != "" {
			fmt.Fprintf(&buf, "   %s\n", ep.Link)
		}
	}

	return buf.Bytes(), nil
}

// Export renders episodes in the given format.
func Export(format Format, title string, episodes []models.Episode) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(episodes)
	case FormatMarkdown:
		return ExportToMarkdown(title, episodes)
	case FormatText:
		return ExportToText(episodes)
	default:
		return nil, fmt.Errorf("%w: export format %q", shared.ErrUnsupportedFormat, format)
	}
}

// WriteExport renders episodes and writes them to path, or to w when path is empty.
func WriteExport(w io.Writer, path string, format Format, title string, episodes []models.Episode) error {
	data, err := Export(format, title, episodes)
	if err != nil {
		return err
	}

	if path == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
