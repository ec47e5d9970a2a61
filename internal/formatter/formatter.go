// package formatter renders catalog pages to export formats (CSV, Markdown, plain text, aligned table, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or its common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "", "text", "txt":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

const tableColWidth = 40

// ExportToCSV converts a CatalogPage to CSV format with columns: Title, Genres, Language, Release Date, Image, Overview
func ExportToCSV(page *models.CatalogPage) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Genres", "Language", "Release Date", "Image", "Overview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range page.Items {
		record := []string{
			item.Title,
			strings.Join(item.Genres, "|"),
			item.OriginalLanguage,
			item.ReleaseDate,
			item.Image,
			item.Overview,
		}
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

// ExportToMarkdown converts a CatalogPage to Markdown with one section per item
func ExportToMarkdown(page *models.CatalogPage) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s (page %d)\n\n", page.Group.Label(), page.Page)
	fmt.Fprintf(&buf, "**Items**: %d\n\n", len(page.Items))

	for i, item := range page.Items {
		fmt.Fprintf(&buf, "## %d. %s\n\n", i+1, item.Title)
		if item.Image != "" {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", item.Title, item.Image)
		}
		if len(item.Genres) > 0 {
			fmt.Fprintf(&buf, "**Genres**: %s\n", strings.Join(item.Genres, ", "))
		}
		if item.OriginalLanguage != "" {
			fmt.Fprintf(&buf, "**Language**: %s\n", strings.ToUpper(item.OriginalLanguage))
		}
		if item.ReleaseDate != "" {
			fmt.Fprintf(&buf, "**Released**: %s\n", item.ReleaseDate)
		}
		if item.Overview != "" {
			fmt.Fprintf(&buf, "\n%s\n", item.Overview)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a CatalogPage to plain text format
func ExportToText(page *models.CatalogPage) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Group: %s\n", page.Group.Label())
	fmt.Fprintf(&buf, "Page: %d\n", page.Page)
	fmt.Fprintf(&buf, "Items: %d\n\n", len(page.Items))

	for i, item := range page.Items {
		line := fmt.Sprintf("%d. %s", i+1, item.Title)
		if item.ReleaseDate != "" {
			line += fmt.Sprintf(" (%s)", item.ReleaseDate)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToTable renders a CatalogPage as an aligned terminal table
func ExportToTable(page *models.CatalogPage) ([]byte, error) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = tableColWidth
	tbl.Wrap = true

	tbl.AddRow("#", "TITLE", "GENRES", "LANG", "RELEASED")
	for i, item := range page.Items {
		tbl.AddRow(i+1, item.Title, strings.Join(item.Genres, ", "), strings.ToUpper(item.OriginalLanguage), item.ReleaseDate)
	}
	tbl.RightAlign(0)

	return []byte(tbl.String() + "\n"), nil
}

// ExportToJSON encodes the page, indented when pretty is set
func ExportToJSON(page *models.CatalogPage, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(page, "", "  ")
	} else {
		data, err = json.Marshal(page)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Render dispatches to the exporter for f.
func Render(page *models.CatalogPage, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(page)
	case FormatMarkdown:
		return ExportToMarkdown(page)
	case FormatTable:
		return ExportToTable(page)
	case FormatJSON:
		return ExportToJSON(page, true)
	default:
		return ExportToText(page)
	}
}

// DefaultFilename returns {group}_page{n}{ext}.
func DefaultFilename(page *models.CatalogPage, f Format) string {
	return fmt.Sprintf("%s_page%d%s", strings.ToLower(string(page.Group)), page.Page, f.Extension())
}

// WriteExport renders page in format f and writes it to path, creating parent directories.
//
// Defaults to [DefaultFilename] in the working directory when path is empty.
func WriteExport(page *models.CatalogPage, f Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(page, f)
	}

	data, err := Render(page, f)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
