// Package importer reads vocabulary lists from plain text and spreadsheet
// files into word contents ready for WordService.Import.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ParsingError lists the 1-based line (or row) numbers that could not be
// parsed. The valid entries are still returned alongside it.
type ParsingError struct {
	InvalidLines []int
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error: invalidLines=%v", e.InvalidLines)
}

// ParseFile picks the parser by extension: .xlsx files are read as
// spreadsheets, everything else as text.
func ParseFile(path string) ([]domain.WordContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ParseSpreadsheet(f, "")
	}
	return ParseText(f)
}

// ParseText reads lines of the form "source:target[:category]". Blank lines
// are skipped; text keeps its case.
func ParseText(in io.Reader) ([]domain.WordContent, error) {
	scanner := bufio.NewScanner(in)
	contents := make([]domain.WordContent, 0, 64)
	var invalid []int

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 2 || len(parts) > 3 {
			invalid = append(invalid, lineNum)
			continue
		}

		var category string
		if len(parts) == 3 {
			category = parts[2]
		}
		content, ok := toContent(parts[0], parts[1], category, "", "")
		if !ok {
			invalid = append(invalid, lineNum)
			continue
		}
		contents = append(contents, content)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan import file: %w", err)
	}
	if len(invalid) > 0 {
		return contents, &ParsingError{InvalidLines: invalid}
	}
	return contents, nil
}

// Spreadsheet columns, A to E.
const (
	colSource = iota
	colTarget
	colCategory
	colExample
	colExampleTranslation
)

// ParseSpreadsheet reads an .xlsx workbook. Columns A..E hold source,
// target, category, example and example translation; the first row is a
// header. An empty sheet name means the first sheet.
func ParseSpreadsheet(in io.Reader, sheet string) ([]domain.WordContent, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of sheet %q: %w", sheet, err)
	}

	contents := make([]domain.WordContent, 0, len(rows))
	var invalid []int
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}

		content, ok := toContent(
			cell(row, colSource),
			cell(row, colTarget),
			cell(row, colCategory),
			cell(row, colExample),
			cell(row, colExampleTranslation),
		)
		if !ok {
			invalid = append(invalid, i+1)
			continue
		}
		contents = append(contents, content)
	}

	if len(invalid) > 0 {
		return contents, &ParsingError{InvalidLines: invalid}
	}
	return contents, nil
}

// toContent trims the fields and rejects empty texts or unknown categories.
// An empty category is left for the service to default.
func toContent(source, target, category, example, exampleTranslation string) (domain.WordContent, bool) {
	content := domain.WordContent{
		SourceText:         strings.TrimSpace(source),
		TargetText:         strings.TrimSpace(target),
		Example:            strings.TrimSpace(example),
		ExampleTranslation: strings.TrimSpace(exampleTranslation),
	}
	if content.SourceText == "" || content.TargetText == "" {
		return domain.WordContent{}, false
	}
	if strings.TrimSpace(category) != "" {
		c, err := domain.ParseCategory(category)
		if err != nil {
			return domain.WordContent{}, false
		}
		content.Category = c
	}
	return content, true
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
