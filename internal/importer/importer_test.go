package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseText(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Привет:Salom:greeting",
		"",
		"  Книга : Kitob ",
		"broken line",
		"a:b:c:d",
		"читать:o'qimoq:VERB",
		"дом:uy:furniture",
		":bo'sh",
	}, "\n")

	contents, err := ParseText(strings.NewReader(input))

	var parseErr *ParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, []int{4, 5, 7, 8}, parseErr.InvalidLines)

	assert.Equal(t, []domain.WordContent{
		{SourceText: "Привет", TargetText: "Salom", Category: domain.CategoryGreeting},
		{SourceText: "Книга", TargetText: "Kitob"},
		{SourceText: "читать", TargetText: "o'qimoq", Category: domain.CategoryVerb},
	}, contents)
}

func TestParseText_AllValid(t *testing.T) {
	t.Parallel()

	contents, err := ParseText(strings.NewReader("один:bir:number\nдва:ikki:number\n"))
	require.NoError(t, err)
	assert.Len(t, contents, 2)
}

func writeWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseSpreadsheet(t *testing.T) {
	t.Parallel()

	buf := writeWorkbook(t, [][]interface{}{
		{"Russian", "Uzbek", "Category", "Example", "Translation"},
		{"Книга", "Kitob", "noun", "Это книга.", "Bu kitob."},
		{"Спасибо", "Rahmat"},
		{"", "", "", "", ""},
		{"Большой", "", "adjective"},
		{"Бежать", "Yugurmoq", "sport"},
	})

	contents, err := ParseSpreadsheet(buf, "")

	var parseErr *ParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, []int{5, 6}, parseErr.InvalidLines)

	require.Len(t, contents, 2)
	assert.Equal(t, domain.WordContent{
		SourceText:         "Книга",
		TargetText:         "Kitob",
		Category:           domain.CategoryNoun,
		Example:            "Это книга.",
		ExampleTranslation: "Bu kitob.",
	}, contents[0])
	assert.Equal(t, domain.WordContent{SourceText: "Спасибо", TargetText: "Rahmat"}, contents[1])
}

func TestParseSpreadsheet_NotAWorkbook(t *testing.T) {
	t.Parallel()

	_, err := ParseSpreadsheet(strings.NewReader("definitely not a zip"), "")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	textPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("да:ha\nнет:yo'q\n"), 0o600))
	contents, err := ParseFile(textPath)
	require.NoError(t, err)
	assert.Len(t, contents, 2)

	xlsxPath := filepath.Join(dir, "words.XLSX")
	buf := writeWorkbook(t, [][]interface{}{{"ru", "uz"}, {"вода", "suv"}})
	require.NoError(t, os.WriteFile(xlsxPath, buf.Bytes(), 0o600))
	contents, err = ParseFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, []domain.WordContent{{SourceText: "вода", TargetText: "suv"}}, contents)

	_, err = ParseFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
