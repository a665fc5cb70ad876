// Package importer はシード用の単語ファイル (JSON / CSV / XLSX) を読み込みます
package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go_5_lexicard/internal/model"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat は拡張子から形式を判定できない場合のエラー
var ErrUnsupportedFormat = errors.New("unsupported seed file format")

// 列の並び (ヘッダーなしの場合)
var defaultColumns = []string{"word", "definition", "cefr", "frequency"}

// Load は拡張子で形式を判定してエントリを返します。正規化・重複排除は行いません。
func Load(path string) ([]model.SeedEntry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("importer.Load: %w", err)
		}
		defer f.Close()
		return ReadJSON(f)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("importer.Load: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("importer.Load: %s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadJSON は文字列の配列、またはオブジェクトの配列を受け付けます
func ReadJSON(r io.Reader) ([]model.SeedEntry, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("importer.ReadJSON: %w", err)
	}

	entries := make([]model.SeedEntry, 0, len(raw))
	for i, item := range raw {
		var word string
		if err := json.Unmarshal(item, &word); err == nil {
			entries = append(entries, model.SeedEntry{Word: word})
			continue
		}
		var entry model.SeedEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, fmt.Errorf("importer.ReadJSON: item %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func ReadCSV(r io.Reader) ([]model.SeedEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer.ReadCSV: %w", err)
	}
	return parseRows(rows)
}

func loadXLSX(path string) ([]model.SeedEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer.loadXLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer.loadXLSX: %w", err)
	}
	return parseRows(rows)
}

// parseRows は先頭行が "word" で始まればヘッダーとして列位置を決めます
func parseRows(rows [][]string) ([]model.SeedEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	columns := columnIndex(defaultColumns)
	start := 0
	if len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "word") {
		header := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			header[i] = strings.ToLower(strings.TrimSpace(h))
		}
		columns = columnIndex(header)
		start = 1
	}

	entries := make([]model.SeedEntry, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		word := cell(row, columns, "word")
		if word == "" {
			continue
		}
		entry := model.SeedEntry{
			Word:       word,
			Definition: cell(row, columns, "definition"),
			CEFR:       strings.ToUpper(cell(row, columns, "cefr")),
		}
		if freq := cell(row, columns, "frequency"); freq != "" {
			n, err := strconv.Atoi(freq)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid frequency %q: %w", i+1, freq, err)
			}
			entry.Frequency = n
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func columnIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := idx[n]; !ok {
			idx[n] = i
		}
	}
	return idx
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
