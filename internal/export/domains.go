// Package export reads batch domain lists and writes batch brief results.
package export

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/account-brief/internal/domain"
)

// Column headers recognized as the domain column in csv and xlsx input.
var domainHeaders = map[string]bool{
	"domain":  true,
	"website": true,
	"url":     true,
}

// ReadDomains loads a domain list from path. The format follows the file
// extension: .xlsx and .csv are tables (first sheet, "domain" column or the
// first column), anything else is one domain per line with # comments.
// Domains are normalized and de-duplicated case-insensitively, keeping order.
func ReadDomains(path string) ([]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		rows, err = readLines(path)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows), nil
}

func collect(rows [][]string) []string {
	col := 0
	if len(rows) > 0 {
		for i, cell := range rows[0] {
			if domainHeaders[strings.ToLower(strings.TrimSpace(cell))] {
				col = i
				rows = rows[1:]
				break
			}
		}
	}

	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		d := domain.Normalize(strings.TrimSpace(row[col]))
		if d == "" {
			continue
		}
		key := strings.ToLower(d)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

func readLines(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	var rows [][]string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, []string{line})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "export: read %s", path)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comment = '#'
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "export: parse csv %s", path)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("export: %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
