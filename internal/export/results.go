package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/account-brief/internal/model"
)

const sheetName = "Briefs"

// Result is the outcome of one batch item. Exactly one of Brief or Error is set;
// Push is set when the brief was also written to the CRM.
type Result struct {
	Domain string            `json:"domain"`
	Brief  *model.Brief      `json:"brief,omitempty"`
	Push   *model.PushResult `json:"push,omitempty"`
	Error  string            `json:"error,omitempty"`
}

var columns = []string{
	"Domain",
	"Company",
	"Industry",
	"Size",
	"Headquarters",
	"ICP Score",
	"ICP Reasoning",
	"Stakeholder Source",
	"Stakeholders",
	"Sustainability Signals",
	"Talking Points",
	"HubSpot URL",
	"Error",
}

// WriteResults writes results to path as xlsx when the extension is .xlsx and
// as indented JSON otherwise.
func WriteResults(path string, results []Result) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, results)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteJSON(f, results); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

func writeXLSX(path string, results []Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range columns {
		header.AddCell().SetString(c)
	}

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Domain)
		if b := r.Brief; b != nil {
			row.AddCell().SetString(b.Company.Name)
			row.AddCell().SetString(b.Company.Industry)
			row.AddCell().SetString(b.Company.Size)
			row.AddCell().SetString(b.Company.Headquarters)
			row.AddCell().SetInt(b.ICPScore.Score)
			row.AddCell().SetString(b.ICPScore.Reasoning)
			row.AddCell().SetString(string(b.StakeholderSource))
			row.AddCell().SetString(formatStakeholders(b.Stakeholders))
			row.AddCell().SetString(strings.Join(b.SustainabilitySignals, "\n"))
			row.AddCell().SetString(strings.Join(b.TalkingPoints, "\n"))
		} else {
			for range 10 {
				row.AddCell()
			}
		}
		url := ""
		if r.Push != nil {
			url = r.Push.HubSpotURL
		}
		row.AddCell().SetString(url)
		row.AddCell().SetString(r.Error)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func formatStakeholders(people []model.Stakeholder) string {
	parts := make([]string, 0, len(people))
	for _, p := range people {
		if p.Title == "" {
			parts = append(parts, p.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Title))
	}
	return strings.Join(parts, "; ")
}
