// Package export writes production plans in file formats suited to
// operators and spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/powerplan/core/model"
)

// WriteJSON writes the plan entries to w as a JSON array.
func WriteJSON(w io.Writer, plan model.Plan) error {
	if plan == nil {
		plan = model.Plan{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// WriteCSV writes the plan entries to w in CSV format with a header row.
func WriteCSV(w io.Writer, plan model.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "power"}); err != nil {
		return err
	}
	for _, e := range plan {
		if err := cw.Write([]string{e.Name, strconv.FormatFloat(e.Power, 'f', 1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
