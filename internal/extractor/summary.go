package extractor

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/BerylCAtieno/data-question-api/internal/models"
)

// Summarize renders the first n rows of table as a JSON record list and
// reports the table's full dimensions.
//
// Records keep header order. Empty cells and the usual missing-value
// markers ("NA", "NaN", "null", ...) are null. A column whose remaining cells
// are all JSON numbers is emitted as numbers; everything else is a string.
func Summarize(table *models.Table, n int) (*models.TableSummary, error) {
	numeric := numericColumns(table)

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, record := range table.Head(n) {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range record.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, col); err != nil {
				return nil, err
			}
			buf.WriteByte(':')

			value := record.Values[j]
			switch {
			case isMissing(value):
				buf.WriteString("null")
			case numeric[j]:
				buf.WriteString(value)
			default:
				if err := writeJSONString(&buf, value); err != nil {
					return nil, err
				}
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	return &models.TableSummary{
		Sample:  buf.String(),
		Rows:    table.NumRows(),
		Columns: table.NumColumns(),
	}, nil
}

func numericColumns(table *models.Table) []bool {
	numeric := make([]bool, table.NumColumns())
	for j := range numeric {
		seen := false
		numeric[j] = true
		for _, row := range table.Rows {
			v := row[j]
			if isMissing(v) {
				continue
			}
			seen = true
			if !isJSONNumber(v) {
				numeric[j] = false
				break
			}
		}
		numeric[j] = numeric[j] && seen
	}
	return numeric
}

var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func isMissing(v string) bool {
	_, ok := missingValues[v]
	return ok
}

func isJSONNumber(v string) bool {
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return false
	}
	return json.Valid([]byte(v))
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
