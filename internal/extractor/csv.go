package extractor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/data-question-api/internal/models"
)

// ParseCSVFile reads a comma-delimited file with a header row.
func ParseCSVFile(path string) (*models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseCSV(data)
}

// ParseCSV parses delimited text whose first record is the header.
// Short rows are padded with empty values; rows with more fields than the
// header are rejected. Repeated header names get ".1", ".2" suffixes.
func ParseCSV(data []byte) (*models.Table, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode csv: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	// A stray quote inside an unquoted field is kept as a literal character.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	table := &models.Table{Columns: uniqueColumns(header)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(record))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

func uniqueColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if n, ok := seen[name]; ok {
			candidate := name + "." + strconv.Itoa(n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = name + "." + strconv.Itoa(n)
			}
			seen[name] = n + 1
			seen[candidate] = 1
			columns[i] = candidate
			continue
		}
		seen[name] = 1
		columns[i] = name
	}
	return columns
}
