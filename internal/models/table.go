package models

// Table is a header-driven, string-valued table read from delimited text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Record is one row with its values in column order.
type Record struct {
	Columns []string
	Values  []string
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Head returns the first n rows as records, or fewer if the table is shorter.
func (t *Table) Head(n int) []Record {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	records := make([]Record, 0, n)
	for _, row := range t.Rows[:n] {
		records = append(records, Record{Columns: t.Columns, Values: row})
	}
	return records
}

type TableSummary struct {
	Sample  string
	Rows    int
	Columns int
}
