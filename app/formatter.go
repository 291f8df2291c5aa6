package main

import (
	"strconv"
	"strings"
)

// RowFormatter renders query results as plain, newline-terminated
// text, with multi-column rows pipe-joined. See DESIGN.md for why a
// JSON rendering mode was not carried forward.
type RowFormatter struct{}

func (RowFormatter) Info(pageSize, tableCount int) string {
	var b strings.Builder
	b.WriteString("database page size: ")
	b.WriteString(strconv.Itoa(pageSize))
	b.WriteByte('\n')
	b.WriteString("number of tables: ")
	b.WriteString(strconv.Itoa(tableCount))
	b.WriteByte('\n')
	return b.String()
}

func (RowFormatter) Tables(names []string) string {
	return strings.Join(names, " ") + "\n"
}

func (RowFormatter) Count(n int) string {
	return strconv.Itoa(n) + "\n"
}

func (RowFormatter) Rows(rows []Row) string {
	var b strings.Builder
	for _, row := range rows {
		parts := make([]string, len(row.Values))
		for i, v := range row.Values {
			parts[i] = v.String()
		}
		b.WriteString(strings.Join(parts, "|"))
		b.WriteByte('\n')
	}
	return b.String()
}
