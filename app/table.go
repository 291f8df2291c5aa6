package main

// columnHandle selects where a projected value comes from: the
// synthetic row-id column, or a position in the record's value list.
type columnHandle struct {
	isRowID bool
	index   int
}

// Row is one projected result row, values in request column order.
type Row struct {
	Values []Value
}

// Table pairs a schema descriptor with the pager needed to walk its
// B-tree.
type Table struct {
	pager *Pager
	Desc  Descriptor
}

func openTable(pager *Pager, desc Descriptor) *Table {
	return &Table{pager: pager, Desc: desc}
}

// findColumns resolves each requested name to a handle. "id" aliases
// the row-id; any other name resolves against the table's extracted
// column list. Names that resolve to nothing are silently dropped from
// the result rather than surfaced as an error — see SPEC_FULL.md §5 for
// the reasoning behind that choice.
func (t *Table) findColumns(names []string) []columnHandle {
	cols := t.Desc.ColumnNames()
	handles := make([]columnHandle, 0, len(names))
	for _, name := range names {
		if name == "id" {
			handles = append(handles, columnHandle{isRowID: true})
			continue
		}
		for i, c := range cols {
			if c == name {
				handles = append(handles, columnHandle{index: i})
				break
			}
		}
	}
	return handles
}

func (t *Table) filterFrom(cond *Equality) *filter {
	if cond == nil {
		return nil
	}
	handles := t.findColumns([]string{cond.Column})
	if len(handles) == 0 {
		// Unresolved filter column: silently becomes a no-op.
		return nil
	}
	return &filter{column: handles[0], value: cond.Value}
}

type filter struct {
	column columnHandle
	value  Value
}

// cellValue returns the value selected by h from a leaf cell: the
// row-id for the synthetic id column, or values[index] otherwise. A
// handle pointing past the end of the record's stored values (a
// column whose cell has fewer fields than the schema declares, the
// usual sign of a row with NULLs stored via the header's own length)
// returns (Value{}, false) so the caller can drop it from the row.
func cellValue(cell TableLeafCell, h columnHandle) (Value, bool) {
	if h.isRowID {
		return IntValue(cell.RowID), true
	}
	if h.index < 0 || h.index >= len(cell.Record.Values) {
		return Value{}, false
	}
	return cell.Record.Values[h.index], true
}

// Select walks the table's B-tree, applies at most one equality
// predicate, and projects the requested columns in request order.
// Rows come back in natural cell order: stable within a page, and in
// child order across interior pages.
func (t *Table) Select(columns []string, cond *Equality) ([]Row, error) {
	handles := t.findColumns(columns)
	flt := t.filterFrom(cond)

	cells, err := leafCells(t.pager, t.Desc.RootPage)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(cells))
	for _, cell := range cells {
		if flt != nil {
			v, ok := cellValue(cell, flt.column)
			if !ok || !v.Equal(flt.value) {
				continue
			}
		}

		values := make([]Value, 0, len(handles))
		for _, h := range handles {
			if v, ok := cellValue(cell, h); ok {
				values = append(values, v)
			}
		}
		rows = append(rows, Row{Values: values})
	}

	return rows, nil
}

// Count returns the number of rows in the table. Because leafCells
// already recurses to true leaves, this is always the real row count,
// not the root page's own cell count (which for an interior root would
// just be its child count).
func (t *Table) Count() (int, error) {
	cells, err := leafCells(t.pager, t.Desc.RootPage)
	if err != nil {
		return 0, err
	}
	return len(cells), nil
}
