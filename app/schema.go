package main

// ObjectKind is the closed set of sqlite_schema object kinds.
type ObjectKind string

const (
	ObjectTable   ObjectKind = "table"
	ObjectIndex   ObjectKind = "index"
	ObjectView    ObjectKind = "view"
	ObjectTrigger ObjectKind = "trigger"
)

func parseObjectKind(s string) (ObjectKind, error) {
	switch ObjectKind(s) {
	case ObjectTable, ObjectIndex, ObjectView, ObjectTrigger:
		return ObjectKind(s), nil
	default:
		return "", newError("parse_object_kind", ErrMalformed, map[string]any{"kind": s})
	}
}

// Descriptor describes one row of the schema table.
type Descriptor struct {
	RowID    int64
	Kind     ObjectKind
	Name     string
	TblName  string
	RootPage int
	SQL      string

	columns []string // lazily populated by ColumnNames
}

// Internal reports whether this object belongs to SQLite itself
// rather than to user schema (identified by the "sqlite_" prefix).
func (d *Descriptor) Internal() bool {
	return len(d.Name) >= 7 && d.Name[:7] == "sqlite_"
}

// ColumnNames returns the ordered column names extracted from the
// object's CREATE statement, computing and caching them on first use.
// Table and column identifiers are compared case-sensitively (only
// SQL keywords are matched case-insensitively, in sqlparse.go).
func (d *Descriptor) ColumnNames() []string {
	if d.columns == nil {
		d.columns = extractColumnNames(d.SQL)
	}
	return d.columns
}

// Schema is the decoded sqlite_schema table: page 1, read as a table
// leaf page listing every database object.
type Schema struct {
	CellCount int // leaf cell count of page 1 — every object, tables included
	all       []Descriptor
}

// decodeSchema reads page 1 (always a table-leaf page) and builds one
// Descriptor per cell.
func decodeSchema(pager *Pager) (*Schema, error) {
	page, err := pager.PageAt(1)
	if err != nil {
		return nil, err
	}
	if page.Head.Kind != TableLeaf {
		return nil, newError("decode_schema", ErrMalformed, map[string]any{"kind": page.Head.Kind})
	}

	cells, err := page.TableLeafCells()
	if err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(cells))
	for _, cell := range cells {
		d, err := descriptorFromRecord(cell.RowID, cell.Record)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}

	return &Schema{CellCount: int(page.Head.CellCount), all: descriptors}, nil
}

func descriptorFromRecord(rowID int64, r Record) (Descriptor, error) {
	if len(r.Values) < 5 {
		return Descriptor{}, newError("decode_schema_row", ErrMalformed, map[string]any{"columns": len(r.Values)})
	}

	kind, err := parseObjectKind(r.Values[0].String())
	if err != nil {
		return Descriptor{}, err
	}

	rootPage := 0
	if r.Values[3].Tag == KindInt {
		rootPage = int(r.Values[3].Int)
	}

	return Descriptor{
		RowID:    rowID,
		Kind:     kind,
		Name:     r.Values[1].String(),
		TblName:  r.Values[2].String(),
		RootPage: rootPage,
		SQL:      r.Values[4].String(),
	}, nil
}

// Tables returns every table descriptor, in schema (cell) order.
func (s *Schema) Tables() []Descriptor {
	var out []Descriptor
	for _, d := range s.all {
		if d.Kind == ObjectTable {
			out = append(out, d)
		}
	}
	return out
}

// TableNamed resolves a table descriptor by exact name.
func (s *Schema) TableNamed(name string) (*Descriptor, error) {
	for i := range s.all {
		if s.all[i].Kind == ObjectTable && s.all[i].Name == name {
			return &s.all[i], nil
		}
	}
	return nil, newError("table_named", ErrNotFound, map[string]any{"name": name})
}
