package main

import (
	"reflect"
	"testing"
)

func TestParseObjectKind(t *testing.T) {
	for _, k := range []string{"table", "index", "view", "trigger"} {
		if got, err := parseObjectKind(k); err != nil || string(got) != k {
			t.Errorf("parseObjectKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := parseObjectKind("bogus"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestDescriptorInternal(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sqlite_sequence", true},
		{"sqlite_master", true},
		{"apples", false},
		{"sqlit", false},
	}
	for _, tt := range tests {
		d := Descriptor{Name: tt.name}
		if got := d.Internal(); got != tt.want {
			t.Errorf("Internal(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDescriptorColumnNamesCached(t *testing.T) {
	d := Descriptor{SQL: "CREATE TABLE apples (id integer primary key, name text)"}
	first := d.ColumnNames()
	want := []string{"id", "name"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("ColumnNames() = %#v, want %#v", first, want)
	}
	// mutate SQL after first computation; cached result should stick.
	d.SQL = "CREATE TABLE oranges (a text)"
	second := d.ColumnNames()
	if !reflect.DeepEqual(second, want) {
		t.Errorf("ColumnNames() not cached: got %#v", second)
	}
}

func TestDescriptorFromRecord(t *testing.T) {
	rec := Record{Values: []Value{
		TextValue("table"),
		TextValue("apples"),
		TextValue("apples"),
		IntValue(3),
		TextValue("CREATE TABLE apples (id integer, name text)"),
	}}

	d, err := descriptorFromRecord(7, rec)
	if err != nil {
		t.Fatal(err)
	}
	if d.RowID != 7 || d.Kind != ObjectTable || d.Name != "apples" || d.RootPage != 3 {
		t.Errorf("got %+v", d)
	}
}

func TestDescriptorFromRecordMissingColumns(t *testing.T) {
	_, err := descriptorFromRecord(1, Record{Values: []Value{TextValue("table")}})
	if err == nil {
		t.Fatal("expected error for short record")
	}
}

func TestDescriptorFromRecordNullRootPage(t *testing.T) {
	rec := Record{Values: []Value{
		TextValue("view"),
		TextValue("v"),
		TextValue("v"),
		NullValue(),
		TextValue("CREATE VIEW v AS SELECT 1"),
	}}
	d, err := descriptorFromRecord(9, rec)
	if err != nil {
		t.Fatal(err)
	}
	if d.RootPage != 0 {
		t.Errorf("RootPage = %d, want 0", d.RootPage)
	}
}

func TestSchemaTablesAndTableNamed(t *testing.T) {
	s := &Schema{
		all: []Descriptor{
			{Kind: ObjectTable, Name: "apples", RootPage: 2},
			{Kind: ObjectIndex, Name: "apples_idx", RootPage: 5},
			{Kind: ObjectTable, Name: "oranges", RootPage: 9},
		},
	}

	tables := s.Tables()
	if len(tables) != 2 {
		t.Fatalf("got %d tables", len(tables))
	}

	d, err := s.TableNamed("oranges")
	if err != nil {
		t.Fatal(err)
	}
	if d.RootPage != 9 {
		t.Errorf("RootPage = %d", d.RootPage)
	}

	if _, err := s.TableNamed("missing"); err == nil {
		t.Fatal("expected not-found error")
	}

	if _, err := s.TableNamed("apples_idx"); err == nil {
		t.Fatal("index name should not resolve as a table")
	}
}
