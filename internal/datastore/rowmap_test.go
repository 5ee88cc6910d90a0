package datastore

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRowMap_PreservesColumnOrderInJSON(t *testing.T) {
	// カラム順はアルファベット順ではなくステートメントの出力順に従うこと
	m := NewRowMap(
		[]string{"id", "firstname", "lastname", "birthdate"},
		[]any{int64(1), "John", "Doe", "2000-01-01"},
	)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	got := string(data)
	want := `{"id":1,"firstname":"John","lastname":"Doe","birthdate":"2000-01-01"}`
	if got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestRowMap_NullValues(t *testing.T) {
	m := NewRowMap(
		[]string{"id", "middlename"},
		[]any{int64(2), nil},
	)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	if !strings.Contains(string(data), `"middlename":null`) {
		t.Errorf("json should contain null middlename, got %s", data)
	}
}

func TestRowMap_Get(t *testing.T) {
	m := NewRowMap([]string{"id", "name"}, []any{int64(7), "Algebra"})

	if got := m.Get("name"); got != "Algebra" {
		t.Errorf("Get(\"name\") = %v, want %q", got, "Algebra")
	}
	if got := m.Get("missing"); got != nil {
		t.Errorf("Get(\"missing\") = %v, want nil", got)
	}
}

func TestRowMap_Columns(t *testing.T) {
	cols := []string{"b", "a", "c"}
	m := NewRowMap(cols, []any{1, 2, 3})

	got := m.Columns()
	if len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("Columns() = %v, want %v", got, cols)
	}
}
