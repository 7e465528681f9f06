package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleChangeset = `{
  "changes": [
    {"insert": {
      "schemaName": "public",
      "tableName": "person",
      "columns": [
        {"name": "id", "valueNumeric": 1, "autoIncrement": true},
        {"name": "name", "value": "Ann"},
        {"name": "active", "valueBoolean": true},
        {"name": "born", "valueDate": "1990-04-01"},
        {"name": "photo", "valueBlob": "iVBORw=="},
        {"name": "bio", "valueClobFile": "bio.txt"},
        {"name": "note"}
      ]
    }},
    {"update": {
      "tableName": "person",
      "where": "id = 1",
      "columns": [
        {"name": "updated", "valueComputed": "CURRENT_TIMESTAMP"},
        {"name": "level", "default": true}
      ]
    }}
  ]
}`

func TestDecodeChangeset(t *testing.T) {
	changes, err := DecodeChangeset(strings.NewReader(sampleChangeset))
	if err != nil {
		t.Fatalf("DecodeChangeset() error = %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}

	insert, ok := changes[0].(*InsertData)
	if !ok {
		t.Fatalf("expected *InsertData, got %T", changes[0])
	}
	if insert.Schema != "public" || insert.Table != "person" {
		t.Errorf("unexpected identity: %+v", insert.TableIdentity)
	}

	cols := insert.Columns()
	kinds := []ValueKind{KindNumeric, KindText, KindBoolean, KindTemporal, KindLargeBinary, KindLargeCharacter, KindNull}
	if len(cols) != len(kinds) {
		t.Fatalf("expected %d columns, got %d", len(kinds), len(cols))
	}
	for i, k := range kinds {
		if cols[i].Kind() != k {
			t.Errorf("column %s kind = %s, want %s", cols[i].Name, cols[i].Kind(), k)
		}
	}
	if !cols[0].IsAutoIncrement() {
		t.Error("id should be auto-increment")
	}
	if cols[1].AutoIncrement != nil {
		t.Error("name auto-increment should be unset")
	}
	if cols[3].Precision() != PrecisionDate {
		t.Errorf("born precision = %s, want date", cols[3].Precision())
	}
	if born, ok := cols[3].BindableValue().(Date); !ok || !time.Time(born).Equal(time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("born = %#v", cols[3].BindableValue())
	}

	update, ok := changes[1].(*UpdateData)
	if !ok {
		t.Fatalf("expected *UpdateData, got %T", changes[1])
	}
	if update.Where != "id = 1" {
		t.Errorf("where = %q", update.Where)
	}
	if got := update.Columns()[1].Kind(); got != KindDefault {
		t.Errorf("level kind = %s, want default", got)
	}
}

func TestDecodeChangesetDatePrecision(t *testing.T) {
	tests := []struct {
		input     string
		precision TemporalPrecision
		bound     any
	}{
		{"2024-03-05T10:30:00Z", PrecisionTimestamp, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"2024-03-05 10:30:00", PrecisionTimestamp, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"2024-03-05", PrecisionDate, "2024-03-05"},
		{"15:04:05", PrecisionTime, "15:04:05"},
		{"08:00:00.25", PrecisionTime, "08:00:00.25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var col ColumnValue
			if err := col.UnmarshalJSON([]byte(`{"name":"at","valueDate":"` + tt.input + `"}`)); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if col.Precision() != tt.precision {
				t.Errorf("precision = %s, want %s", col.Precision(), tt.precision)
			}
			switch v := col.BindableValue().(type) {
			case time.Time:
				if !v.Equal(tt.bound.(time.Time)) {
					t.Errorf("bound = %v, want %v", v, tt.bound)
				}
			case Date:
				if v.String() != tt.bound {
					t.Errorf("bound = %s, want %v", v, tt.bound)
				}
			case TimeOfDay:
				if v.String() != tt.bound {
					t.Errorf("bound = %s, want %v", v, tt.bound)
				}
			default:
				t.Errorf("unexpected bound type %T", v)
			}
		})
	}
}

func TestDecodeChangesetErrors(t *testing.T) {
	tests := map[string]string{
		"two values":    `{"changes":[{"insert":{"tableName":"t","columns":[{"name":"a","value":"x","valueNumeric":1}]}}]}`,
		"bad date":      `{"changes":[{"insert":{"tableName":"t","columns":[{"name":"a","valueDate":"yesterday"}]}}]}`,
		"bad number":    `{"changes":[{"insert":{"tableName":"t","columns":[{"name":"a","valueNumeric":"ten"}]}}]}`,
		"empty change":  `{"changes":[{}]}`,
		"both kinds":    `{"changes":[{"insert":{"tableName":"t"},"update":{"tableName":"t"}}]}`,
		"insert where":  `{"changes":[{"insert":{"tableName":"t","where":"id=1"}}]}`,
		"unknown field": `{"changes":[{"delete":{"tableName":"t"}}]}`,
		"not json":      `changes:`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeChangeset(strings.NewReader(doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadChangesetResolvesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bio.txt"), []byte("a long biography"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	path := filepath.Join(dir, "changes.json")
	if err := os.WriteFile(path, []byte(sampleChangeset), 0o600); err != nil {
		t.Fatalf("write changeset: %v", err)
	}

	changes, err := LoadChangeset(path)
	if err != nil {
		t.Fatalf("LoadChangeset() error = %v", err)
	}
	bio := changes[0].(*InsertData).Columns()[5].BindableValue().(*LargeObject)
	got, err := bio.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "a long biography" {
		t.Errorf("bio = %q", got)
	}
}
