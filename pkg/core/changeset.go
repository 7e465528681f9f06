package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// columnJSON mirrors the column attributes of a changeset file.
type columnJSON struct {
	Name          string       `json:"name"`
	Value         *string      `json:"value,omitempty"`
	ValueNumeric  *json.Number `json:"valueNumeric,omitempty"`
	ValueBoolean  *bool        `json:"valueBoolean,omitempty"`
	ValueDate     *string      `json:"valueDate,omitempty"`
	ValueComputed *string      `json:"valueComputed,omitempty"`
	ValueBlob     []byte       `json:"valueBlob,omitempty"`
	ValueBlobFile *string      `json:"valueBlobFile,omitempty"`
	ValueClob     *string      `json:"valueClob,omitempty"`
	ValueClobFile *string      `json:"valueClobFile,omitempty"`
	Null          bool         `json:"null,omitempty"`
	Default       bool         `json:"default,omitempty"`
	AutoIncrement *bool        `json:"autoIncrement,omitempty"`
}

var dateLayouts = []struct {
	layout    string
	precision TemporalPrecision
}{
	{time.RFC3339Nano, PrecisionTimestamp},
	{"2006-01-02T15:04:05.999999999", PrecisionTimestamp},
	{"2006-01-02 15:04:05.999999999", PrecisionTimestamp},
	{time.DateOnly, PrecisionDate},
	{"15:04:05.999999999", PrecisionTime},
}

// parseDate returns the column for s with the precision of the layout that
// matched it.
func parseDate(name, s string) (ColumnValue, error) {
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		switch l.precision {
		case PrecisionDate:
			return TemporalDate(name, t), nil
		case PrecisionTime:
			return TemporalTime(name, t), nil
		}
		return Temporal(name, t), nil
	}
	return ColumnValue{}, fmt.Errorf("invalid date %q", s)
}

// UnmarshalJSON decodes a column declaration. Exactly one value attribute may
// be set; a column with none is NULL.
func (c *ColumnValue) UnmarshalJSON(b []byte) error {
	var raw columnJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var out []ColumnValue
	if raw.Value != nil {
		out = append(out, Text(raw.Name, *raw.Value))
	}
	if raw.ValueNumeric != nil {
		out = append(out, Numeric(raw.Name, raw.ValueNumeric.String()))
	}
	if raw.ValueBoolean != nil {
		out = append(out, Boolean(raw.Name, *raw.ValueBoolean))
	}
	if raw.ValueDate != nil {
		col, err := parseDate(raw.Name, *raw.ValueDate)
		if err != nil {
			return fmt.Errorf("column %s: %w", raw.Name, err)
		}
		out = append(out, col)
	}
	if raw.ValueComputed != nil {
		out = append(out, Computed(raw.Name, *raw.ValueComputed))
	}
	if raw.ValueBlob != nil {
		out = append(out, LargeBinary(raw.Name, raw.ValueBlob))
	}
	if raw.ValueBlobFile != nil {
		out = append(out, LargeBinaryFile(raw.Name, *raw.ValueBlobFile))
	}
	if raw.ValueClob != nil {
		out = append(out, LargeCharacter(raw.Name, *raw.ValueClob))
	}
	if raw.ValueClobFile != nil {
		out = append(out, LargeCharacterFile(raw.Name, *raw.ValueClobFile))
	}
	if raw.Default {
		out = append(out, Default(raw.Name))
	}
	if raw.Null {
		out = append(out, Null(raw.Name))
	}

	switch len(out) {
	case 0:
		*c = Null(raw.Name)
	case 1:
		*c = out[0]
	default:
		return fmt.Errorf("column %s: only one value attribute may be set, got %d", raw.Name, len(out))
	}
	c.AutoIncrement = raw.AutoIncrement
	return nil
}

type mutationJSON struct {
	TableIdentity
	Columns []ColumnValue `json:"columns"`
	Where   string        `json:"where,omitempty"`
}

type changeJSON struct {
	Insert *mutationJSON `json:"insert,omitempty"`
	Update *mutationJSON `json:"update,omitempty"`
}

type changesetJSON struct {
	Changes []changeJSON `json:"changes"`
}

// DecodeChangeset reads a changeset document:
//
//	{"changes": [{"insert": {...}}, {"update": {...}}]}
//
// Changes are returned in document order.
func DecodeChangeset(r io.Reader) ([]Change, error) {
	var doc changesetJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode changeset: %w", err)
	}

	changes := make([]Change, 0, len(doc.Changes))
	for i, ch := range doc.Changes {
		switch {
		case ch.Insert != nil && ch.Update != nil:
			return nil, fmt.Errorf("change %d: insert and update are mutually exclusive", i)
		case ch.Insert != nil:
			if ch.Insert.Where != "" {
				return nil, fmt.Errorf("change %d: insert does not take a where clause", i)
			}
			changes = append(changes, NewInsert(ch.Insert.TableIdentity, ch.Insert.Columns...))
		case ch.Update != nil:
			changes = append(changes, NewUpdate(ch.Update.TableIdentity, ch.Update.Where, ch.Update.Columns...))
		default:
			return nil, fmt.Errorf("change %d: expected insert or update", i)
		}
	}
	return changes, nil
}

// LoadChangeset decodes the changeset at path. Relative large object file
// paths are resolved against the changeset's directory.
func LoadChangeset(path string) ([]Change, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open changeset: %w", err)
	}
	defer f.Close()

	changes, err := DecodeChangeset(f)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, ch := range changes {
		var m *Mutation
		switch c := ch.(type) {
		case *InsertData:
			m = &c.Mutation
		case *UpdateData:
			m = &c.Mutation
		}
		for _, col := range m.columns {
			if col.lob != nil && col.lob.Path != "" && !filepath.IsAbs(col.lob.Path) {
				col.lob.Path = filepath.Join(dir, col.lob.Path)
			}
		}
	}
	return changes, nil
}
