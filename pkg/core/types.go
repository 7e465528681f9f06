package core

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// ValueKind tags the content carried by a ColumnValue.
type ValueKind string

const (
	KindText           ValueKind = "text"
	KindNumeric        ValueKind = "numeric"
	KindBoolean        ValueKind = "boolean"
	KindTemporal       ValueKind = "temporal"
	KindLargeBinary    ValueKind = "blob"
	KindLargeCharacter ValueKind = "clob"
	KindComputed       ValueKind = "computed"
	KindNull           ValueKind = "null"
	KindDefault        ValueKind = "default"
)

// Expression is a raw SQL expression (e.g. "CURRENT_TIMESTAMP") that is written
// into a statement unquoted.
type Expression string

// Number is numeric literal text, e.g. "42" or "-3.50".
type Number string

// Value implements driver.Valuer so numbers bind as integers or floats when
// they parse as one.
func (n Number) Value() (driver.Value, error) {
	if n == "" {
		return nil, nil
	}
	if !validNumber(string(n)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, string(n))
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return f, nil
	}
	return string(n), nil
}

// TemporalPrecision records which parts of a temporal value are meaningful.
type TemporalPrecision string

const (
	PrecisionTimestamp TemporalPrecision = "timestamp"
	PrecisionDate      TemporalPrecision = "date"
	PrecisionTime      TemporalPrecision = "time"
)

// Date is a calendar date without a time of day.
type Date time.Time

func (d Date) String() string { return time.Time(d).Format(time.DateOnly) }

func (d Date) Value() (driver.Value, error) { return d.String(), nil }

// TimeOfDay is a wall clock time without a date.
type TimeOfDay time.Time

func (t TimeOfDay) String() string { return time.Time(t).Format("15:04:05.999999999") }

func (t TimeOfDay) Value() (driver.Value, error) { return t.String(), nil }

// DefaultValue marks a column that should take the database default.
type DefaultValue struct{}

// TableIdentity identifies the target relation of a mutation.
type TableIdentity struct {
	Catalog string `json:"catalogName,omitempty"`
	Schema  string `json:"schemaName,omitempty"`
	Table   string `json:"tableName"`
}

// Qualified returns the identity parts that are set, outermost first.
func (t TableIdentity) Qualified() []string {
	parts := make([]string, 0, 3)
	if t.Catalog != "" {
		parts = append(parts, t.Catalog)
	}
	if t.Schema != "" {
		parts = append(parts, t.Schema)
	}
	return append(parts, t.Table)
}

// ColumnValue describes the content of one column in a mutation.
type ColumnValue struct {
	Name string
	// AutoIncrement is nil when unset.
	AutoIncrement *bool

	kind      ValueKind
	text      string
	boolean   bool
	when      time.Time
	precision TemporalPrecision
	lob       *LargeObject
}

func Text(name, value string) ColumnValue {
	return ColumnValue{Name: name, kind: KindText, text: value}
}

// Numeric stores the number as its decimal text so no precision is lost
// between declaration and rendering.
func Numeric(name, value string) ColumnValue {
	return ColumnValue{Name: name, kind: KindNumeric, text: value}
}

func Boolean(name string, value bool) ColumnValue {
	return ColumnValue{Name: name, kind: KindBoolean, boolean: value}
}

func Temporal(name string, value time.Time) ColumnValue {
	return ColumnValue{Name: name, kind: KindTemporal, when: value, precision: PrecisionTimestamp}
}

// TemporalDate keeps only the calendar date of value.
func TemporalDate(name string, value time.Time) ColumnValue {
	return ColumnValue{Name: name, kind: KindTemporal, when: value, precision: PrecisionDate}
}

// TemporalTime keeps only the time of day of value.
func TemporalTime(name string, value time.Time) ColumnValue {
	return ColumnValue{Name: name, kind: KindTemporal, when: value, precision: PrecisionTime}
}

func Computed(name, expr string) ColumnValue {
	return ColumnValue{Name: name, kind: KindComputed, text: expr}
}

func Null(name string) ColumnValue {
	return ColumnValue{Name: name, kind: KindNull}
}

func Default(name string) ColumnValue {
	return ColumnValue{Name: name, kind: KindDefault}
}

// LargeBinary holds binary content that must be bound, never inlined.
func LargeBinary(name string, data []byte) ColumnValue {
	return ColumnValue{Name: name, kind: KindLargeBinary, lob: &LargeObject{data: data}}
}

// LargeBinaryFile references binary content that is read from path when the
// statement is bound.
func LargeBinaryFile(name, path string) ColumnValue {
	return ColumnValue{Name: name, kind: KindLargeBinary, lob: &LargeObject{Path: path}}
}

func LargeCharacter(name, data string) ColumnValue {
	return ColumnValue{Name: name, kind: KindLargeCharacter, lob: &LargeObject{Character: true, data: []byte(data)}}
}

func LargeCharacterFile(name, path string) ColumnValue {
	return ColumnValue{Name: name, kind: KindLargeCharacter, lob: &LargeObject{Character: true, Path: path}}
}

// WithAutoIncrement returns a copy of c with the auto-increment flag set.
func (c ColumnValue) WithAutoIncrement(v bool) ColumnValue {
	c.AutoIncrement = &v
	return c
}

func (c ColumnValue) Kind() ValueKind {
	return c.kind
}

// Precision is empty for non-temporal values.
func (c ColumnValue) Precision() TemporalPrecision {
	return c.precision
}

func (c ColumnValue) IsLargeBinary() bool {
	return c.kind == KindLargeBinary
}

func (c ColumnValue) IsLargeCharacter() bool {
	return c.kind == KindLargeCharacter
}

func (c ColumnValue) IsLargeObject() bool {
	return c.kind.IsLargeObject()
}

// IsAutoIncrement reports whether the flag is set and true.
func (c ColumnValue) IsAutoIncrement() bool {
	return c.AutoIncrement != nil && *c.AutoIncrement
}

// BindableValue resolves the value for a parameter list. Large objects are
// returned as *LargeObject and opened by the executor when it binds them.
func (c ColumnValue) BindableValue() any {
	switch c.kind {
	case KindLargeBinary, KindLargeCharacter:
		return c.lob
	case KindText:
		return c.text
	case KindNumeric:
		return Number(c.text)
	case KindBoolean:
		return c.boolean
	case KindTemporal:
		switch c.precision {
		case PrecisionDate:
			return Date(c.when)
		case PrecisionTime:
			return TimeOfDay(c.when)
		}
		return c.when
	case KindComputed:
		return Expression(c.text)
	case KindDefault:
		return DefaultValue{}
	default:
		return nil
	}
}

// InlineValue resolves the value for direct inclusion in a plain statement.
// Large objects are rejected with ErrLargeObjectInline.
func (c ColumnValue) InlineValue() (any, error) {
	if c.IsLargeObject() {
		return nil, ErrLargeObjectInline
	}
	return c.BindableValue(), nil
}
