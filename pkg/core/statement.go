package core

// StatementKind identifies the shape of a planned statement.
type StatementKind string

const (
	StatementInsert         StatementKind = "insert"
	StatementUpdate         StatementKind = "update"
	StatementPreparedInsert StatementKind = "prepared_insert"
	StatementPreparedUpdate StatementKind = "prepared_update"
)

// Statement is a planned mutation ready for rendering and execution.
type Statement interface {
	Kind() StatementKind
	Target() TableIdentity
	// Prepared reports whether values must be supplied as bound parameters.
	Prepared() bool
}

// ColumnPair is a column name and its inline value.
type ColumnPair struct {
	Name  string
	Value any
}

// Param is a column name and its bindable value.
type Param struct {
	Name  string
	Value any
}

// InsertStatement inserts literal values.
type InsertStatement struct {
	Table  TableIdentity
	Values []ColumnPair
}

func (s *InsertStatement) Kind() StatementKind   { return StatementInsert }
func (s *InsertStatement) Target() TableIdentity { return s.Table }
func (s *InsertStatement) Prepared() bool        { return false }

// AddColumnValue appends a column and its inline value.
func (s *InsertStatement) AddColumnValue(name string, value any) {
	s.Values = append(s.Values, ColumnPair{Name: name, Value: value})
}

// UpdateStatement sets literal values on the rows matched by Where.
type UpdateStatement struct {
	Table  TableIdentity
	Values []ColumnPair
	Where  string
}

func (s *UpdateStatement) Kind() StatementKind   { return StatementUpdate }
func (s *UpdateStatement) Target() TableIdentity { return s.Table }
func (s *UpdateStatement) Prepared() bool        { return false }

func (s *UpdateStatement) AddNewColumnValue(name string, value any) {
	s.Values = append(s.Values, ColumnPair{Name: name, Value: value})
}

// InsertPreparedStatement inserts bound parameters.
type InsertPreparedStatement struct {
	Table  TableIdentity
	Params []Param
}

func (s *InsertPreparedStatement) Kind() StatementKind   { return StatementPreparedInsert }
func (s *InsertPreparedStatement) Target() TableIdentity { return s.Table }
func (s *InsertPreparedStatement) Prepared() bool        { return true }

// UpdatePreparedStatement sets bound parameters on the rows matched by Where.
type UpdatePreparedStatement struct {
	Table  TableIdentity
	Params []Param
	Where  string
}

func (s *UpdatePreparedStatement) Kind() StatementKind   { return StatementPreparedUpdate }
func (s *UpdatePreparedStatement) Target() TableIdentity { return s.Table }
func (s *UpdatePreparedStatement) Prepared() bool        { return true }

func bindParams(columns []ColumnValue) []Param {
	params := make([]Param, 0, len(columns))
	for _, c := range columns {
		params = append(params, Param{Name: c.Name, Value: c.BindableValue()})
	}
	return params
}
