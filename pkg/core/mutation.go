package core

// Mutation is the table identity and ordered column list shared by insert and
// update changes. The column list is owned by the mutation; Columns returns a
// copy.
type Mutation struct {
	TableIdentity
	columns []ColumnValue
}

// AddColumn appends columns in order.
func (m *Mutation) AddColumn(cols ...ColumnValue) {
	m.columns = append(m.columns, cols...)
}

// RemoveColumn removes the first column with the given name and reports
// whether one was found.
func (m *Mutation) RemoveColumn(name string) bool {
	for i, c := range m.columns {
		if c.Name == name {
			m.columns = append(m.columns[:i:i], m.columns[i+1:]...)
			return true
		}
	}
	return false
}

// Columns returns a copy of the column list.
func (m *Mutation) Columns() []ColumnValue {
	out := make([]ColumnValue, len(m.columns))
	copy(out, m.columns)
	return out
}

func (m *Mutation) Len() int {
	return len(m.columns)
}

// InsertData inserts one row into an existing table.
type InsertData struct {
	Mutation
}

// NewInsert returns an insert into table with the given columns.
func NewInsert(id TableIdentity, cols ...ColumnValue) *InsertData {
	d := &InsertData{Mutation{TableIdentity: id}}
	d.AddColumn(cols...)
	return d
}

// UpdateData updates the rows matched by Where. Where is raw SQL and is
// passed through untouched; empty means every row.
type UpdateData struct {
	Mutation
	Where string
}

func NewUpdate(id TableIdentity, where string, cols ...ColumnValue) *UpdateData {
	d := &UpdateData{Mutation: Mutation{TableIdentity: id}, Where: where}
	d.AddColumn(cols...)
	return d
}
