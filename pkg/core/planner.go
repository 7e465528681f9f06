package core

// Capabilities describes what the target database does on its own.
type Capabilities interface {
	// SupportsAutoIncrement reports whether the database generates values for
	// auto-increment columns.
	SupportsAutoIncrement() bool
}

// StaticCapabilities is a fixed Capabilities value.
type StaticCapabilities struct {
	AutoIncrement bool
}

func (c StaticCapabilities) SupportsAutoIncrement() bool {
	return c.AutoIncrement
}

// Change is a mutation that can be validated and planned into statements.
type Change interface {
	Validate() error
	Statements(caps Capabilities) []Statement
	ConfirmationMessage() string
}

// PlanInsert plans an insert. Any large object routes every column, including
// auto-increment ones, to a single prepared statement. Otherwise a literal
// insert is produced, omitting auto-increment columns when the database
// generates them.
func PlanInsert(data *InsertData, caps Capabilities) []Statement {
	if needsBinding(data.columns) {
		return []Statement{&InsertPreparedStatement{
			Table:  data.TableIdentity,
			Params: bindParams(data.columns),
		}}
	}

	stmt := &InsertStatement{Table: data.TableIdentity}
	skipAuto := caps.SupportsAutoIncrement()
	for _, c := range data.columns {
		if skipAuto && c.IsAutoIncrement() {
			continue
		}
		// never fails: large objects took the prepared path above
		v, _ := c.InlineValue()
		stmt.AddColumnValue(c.Name, v)
	}
	return []Statement{stmt}
}

// PlanUpdate plans an update. Unlike PlanInsert, auto-increment columns are
// always written. Where is attached unchanged.
func PlanUpdate(data *UpdateData) []Statement {
	if needsBinding(data.columns) {
		return []Statement{&UpdatePreparedStatement{
			Table:  data.TableIdentity,
			Params: bindParams(data.columns),
			Where:  data.Where,
		}}
	}

	stmt := &UpdateStatement{Table: data.TableIdentity}
	for _, c := range data.columns {
		v, _ := c.InlineValue()
		stmt.AddNewColumnValue(c.Name, v)
	}
	stmt.Where = data.Where
	return []Statement{stmt}
}

func ConfirmInsert(data *InsertData) string {
	return "New row inserted into " + data.Table
}

func ConfirmUpdate(data *UpdateData) string {
	return "Data updated in " + data.Table
}

func (d *InsertData) Statements(caps Capabilities) []Statement {
	return PlanInsert(d, caps)
}

func (d *InsertData) ConfirmationMessage() string {
	return ConfirmInsert(d)
}

// Statements plans the update; caps is not consulted.
func (d *UpdateData) Statements(Capabilities) []Statement {
	return PlanUpdate(d)
}

func (d *UpdateData) ConfirmationMessage() string {
	return ConfirmUpdate(d)
}
