package core

import (
	"reflect"
	"testing"
)

var (
	withAutoIncrement    = StaticCapabilities{AutoIncrement: true}
	withoutAutoIncrement = StaticCapabilities{AutoIncrement: false}
	person               = TableIdentity{Table: "person"}
)

// countingCaps records how often the planner asks about auto-increment.
type countingCaps struct {
	supports bool
	calls    int
}

func (c *countingCaps) SupportsAutoIncrement() bool {
	c.calls++
	return c.supports
}

func singleStatement(t *testing.T, stmts []Statement) Statement {
	t.Helper()
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(stmts))
	}
	return stmts[0]
}

func TestPlanInsertPlain(t *testing.T) {
	data := NewInsert(person, Numeric("id", "1"), Text("name", "Ann"))

	stmt := singleStatement(t, PlanInsert(data, withoutAutoIncrement))
	insert, ok := stmt.(*InsertStatement)
	if !ok {
		t.Fatalf("expected *InsertStatement, got %T", stmt)
	}

	expected := []ColumnPair{
		{Name: "id", Value: Number("1")},
		{Name: "name", Value: "Ann"},
	}
	if !reflect.DeepEqual(insert.Values, expected) {
		t.Errorf("values mismatch:\n  Got: %+v\n  Want: %+v", insert.Values, expected)
	}
	if insert.Prepared() {
		t.Error("plain insert reported as prepared")
	}
}

func TestPlanInsertSkipsAutoIncrement(t *testing.T) {
	data := NewInsert(person, Numeric("id", "1").WithAutoIncrement(true), Text("name", "Ann"))

	insert := singleStatement(t, PlanInsert(data, withAutoIncrement)).(*InsertStatement)
	expected := []ColumnPair{{Name: "name", Value: "Ann"}}
	if !reflect.DeepEqual(insert.Values, expected) {
		t.Errorf("values mismatch:\n  Got: %+v\n  Want: %+v", insert.Values, expected)
	}
}

func TestPlanInsertKeepsAutoIncrementWithoutSupport(t *testing.T) {
	data := NewInsert(person, Numeric("id", "1").WithAutoIncrement(true), Text("name", "Ann"))

	insert := singleStatement(t, PlanInsert(data, withoutAutoIncrement)).(*InsertStatement)
	if len(insert.Values) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(insert.Values))
	}
	if insert.Values[0].Name != "id" {
		t.Errorf("expected id first, got %s", insert.Values[0].Name)
	}
}

func TestPlanInsertAutoIncrementFalseIsKept(t *testing.T) {
	data := NewInsert(person, Numeric("id", "1").WithAutoIncrement(false))

	insert := singleStatement(t, PlanInsert(data, withAutoIncrement)).(*InsertStatement)
	if len(insert.Values) != 1 {
		t.Fatalf("expected id to be kept, got %+v", insert.Values)
	}
}

func TestPlanInsertAllSkipped(t *testing.T) {
	data := NewInsert(person, Numeric("id", "1").WithAutoIncrement(true))

	insert := singleStatement(t, PlanInsert(data, withAutoIncrement)).(*InsertStatement)
	if len(insert.Values) != 0 {
		t.Errorf("expected no pairs, got %+v", insert.Values)
	}
}

func TestPlanInsertLargeObjectIsPrepared(t *testing.T) {
	photo := []byte{0x89, 'P', 'N', 'G'}
	data := NewInsert(person,
		Numeric("id", "1").WithAutoIncrement(true),
		LargeBinary("photo", photo),
	)

	stmt := singleStatement(t, PlanInsert(data, withAutoIncrement))
	prepared, ok := stmt.(*InsertPreparedStatement)
	if !ok {
		t.Fatalf("expected *InsertPreparedStatement, got %T", stmt)
	}
	if len(prepared.Params) != 2 {
		t.Fatalf("expected 2 params including auto-increment id, got %d", len(prepared.Params))
	}
	if prepared.Params[0].Name != "id" || prepared.Params[1].Name != "photo" {
		t.Errorf("unexpected param order: %+v", prepared.Params)
	}
	lob, ok := prepared.Params[1].Value.(*LargeObject)
	if !ok {
		t.Fatalf("expected *LargeObject for photo, got %T", prepared.Params[1].Value)
	}
	if lob.Character {
		t.Error("photo should be binary")
	}
	if prepared.Target() != person {
		t.Errorf("target mismatch: %+v", prepared.Target())
	}
}

func TestPlanInsertQueriesCapabilityOnce(t *testing.T) {
	caps := &countingCaps{supports: true}
	data := NewInsert(person,
		Numeric("a", "1").WithAutoIncrement(true),
		Numeric("b", "2").WithAutoIncrement(true),
		Text("c", "x"),
	)
	PlanInsert(data, caps)
	if caps.calls != 1 {
		t.Errorf("expected one capability query, got %d", caps.calls)
	}
}

func TestPlanUpdatePlain(t *testing.T) {
	data := NewUpdate(person, "id=1", Text("name", "Bob"))

	stmt := singleStatement(t, PlanUpdate(data))
	update, ok := stmt.(*UpdateStatement)
	if !ok {
		t.Fatalf("expected *UpdateStatement, got %T", stmt)
	}
	expected := []ColumnPair{{Name: "name", Value: "Bob"}}
	if !reflect.DeepEqual(update.Values, expected) {
		t.Errorf("values mismatch:\n  Got: %+v\n  Want: %+v", update.Values, expected)
	}
	if update.Where != "id=1" {
		t.Errorf("where = %q, want %q", update.Where, "id=1")
	}
}

func TestPlanUpdateNeverSkipsAutoIncrement(t *testing.T) {
	data := NewUpdate(person, "", Numeric("id", "7").WithAutoIncrement(true), Text("name", "Bob"))

	update := singleStatement(t, data.Statements(withAutoIncrement)).(*UpdateStatement)
	if len(update.Values) != 2 {
		t.Errorf("expected every column, got %+v", update.Values)
	}
}

func TestPlanUpdateLargeObjectIsPrepared(t *testing.T) {
	data := NewUpdate(person, "id=2", LargeCharacter("bio", "long text"))

	stmt := singleStatement(t, PlanUpdate(data))
	prepared, ok := stmt.(*UpdatePreparedStatement)
	if !ok {
		t.Fatalf("expected *UpdatePreparedStatement, got %T", stmt)
	}
	if len(prepared.Params) != 1 || prepared.Params[0].Name != "bio" {
		t.Errorf("unexpected params: %+v", prepared.Params)
	}
	if prepared.Where != "id=2" {
		t.Errorf("where = %q, want %q", prepared.Where, "id=2")
	}
}

func TestPlanUpdateWherePassThrough(t *testing.T) {
	wheres := []string{"", "   ", "id = 1 AND name = 'O''Brien'", "garbage ((("}
	for _, where := range wheres {
		plain := singleStatement(t, PlanUpdate(NewUpdate(person, where, Text("a", "b")))).(*UpdateStatement)
		if plain.Where != where {
			t.Errorf("plain where = %q, want %q", plain.Where, where)
		}
		prepared := singleStatement(t, PlanUpdate(NewUpdate(person, where, LargeBinary("a", nil)))).(*UpdatePreparedStatement)
		if prepared.Where != where {
			t.Errorf("prepared where = %q, want %q", prepared.Where, where)
		}
	}
}

func TestPlanPairCounts(t *testing.T) {
	tests := []struct {
		name      string
		columns   []ColumnValue
		caps      bool
		insertLen int
	}{
		{"no flags", []ColumnValue{Text("a", "1"), Text("b", "2")}, true, 2},
		{"one flagged", []ColumnValue{Text("a", "1").WithAutoIncrement(true), Text("b", "2")}, true, 1},
		{"flagged without support", []ColumnValue{Text("a", "1").WithAutoIncrement(true), Text("b", "2")}, false, 2},
		{"empty", nil, true, 0},
		{"mixed kinds", []ColumnValue{Null("a"), Default("b"), Computed("c", "NOW()"), Boolean("d", true)}, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insert := singleStatement(t, PlanInsert(NewInsert(person, tt.columns...), StaticCapabilities{AutoIncrement: tt.caps})).(*InsertStatement)
			if len(insert.Values) != tt.insertLen {
				t.Errorf("insert pairs = %d, want %d", len(insert.Values), tt.insertLen)
			}
			update := singleStatement(t, PlanUpdate(NewUpdate(person, "", tt.columns...))).(*UpdateStatement)
			if len(update.Values) != len(tt.columns) {
				t.Errorf("update pairs = %d, want %d", len(update.Values), len(tt.columns))
			}
		})
	}
}

func TestPlanIsIdempotent(t *testing.T) {
	insert := NewInsert(person, Numeric("id", "1").WithAutoIncrement(true), Text("name", "Ann"), LargeCharacter("bio", "x"))
	if !reflect.DeepEqual(PlanInsert(insert, withAutoIncrement), PlanInsert(insert, withAutoIncrement)) {
		t.Error("insert planning is not idempotent")
	}
	update := NewUpdate(person, "id=1", Text("name", "Ann"))
	if !reflect.DeepEqual(PlanUpdate(update), PlanUpdate(update)) {
		t.Error("update planning is not idempotent")
	}
	if insert.Len() != 3 || update.Len() != 1 {
		t.Error("planning mutated the descriptor")
	}
}

func TestConfirmationMessages(t *testing.T) {
	insert := NewInsert(TableIdentity{Schema: "public", Table: "person"})
	if got := insert.ConfirmationMessage(); got != "New row inserted into person" {
		t.Errorf("insert confirmation = %q", got)
	}
	update := NewUpdate(TableIdentity{Table: "person"}, "id=1")
	if got := update.ConfirmationMessage(); got != "Data updated in person" {
		t.Errorf("update confirmation = %q", got)
	}
}
