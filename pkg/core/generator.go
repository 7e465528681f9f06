package core

import (
	"fmt"
	"strings"
	"time"
)

// Generator renders statements for a Dialect.
type Generator struct {
	Dialect Dialect
}

func NewGenerator(d Dialect) *Generator {
	return &Generator{Dialect: d}
}

// Generate implements StatementGenerator.
func (g *Generator) Generate(stmt Statement) (string, []any, error) {
	if stmt == nil {
		return "", nil, fmt.Errorf("statement cannot be nil")
	}
	if stmt.Target().Table == "" {
		return "", nil, ErrTableRequired
	}

	switch s := stmt.(type) {
	case *InsertStatement:
		return g.insert(s.Table, pairsToParams(s.Values), false)
	case *InsertPreparedStatement:
		return g.insert(s.Table, s.Params, true)
	case *UpdateStatement:
		return g.update(s.Table, pairsToParams(s.Values), s.Where, false)
	case *UpdatePreparedStatement:
		return g.update(s.Table, s.Params, s.Where, true)
	default:
		return "", nil, fmt.Errorf("%w: %T", ErrUnknownStatement, stmt)
	}
}

func (g *Generator) insert(table TableIdentity, params []Param, bind bool) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO " + g.qualify(table))

	if len(params) == 0 {
		if e, ok := g.Dialect.(EmptyInsertDialect); ok {
			return e.EmptyInsert(g.qualify(table)), nil, nil
		}
		sb.WriteString(" DEFAULT VALUES")
		return sb.String(), nil, nil
	}

	cols := make([]string, len(params))
	vals := make([]string, len(params))
	var args []any
	for i, p := range params {
		cols[i] = g.Dialect.QuoteIdentifier(p.Name)
		v, err := g.value(p.Value, bind, &args)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", p.Name, err)
		}
		vals[i] = v
	}
	sb.WriteString(fmt.Sprintf(" (%s) VALUES (%s)", strings.Join(cols, ", "), strings.Join(vals, ", ")))
	return sb.String(), args, nil
}

func (g *Generator) update(table TableIdentity, params []Param, where string, bind bool) (string, []any, error) {
	if len(params) == 0 {
		return "", nil, fmt.Errorf("update %s: %w", table.Table, ErrNoColumns)
	}

	sets := make([]string, len(params))
	var args []any
	for i, p := range params {
		v, err := g.value(p.Value, bind, &args)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", p.Name, err)
		}
		sets[i] = g.Dialect.QuoteIdentifier(p.Name) + " = " + v
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("UPDATE %s SET %s", g.qualify(table), strings.Join(sets, ", ")))
	// where is user SQL and goes in as written
	if strings.TrimSpace(where) != "" {
		sb.WriteString(" WHERE " + where)
	}
	return sb.String(), args, nil
}

// value renders v as a placeholder (appending it to args) or as a literal.
// Expressions and DEFAULT are always written inline since they cannot be
// bound.
func (g *Generator) value(v any, bind bool, args *[]any) (string, error) {
	switch val := v.(type) {
	case Expression:
		return string(val), nil
	case DefaultValue:
		return "DEFAULT", nil
	}
	if bind {
		*args = append(*args, v)
		return g.Dialect.Placeholder(len(*args)), nil
	}
	return g.literal(v)
}

func (g *Generator) literal(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return QuoteString(val), nil
	case Number:
		if val == "" {
			return "NULL", nil
		}
		if !validNumber(string(val)) {
			return "", fmt.Errorf("%w: %q", ErrInvalidNumber, string(val))
		}
		return string(val), nil
	case bool:
		return g.Dialect.FormatBool(val), nil
	case time.Time:
		return g.Dialect.FormatTime(val), nil
	case Date:
		return QuoteString(val.String()), nil
	case TimeOfDay:
		return QuoteString(val.String()), nil
	case *LargeObject:
		return "", ErrLargeObjectInline
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", val), nil
	default:
		return "", fmt.Errorf("unsupported literal type %T", v)
	}
}

func (g *Generator) qualify(t TableIdentity) string {
	parts := t.Qualified()
	for i, p := range parts {
		parts[i] = g.Dialect.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// QuoteString returns s as a single-quoted SQL string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdent wraps name in q, doubling any q inside it.
func QuoteIdent(name, q string) string {
	return q + strings.ReplaceAll(name, q, q+q) + q
}

func pairsToParams(pairs []ColumnPair) []Param {
	params := make([]Param, len(pairs))
	for i, p := range pairs {
		params[i] = Param(p)
	}
	return params
}
