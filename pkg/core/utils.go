package core

import "regexp"

// largeObjectKinds are the value kinds that cannot be written as SQL literals.
var largeObjectKinds = map[ValueKind]struct{}{
	KindLargeBinary:    {},
	KindLargeCharacter: {},
}

// IsLargeObject reports whether values of kind k force a prepared statement.
func (k ValueKind) IsLargeObject() bool {
	_, ok := largeObjectKinds[k]
	return ok
}

// needsBinding reports whether any column carries a large object.
func needsBinding(columns []ColumnValue) bool {
	for _, c := range columns {
		if c.IsLargeBinary() || c.IsLargeCharacter() {
			return true
		}
	}
	return false
}

// numberPattern accepts plain decimal literals with an optional exponent.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func validNumber(s string) bool {
	return numberPattern.MatchString(s)
}
