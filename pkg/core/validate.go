package core

import (
	"errors"
	"fmt"
	"strings"
)

// rule is a required-field check run before planning.
type rule struct {
	field string
	check func(m *Mutation) error
}

var mutationRules = []rule{
	{field: "tableName", check: func(m *Mutation) error {
		if strings.TrimSpace(m.Table) == "" {
			return ErrTableRequired
		}
		return nil
	}},
	{field: "columns", check: func(m *Mutation) error {
		if len(m.columns) == 0 {
			return ErrColumnsRequired
		}
		return nil
	}},
	{field: "columns.name", check: func(m *Mutation) error {
		var errs []error
		for i, c := range m.columns {
			if strings.TrimSpace(c.Name) == "" {
				errs = append(errs, fmt.Errorf("column %d: %w", i, ErrColumnNameRequired))
			}
		}
		return errors.Join(errs...)
	}},
}

func validateMutation(m *Mutation) error {
	var errs []error
	for _, r := range mutationRules {
		if err := r.check(m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.field, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the required fields of an insert.
func (d *InsertData) Validate() error {
	if err := validateMutation(&d.Mutation); err != nil {
		return fmt.Errorf("insert into %q: %w", d.Table, err)
	}
	return nil
}

// Validate checks the required fields of an update. Where is not inspected.
func (d *UpdateData) Validate() error {
	if err := validateMutation(&d.Mutation); err != nil {
		return fmt.Errorf("update %q: %w", d.Table, err)
	}
	return nil
}
