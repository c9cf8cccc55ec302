package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a stored record linking a person to the form template it was
// captured with. Deleting a referenced template is blocked by the datastore.
type Employee struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	TemplateID uuid.UUID        `json:"template_id" db:"template_id"`
	Fields     []*EmployeeField `json:"fields,omitempty" db:"-"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}

// EmployeeField holds one submitted answer. Values are stored as text
// regardless of the referenced field's declared type; consumers convert
// according to FormField.FieldType.
type EmployeeField struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	FieldID    uuid.UUID `json:"field_id" db:"field_id"`
	Value      string    `json:"value" db:"value"`
}
