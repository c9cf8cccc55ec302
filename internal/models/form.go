package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Supported form field types
const (
	FieldTypeText     = "text"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
	FieldTypePassword = "password"
	FieldTypeEmail    = "email"
)

// ValidFieldTypes enumerates the accepted field_type values.
var ValidFieldTypes = map[string]bool{
	FieldTypeText:     true,
	FieldTypeNumber:   true,
	FieldTypeDate:     true,
	FieldTypePassword: true,
	FieldTypeEmail:    true,
}

type FormTemplate struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	Fields      []*FormField `json:"fields,omitempty" db:"-"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

type FormField struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	TemplateID uuid.UUID       `json:"template_id" db:"template_id"`
	Label      string          `json:"label" db:"label"`
	FieldType  string          `json:"field_type" db:"field_type"`
	Required   bool            `json:"required" db:"required"`
	Order      int             `json:"order" db:"field_order"`
	Options    json.RawMessage `json:"options" db:"options"` // For choice-like fields; null when unset
}

// FormTemplateSummary is the list-endpoint projection of a template.
type FormTemplateSummary struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	FieldsCount int       `json:"fields_count" db:"fields_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
