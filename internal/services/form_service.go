package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RahulRajeev-0/employee-management-system/internal/common"
	"github.com/RahulRajeev-0/employee-management-system/internal/models"
	"github.com/RahulRajeev-0/employee-management-system/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TemplateFieldInput is one field entry of a create-template request.
type TemplateFieldInput struct {
	Label     string          `json:"label"`
	FieldType string          `json:"field_type"`
	Required  bool            `json:"required"`
	Order     *int            `json:"order"`
	Options   json.RawMessage `json:"options"`
}

// CreateTemplateInput is the create-template request payload.
type CreateTemplateInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Fields      []TemplateFieldInput `json:"fields"`
}

// FormService implements the form-template operations.
type FormService interface {
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.FormTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.FormTemplate, error)
	ListTemplates(ctx context.Context) ([]*models.FormTemplateSummary, error)
}

type formService struct {
	formRepo repositories.FormRepository
}

func NewFormService(formRepo repositories.FormRepository) FormService {
	return &formService{formRepo: formRepo}
}

// CreateTemplate validates the template and every field before any write,
// then persists template plus fields as one transaction. order defaults to
// the field's position in the input list.
func (s *formService) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.FormTemplate, error) {
	if input.Name == "" {
		return nil, common.ValidationError("name", "Form template name is required")
	}
	if len(input.Fields) == 0 {
		return nil, common.ValidationError("fields", "At least one field is required")
	}

	template := &models.FormTemplate{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	for idx, fieldInput := range input.Fields {
		if fieldInput.Label == "" {
			return nil, common.ValidationError("fields", fmt.Sprintf("Field at index %d is missing a label", idx))
		}
		if !models.ValidFieldTypes[fieldInput.FieldType] {
			return nil, common.ValidationError("fields", fmt.Sprintf("Field '%s' has invalid field type", fieldInput.Label))
		}

		order := idx
		if fieldInput.Order != nil {
			order = *fieldInput.Order
		}

		template.Fields = append(template.Fields, &models.FormField{
			ID:        uuid.New(),
			Label:     fieldInput.Label,
			FieldType: fieldInput.FieldType,
			Required:  fieldInput.Required,
			Order:     order,
			Options:   fieldInput.Options,
		})
	}

	if err := s.formRepo.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *formService) GetTemplate(ctx context.Context, id uuid.UUID) (*models.FormTemplate, error) {
	template, err := s.formRepo.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundError("Form template not found")
		}
		return nil, err
	}
	return template, nil
}

func (s *formService) ListTemplates(ctx context.Context) ([]*models.FormTemplateSummary, error) {
	return s.formRepo.ListTemplates(ctx)
}
