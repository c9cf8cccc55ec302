package repositories

import (
	"context"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/google/uuid"
)

type FormRepository interface {
	CreateTemplate(ctx context.Context, template *models.FormTemplate) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.FormTemplate, error)
	ListTemplates(ctx context.Context) ([]*models.FormTemplateSummary, error)
}

type formRepo struct {
	db Database
}

func NewFormRepo(db Database) FormRepository {
	return &formRepo{db: db}
}

// CreateTemplate inserts the template and all of its fields in one
// transaction. A failure on any insert rolls the whole template back.
func (r *formRepo) CreateTemplate(ctx context.Context, template *models.FormTemplate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	templateQuery := `
		INSERT INTO form_templates (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, templateQuery, template.ID, template.Name, template.Description).
		Scan(&template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return err
	}

	fieldQuery := `
		INSERT INTO form_fields (id, template_id, label, field_type, required, field_order, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, field := range template.Fields {
		field.TemplateID = template.ID
		_, err := tx.Exec(ctx, fieldQuery, field.ID, field.TemplateID, field.Label, field.FieldType, field.Required, field.Order, field.Options)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *formRepo) GetTemplate(ctx context.Context, id uuid.UUID) (*models.FormTemplate, error) {
	template := &models.FormTemplate{}
	templateQuery := `
		SELECT id, name, description, created_at, updated_at
		FROM form_templates
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, templateQuery, id).
		Scan(&template.ID, &template.Name, &template.Description, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}

	fieldsQuery := `
		SELECT id, template_id, label, field_type, required, field_order, options
		FROM form_fields
		WHERE template_id = $1
		ORDER BY field_order ASC
	`
	rows, err := r.db.Query(ctx, fieldsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		field := &models.FormField{}
		if err := rows.Scan(&field.ID, &field.TemplateID, &field.Label, &field.FieldType, &field.Required, &field.Order, &field.Options); err != nil {
			return nil, err
		}
		template.Fields = append(template.Fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return template, nil
}

func (r *formRepo) ListTemplates(ctx context.Context) ([]*models.FormTemplateSummary, error) {
	query := `
		SELECT t.id, t.name, t.description, COUNT(f.id) AS fields_count, t.created_at
		FROM form_templates t
		LEFT JOIN form_fields f ON f.template_id = t.id
		GROUP BY t.id, t.name, t.description, t.created_at
		ORDER BY t.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.FormTemplateSummary
	for rows.Next() {
		summary := &models.FormTemplateSummary{}
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Description, &summary.FieldsCount, &summary.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, summary)
	}
	return templates, rows.Err()
}
