package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type FormRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    FormRepository
	context context.Context
}

func (suite *FormRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewFormRepo(mock)
	suite.context = context.Background()
}

func (suite *FormRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestFormRepoTestSuite(t *testing.T) {
	suite.Run(t, new(FormRepoTestSuite))
}

func (suite *FormRepoTestSuite) template(fields ...*models.FormField) *models.FormTemplate {
	return &models.FormTemplate{
		ID:          uuid.New(),
		Name:        "Onboarding",
		Description: "New employee information",
		Fields:      fields,
	}
}

func (suite *FormRepoTestSuite) TestCreateTemplate_Success() {
	template := suite.template(
		&models.FormField{ID: uuid.New(), Label: "Name", FieldType: models.FieldTypeText, Required: true, Order: 0},
		&models.FormField{ID: uuid.New(), Label: "Age", FieldType: models.FieldTypeNumber, Order: 1},
	)
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO form_templates (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`)).WithArgs(template.ID, template.Name, template.Description).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	for _, field := range template.Fields {
		suite.mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO form_fields (id, template_id, label, field_type, required, field_order, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)).WithArgs(field.ID, template.ID, field.Label, field.FieldType, field.Required, field.Order, field.Options).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()

	err := suite.repo.CreateTemplate(suite.context, template)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), now, template.CreatedAt)
	for _, field := range template.Fields {
		assert.Equal(suite.T(), template.ID, field.TemplateID)
	}
}

func (suite *FormRepoTestSuite) TestCreateTemplate_FieldInsertFailureRollsBack() {
	template := suite.template(
		&models.FormField{ID: uuid.New(), Label: "Name", FieldType: models.FieldTypeText, Order: 0},
	)
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO form_templates (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`)).WithArgs(template.ID, template.Name, template.Description).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	suite.mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO form_fields (id, template_id, label, field_type, required, field_order, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)).WithArgs(template.Fields[0].ID, template.ID, template.Fields[0].Label, template.Fields[0].FieldType, template.Fields[0].Required, template.Fields[0].Order, template.Fields[0].Options).
		WillReturnError(errors.New("insert failed"))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateTemplate(suite.context, template)
	assert.Error(suite.T(), err)
}

func (suite *FormRepoTestSuite) TestGetTemplate_NotFound() {
	id := uuid.New()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, description, created_at, updated_at
		FROM form_templates
		WHERE id = $1
	`)).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	template, err := suite.repo.GetTemplate(suite.context, id)
	assert.Nil(suite.T(), template)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *FormRepoTestSuite) TestGetTemplate_FieldsOrdered() {
	id := uuid.New()
	now := time.Now()
	fieldA := uuid.New()
	fieldB := uuid.New()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, description, created_at, updated_at
		FROM form_templates
		WHERE id = $1
	`)).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(id, "Onboarding", "", now, now))
	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, template_id, label, field_type, required, field_order, options
		FROM form_fields
		WHERE template_id = $1
		ORDER BY field_order ASC
	`)).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "template_id", "label", "field_type", "required", "field_order", "options"}).
			AddRow(fieldA, id, "Name", "text", true, 0, []byte(nil)).
			AddRow(fieldB, id, "Age", "number", false, 1, []byte(nil)))

	template, err := suite.repo.GetTemplate(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), template.Fields, 2)
	assert.Equal(suite.T(), 0, template.Fields[0].Order)
	assert.Equal(suite.T(), 1, template.Fields[1].Order)
}

func (suite *FormRepoTestSuite) TestListTemplates() {
	now := time.Now()
	older := now.Add(-time.Hour)
	newestID := uuid.New()
	oldestID := uuid.New()

	suite.mock.ExpectQuery(`SELECT t\.id, t\.name, t\.description, COUNT\(f\.id\) AS fields_count, t\.created_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "fields_count", "created_at"}).
			AddRow(newestID, "Onboarding", "", 2, now).
			AddRow(oldestID, "Exit interview", "", 5, older))

	templates, err := suite.repo.ListTemplates(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), templates, 2)
	assert.Equal(suite.T(), newestID, templates[0].ID)
	assert.Equal(suite.T(), 2, templates[0].FieldsCount)
}
