package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type EmployeeRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    EmployeeRepository
	context context.Context
}

func (suite *EmployeeRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewEmployeeRepo(mock)
	suite.context = context.Background()
}

func (suite *EmployeeRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestEmployeeRepoTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeRepoTestSuite))
}

func (suite *EmployeeRepoTestSuite) TestCreate_StoresValuesAsText() {
	employee := &models.Employee{
		ID:         uuid.New(),
		TemplateID: uuid.New(),
		Fields: []*models.EmployeeField{
			{ID: uuid.New(), FieldID: uuid.New(), Value: "Jane Doe"},
			// A number field's answer is still persisted as text
			{ID: uuid.New(), FieldID: uuid.New(), Value: "34"},
		},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO employees (id, template_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`)).WithArgs(employee.ID, employee.TemplateID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, field := range employee.Fields {
		suite.mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO employee_fields (id, employee_id, field_id, value)
		VALUES ($1, $2, $3, $4)
	`)).WithArgs(field.ID, employee.ID, field.FieldID, field.Value).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, employee)
	assert.NoError(suite.T(), err)
	for _, field := range employee.Fields {
		assert.Equal(suite.T(), employee.ID, field.EmployeeID)
	}
}

func (suite *EmployeeRepoTestSuite) TestGetByID() {
	id := uuid.New()
	templateID := uuid.New()
	fieldID := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, template_id, created_at, updated_at
		FROM employees
		WHERE id = $1
	`)).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "template_id", "created_at", "updated_at"}).
			AddRow(id, templateID, now, now))
	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, employee_id, field_id, value
		FROM employee_fields
		WHERE employee_id = $1
	`)).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "field_id", "value"}).
			AddRow(uuid.New(), id, fieldID, "Jane Doe"))

	employee, err := suite.repo.GetByID(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), templateID, employee.TemplateID)
	assert.Len(suite.T(), employee.Fields, 1)
	assert.Equal(suite.T(), "Jane Doe", employee.Fields[0].Value)
}
