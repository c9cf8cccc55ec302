package repositories

import (
	"context"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

type employeeRepo struct {
	db Database
}

func NewEmployeeRepo(db Database) EmployeeRepository {
	return &employeeRepo{db: db}
}

// Create inserts the employee and its field values in one transaction.
// Values are stored as text; callers convert according to the referenced
// form field's declared type.
func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	employeeQuery := `
		INSERT INTO employees (id, template_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, employeeQuery, employee.ID, employee.TemplateID); err != nil {
		return err
	}

	fieldQuery := `
		INSERT INTO employee_fields (id, employee_id, field_id, value)
		VALUES ($1, $2, $3, $4)
	`
	for _, field := range employee.Fields {
		field.EmployeeID = employee.ID
		if _, err := tx.Exec(ctx, fieldQuery, field.ID, field.EmployeeID, field.FieldID, field.Value); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *employeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	employee := &models.Employee{}
	employeeQuery := `
		SELECT id, template_id, created_at, updated_at
		FROM employees
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, employeeQuery, id).
		Scan(&employee.ID, &employee.TemplateID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return nil, err
	}

	fieldsQuery := `
		SELECT id, employee_id, field_id, value
		FROM employee_fields
		WHERE employee_id = $1
	`
	rows, err := r.db.Query(ctx, fieldsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		field := &models.EmployeeField{}
		if err := rows.Scan(&field.ID, &field.EmployeeID, &field.FieldID, &field.Value); err != nil {
			return nil, err
		}
		employee.Fields = append(employee.Fields, field)
	}
	return employee, rows.Err()
}
