package handlers

import (
	"net/http"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/common"
	"github.com/RahulRajeev-0/employee-management-system/internal/models"
	"github.com/RahulRajeev-0/employee-management-system/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FormHandlers handles the form-template endpoints
type FormHandlers struct {
	formSvc services.FormService
}

// NewFormHandlers creates a new form handlers instance
func NewFormHandlers(formSvc services.FormService) *FormHandlers {
	return &FormHandlers{formSvc: formSvc}
}

// createdField is the field projection echoed back on create. Options is
// deliberately not included.
type createdField struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	FieldType string    `json:"field_type"`
	Required  bool      `json:"required"`
	Order     int       `json:"order"`
}

type createTemplateResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Fields      []createdField `json:"fields"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CreateTemplate handles creating a form template with its fields as one
// atomic unit.
func (h *FormHandlers) CreateTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateTemplateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	template, err := h.formSvc.CreateTemplate(ctx, req)
	if err != nil {
		if e, ok := common.AsError(err); ok && e.Kind == common.KindValidation {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": e.Message})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := createTemplateResponse{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		CreatedAt:   template.CreatedAt,
		Fields:      make([]createdField, 0, len(template.Fields)),
	}
	for _, field := range template.Fields {
		resp.Fields = append(resp.Fields, createdField{
			ID:        field.ID,
			Label:     field.Label,
			FieldType: field.FieldType,
			Required:  field.Required,
			Order:     field.Order,
		})
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetTemplate handles fetching one template with its fields ordered by the
// order attribute.
func (h *FormHandlers) GetTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Form template not found"})
	}

	template, err := h.formSvc.GetTemplate(ctx, id)
	if err != nil {
		if e, ok := common.AsError(err); ok && e.Kind == common.KindNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": e.Message})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, template)
}

// ListTemplates handles listing all templates newest first, summarized with
// a field count.
func (h *FormHandlers) ListTemplates(c echo.Context) error {
	ctx := c.Request().Context()

	templates, err := h.formSvc.ListTemplates(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if templates == nil {
		templates = []*models.FormTemplateSummary{} // never serialize null
	}

	return c.JSON(http.StatusOK, templates)
}
