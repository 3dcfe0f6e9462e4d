package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/avicola-api/internal/application/contacts"
	"github.com/jhoicas/avicola-api/internal/application/dto"
	"github.com/jhoicas/avicola-api/internal/domain"
)

// ContactHandler maneja los contactos de compra/venta (protegido).
type ContactHandler struct {
	uc *contacts.UseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *contacts.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar un contacto si no existe
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveContactRequest  true  "name, type (buyer|seller)"
// @Success      200  {object}  dto.SaveContactResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contacts/save-contact [post]
func (h *ContactHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	contact, existed, err := h.uc.Save(c.Context(), in.Name, in.Type)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y type son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existed {
		return c.JSON(dto.MessageResponse{Message: "el contacto ya existe"})
	}
	return c.JSON(dto.SaveContactResponse{ContactID: contact.ID})
}

// Suggestions godoc
// @Summary      Autocompletado de contactos por nombre y tipo
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  true  "texto a buscar"
// @Param        type   query  string  true  "buyer o seller"
// @Success      200  {array}   dto.ContactResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contacts/contact-suggestions [get]
func (h *ContactHandler) Suggestions(c *fiber.Ctx) error {
	query := c.Query("query")
	contactType := c.Query("type")
	list, err := h.uc.Suggest(c.Context(), query, contactType)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query y type son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromContacts(list))
}
