package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/avicola-api/internal/application/dto"
	"github.com/jhoicas/avicola-api/internal/application/transactions"
	"github.com/jhoicas/avicola-api/internal/domain"
)

// TransactionHandler maneja las transacciones financieras (protegido).
type TransactionHandler struct {
	uc *transactions.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transactions.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Add godoc
// @Summary      Registrar transacción (venta o gasto)
// @Description  Una venta descuenta pollitos vendidos del linaje; un gasto de
//
//	Feeds, Supplements o Chicks reabastece el inventario del lote.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddTransactionRequest  true  "batchId, transactionDate, transactionType, itemType, itemName, contactName, quantity, pricePerUnit"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions/add-transaction [post]
func (h *TransactionHandler) Add(c *fiber.Ctx) error {
	var in dto.AddTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.TransactionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "transactionDate inválida, formato esperado YYYY-MM-DD"})
	}
	tx, err := h.uc.Add(c.Context(), transactions.AddInput{
		BatchID:      in.BatchID,
		Date:         date,
		Type:         in.TransactionType,
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		ContactName:  in.ContactName,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		TotalCost:    in.TotalCost,
	})
	if err != nil {
		if err == domain.ErrBatchNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BATCH_NOT_FOUND", Message: "el lote no existe"})
		}
		if err == domain.ErrInvalidItemType {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ITEM_TYPE", Message: "itemType inválido para el tipo de transacción"})
		}
		if err == domain.ErrNoChicksTransaction {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_CHICKS_TRANSACTION", Message: "el lote no tiene transacciones de pollitos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "transacción registrada",
		"result":  dto.FromTransaction(*tx),
	})
}

// ListByBatch godoc
// @Summary      Transacciones de un lote activo
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  int  true  "id del lote"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions/{batchId} [get]
func (h *TransactionHandler) ListByBatch(c *fiber.Ctx) error {
	batchID, err := c.ParamsInt("batchId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batchId inválido"})
	}
	txs, err := h.uc.ListByBatch(c.Context(), int64(batchID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromTransactions(txs))
}

// GetByID godoc
// @Summary      Detalle de una transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/detail/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	tx, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromTransaction(*tx))
}

// Edit godoc
// @Summary      Editar una transacción
// @Description  Reescribe la transacción sin tocar el inventario.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "id de la transacción"
// @Param        body  body  dto.EditTransactionRequest  true  "reemplazo completo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/edit-transaction/{id} [put]
func (h *TransactionHandler) Edit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.EditTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.TransactionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "transactionDate inválida, formato esperado YYYY-MM-DD"})
	}
	err = h.uc.Edit(c.Context(), transactions.EditInput{
		ID:           int64(id),
		BatchID:      in.BatchID,
		Date:         date,
		Type:         in.TransactionType,
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		ContactName:  in.ContactName,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		TotalCost:    in.TotalCost,
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "transacción actualizada"})
}

// Delete godoc
// @Summary      Borrar una transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id de la transacción"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "transacción eliminada"})
}
