package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/avicola-api/internal/application/batches"
	"github.com/jhoicas/avicola-api/internal/application/dto"
	"github.com/jhoicas/avicola-api/internal/application/inventory"
	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// BatchHandler maneja el ciclo de vida de los lotes (protegido).
type BatchHandler struct {
	uc    *batches.UseCase
	invUC *inventory.UseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *batches.UseCase, invUC *inventory.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc, invUC: invUC}
}

// Create godoc
// @Summary      Abrir un lote de producción
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "batchName"
// @Success      201  {object}  dto.CreateBatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/batches/create-batch [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Create(c.Context(), in.BatchName)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batchName es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateBatchResponse{BatchID: batch.ID})
}

// Close godoc
// @Summary      Cerrar un lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseBatchRequest  true  "batchId"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/close-batch [post]
func (h *BatchHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Close(c.Context(), in.BatchID); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "lote cerrado"})
}

// LastActive godoc
// @Summary      Lote activo más reciente
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LastActiveBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/last-active [get]
func (h *BatchHandler) LastActive(c *fiber.Ctx) error {
	batch, err := h.uc.LastActive(c.Context())
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay lotes activos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromBatch(*batch))
}

// ListInactive godoc
// @Summary      Lotes cerrados con transacciones e historial de pollitos
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InactiveBatchResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/batches/inactive-batches [get]
func (h *BatchHandler) ListInactive(c *fiber.Ctx) error {
	summaries, err := h.uc.ListInactive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InactiveBatchResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.FromInactiveBatch(s))
	}
	return c.JSON(out)
}

// FeedsInvByBatch godoc
// @Summary      Inventario de alimentos de un lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  int  true  "id del lote"
// @Success      200  {array}   dto.LedgerRowResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/feeds-inv/{batchId} [get]
func (h *BatchHandler) FeedsInvByBatch(c *fiber.Ctx) error {
	return h.inventoryByBatch(c, entity.CommodityFeeds)
}

// SupplementsInvByBatch devuelve el inventario de suplementos de un lote;
// mismo contrato que feeds-inv.
func (h *BatchHandler) SupplementsInvByBatch(c *fiber.Ctx) error {
	return h.inventoryByBatch(c, entity.CommoditySupplements)
}

// Un lote sin filas responde 404, igual que el contrato histórico del
// frontend.
func (h *BatchHandler) inventoryByBatch(c *fiber.Ctx, commodity entity.Commodity) error {
	batchID, err := c.ParamsInt("batchId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batchId inválido"})
	}
	rows, err := h.invUC.InventoryByBatch(c.Context(), commodity, int64(batchID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el lote no tiene inventario registrado"})
	}
	return c.JSON(dto.FromLedgerRows(rows))
}
