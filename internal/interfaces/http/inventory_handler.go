package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/avicola-api/internal/application/dto"
	"github.com/jhoicas/avicola-api/internal/application/inventory"
	"github.com/jhoicas/avicola-api/internal/application/transactions"
	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario
// (protegido). Las rutas de alimentos, suplementos y pollitos comparten los
// mismos handlers parametrizados por mercancía.
type InventoryHandler struct {
	uc   *inventory.UseCase
	txUC *transactions.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, txUC *transactions.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, txUC: txUC}
}

// GetItemTypes godoc
// @Summary      Pares (tipo, nombre) distintos con lote activo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/item-types [get]
func (h *InventoryHandler) GetItemTypes(c *fiber.Ctx) error {
	entries, err := h.txUC.ListItemTypes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "tipos de ítem recuperados",
		"result":  dto.FromItemTypes(entries),
	})
}

// GetItemStockDetails godoc
// @Summary      Historial de un ítem en lotes activos
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemStockDetailsRequest  true  "item_type, item_name"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/item-stock-details [post]
func (h *InventoryHandler) GetItemStockDetails(c *fiber.Ctx) error {
	var in dto.ItemStockDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows, err := h.uc.ItemStockDetails(c.Context(), entity.Commodity(in.ItemType), in.ItemName)
	if err != nil {
		if err == domain.ErrInvalidItemType {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ITEM_TYPE", Message: "item_type debe ser Feeds, Supplements o Chicks"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "historial recuperado",
		"result":  dto.FromLedgerRows(rows),
	})
}

// AddFeedsToStock godoc
// @Summary      Registrar consumo de alimento y apendear fila de arrastre
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendStockRequest  true  "id, date, amount_left, amount_consumed"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/add-feeds-to-stock [post]
func (h *InventoryHandler) AddFeedsToStock(c *fiber.Ctx) error {
	return h.appendDepletion(c, entity.CommodityFeeds)
}

// AddSupplementsToStock registra consumo de suplemento; mismo contrato que
// add-feeds-to-stock.
func (h *InventoryHandler) AddSupplementsToStock(c *fiber.Ctx) error {
	return h.appendDepletion(c, entity.CommoditySupplements)
}

// AddChicksToStock registra mortalidad/venta de pollitos. A diferencia de
// alimentos y suplementos no valida la cota de consumo.
func (h *InventoryHandler) AddChicksToStock(c *fiber.Ctx) error {
	return h.appendDepletion(c, entity.CommodityChicks)
}

func (h *InventoryHandler) appendDepletion(c *fiber.Ctx, commodity entity.Commodity) error {
	var in dto.AppendStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválida, formato esperado YYYY-MM-DD"})
	}
	err = h.uc.AppendDepletion(c.Context(), commodity, inventory.AppendInput{
		ID:             in.ID,
		BatchID:        in.BatchID,
		ItemName:       in.ItemName,
		Date:           date,
		AmountLeft:     in.AmountLeft,
		AmountConsumed: in.AmountConsumed,
		ReadyToHarvest: in.ReadyToHarvest,
		Undersize:      in.Undersize,
		Sold:           in.Sold,
		Mortality:      in.Mortality,
	})
	if err != nil {
		if err == domain.ErrDepletionExceedsBalance {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DEPLETION_EXCEEDS_BALANCE", Message: "el consumo supera el saldo disponible"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de inventario no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "fila actualizada y registro nuevo apendeado"})
}

// EditFeedsInStock godoc
// @Summary      Editar una fila de alimento y propagar la cascada
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EditStockRequest  true  "id, date, amount_left, amount_consumed"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/edit-feeds-in-stock [post]
func (h *InventoryHandler) EditFeedsInStock(c *fiber.Ctx) error {
	return h.editStock(c, entity.CommodityFeeds)
}

// EditSupplementsInStock edita una fila de suplemento; mismo contrato que
// edit-feeds-in-stock.
func (h *InventoryHandler) EditSupplementsInStock(c *fiber.Ctx) error {
	return h.editStock(c, entity.CommoditySupplements)
}

// EditChicksInStock edita una fila de pollitos. La cascada corre con guard de
// saldo negativo: las filas que quedarían en rojo se omiten.
func (h *InventoryHandler) EditChicksInStock(c *fiber.Ctx) error {
	return h.editStock(c, entity.CommodityChicks)
}

func (h *InventoryHandler) editStock(c *fiber.Ctx, commodity entity.Commodity) error {
	var in dto.EditStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválida, formato esperado YYYY-MM-DD"})
	}
	err = h.uc.EditStock(c.Context(), commodity, inventory.EditInput{
		ID:             in.ID,
		Date:           date,
		AmountLeft:     in.AmountLeft,
		AmountConsumed: in.AmountConsumed,
		ReadyToHarvest: in.ReadyToHarvest,
		Undersize:      in.Undersize,
		Sold:           in.Sold,
		Mortality:      in.Mortality,
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de inventario no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "fila editada y filas posteriores ajustadas"})
}

// DeleteInventoryRecord godoc
// @Summary      Borrar una fila del ledger y re-anclar las posteriores
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "id de la fila"
// @Param        body  body  dto.DeleteInventoryRequest  true  "itemType, itemName, batchId"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/delete-inventory-record/{id} [delete]
func (h *InventoryHandler) DeleteInventoryRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.DeleteInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err = h.uc.Delete(c.Context(), inventory.DeleteInput{
		ID:       int64(id),
		ItemType: entity.Commodity(in.ItemType),
		ItemName: in.ItemName,
		BatchID:  in.BatchID,
	})
	if err != nil {
		if err == domain.ErrInvalidItemType {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ITEM_TYPE", Message: "itemType debe ser Feeds, Supplements o Chicks"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de inventario no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "fila borrada y filas posteriores actualizadas"})
}

// parseDate acepta el formato del frontend (YYYY-MM-DD) y RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
