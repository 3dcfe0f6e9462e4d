package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/avicola-api/internal/application/auth"
	"github.com/jhoicas/avicola-api/internal/application/batches"
	"github.com/jhoicas/avicola-api/internal/application/contacts"
	"github.com/jhoicas/avicola-api/internal/application/inventory"
	"github.com/jhoicas/avicola-api/internal/application/transactions"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC   *inventory.UseCase
	TransactionUC *transactions.UseCase
	BatchUC       *batches.UseCase
	ContactUC     *contacts.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin puede borrar registros o cerrar lotes.
	adminOnly := RequireRole(entity.RoleAdmin)

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.TransactionUC)
	invGroup.Get("/item-types", inventoryHandler.GetItemTypes)
	invGroup.Post("/item-stock-details", inventoryHandler.GetItemStockDetails)
	invGroup.Post("/add-feeds-to-stock", inventoryHandler.AddFeedsToStock)
	invGroup.Post("/add-supplements-to-stock", inventoryHandler.AddSupplementsToStock)
	invGroup.Post("/add-chicks-to-stock", inventoryHandler.AddChicksToStock)
	invGroup.Post("/edit-feeds-in-stock", inventoryHandler.EditFeedsInStock)
	invGroup.Post("/edit-supplements-in-stock", inventoryHandler.EditSupplementsInStock)
	invGroup.Post("/edit-chicks-in-stock", inventoryHandler.EditChicksInStock)
	invGroup.Delete("/delete-inventory-record/:id", adminOnly, inventoryHandler.DeleteInventoryRecord)

	// Transacciones (protegido)
	txGroup := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	txGroup.Post("/add-transaction", transactionHandler.Add)
	txGroup.Get("/detail/:id", transactionHandler.GetByID)
	txGroup.Get("/:batchId", transactionHandler.ListByBatch)
	txGroup.Put("/edit-transaction/:id", transactionHandler.Edit)
	txGroup.Delete("/:id", adminOnly, transactionHandler.Delete)

	// Lotes (protegido)
	batchGroup := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.InventoryUC)
	batchGroup.Post("/create-batch", batchHandler.Create)
	batchGroup.Post("/close-batch", adminOnly, batchHandler.Close)
	batchGroup.Get("/last-active", batchHandler.LastActive)
	batchGroup.Get("/inactive-batches", batchHandler.ListInactive)
	batchGroup.Get("/feeds-inv/:batchId", batchHandler.FeedsInvByBatch)
	batchGroup.Get("/supplements-inv/:batchId", batchHandler.SupplementsInvByBatch)

	// Contactos (protegido)
	contactGroup := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contactGroup.Post("/save-contact", contactHandler.Save)
	contactGroup.Get("/contact-suggestions", contactHandler.Suggestions)
}
