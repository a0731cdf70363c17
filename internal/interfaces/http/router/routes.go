package router

import (
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/handler"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/middleware"
)

// Handlers bundles every API handler
type Handlers struct {
	Finance    *handler.FinanceHandler
	Inventory  *handler.InventoryHandler
	Partner    *handler.PartnerHandler
	Catalog    *handler.CatalogHandler
	Order      *handler.OrderHandler
	Production *handler.ProductionHandler
}

// APIGroups returns the resource groups of the ERP API. Routes that
// record an acting user require the X-User-ID header.
func APIGroups(h Handlers) []RouteRegistrar {
	actor := middleware.RequireActor()

	settlements := NewDomainGroup("settlements", "/settlements").
		POST("", actor, h.Finance.SettlePayment)

	debts := NewDomainGroup("debts", "/debts").
		GET("", h.Finance.ListDebts).
		GET("/:id/payments", h.Finance.DebtPayments)

	bankAccounts := NewDomainGroup("bank-accounts", "/bank-accounts").
		POST("", h.Finance.CreateBankAccount).
		GET("", h.Finance.ListBankAccounts).
		GET("/:id", h.Finance.GetBankAccount)

	partners := NewDomainGroup("partners", "/partners").
		POST("", h.Partner.Create).
		GET("", h.Partner.List).
		GET("/:id", h.Partner.GetByID).
		GET("/:id/debt-summary", h.Finance.DebtSummary)

	materials := NewDomainGroup("materials", "/materials").
		POST("", h.Catalog.CreateMaterial).
		GET("", h.Catalog.ListMaterials).
		GET("/:id", h.Catalog.GetMaterial)

	products := NewDomainGroup("products", "/products").
		POST("", h.Catalog.CreateProduct).
		GET("", h.Catalog.ListProducts).
		GET("/:id", h.Catalog.GetProduct).
		GET("/:id/bom", h.Production.ProductBOM)

	warehouses := NewDomainGroup("warehouses", "/warehouses").
		POST("", h.Inventory.CreateWarehouse).
		GET("", h.Inventory.ListWarehouses).
		GET("/:id", h.Inventory.GetWarehouse).
		GET("/:id/balances", h.Inventory.WarehouseBalance)

	inventory := NewDomainGroup("inventory", "/inventory/transactions").
		POST("", actor, h.Inventory.CreateTransaction).
		GET("", h.Inventory.ListTransactions).
		GET("/:id", h.Inventory.GetTransaction).
		POST("/:id/approve", actor, h.Inventory.ApproveTransaction).
		POST("/:id/reject", actor, h.Inventory.RejectTransaction)

	orders := NewDomainGroup("orders", "/orders").
		POST("", actor, h.Order.Create).
		GET("", h.Order.List).
		GET("/:id", h.Order.GetByID).
		POST("/:id/confirm", actor, h.Order.Confirm).
		POST("/:id/cancel", actor, h.Order.Cancel)

	production := NewDomainGroup("production", "/production-orders").
		POST("", actor, h.Production.Create).
		GET("", h.Production.List).
		GET("/:id", h.Production.GetByID).
		GET("/:id/material-requirements", h.Production.MaterialRequirements).
		POST("/:id/material-import", actor, h.Production.RecordMaterialImport).
		POST("/:id/advance", actor, h.Production.AdvanceStep).
		POST("/:id/finished-goods-receipt", actor, h.Production.RecordFinishedGoodsReceipt)

	bom := NewDomainGroup("bom", "/bom").
		POST("", h.Production.UpsertBOM)

	return []RouteRegistrar{
		settlements, debts, bankAccounts, partners, materials, products,
		warehouses, inventory, orders, production, bom,
	}
}
