package production

import (
	"context"

	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/production"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
)

// TransactionScope runs a production unit of work. Step changes and the inventory
// transactions they raise commit together or not at all.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories extends the inventory repositories with production state
type TransactionalRepositories interface {
	appinv.TransactionalRepositories
	ProductionOrderRepo() production.ProductionOrderRepository
	BOMRepo() production.BOMRepository
	OrderRepo() trade.OrderRepository
}
