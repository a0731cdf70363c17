package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testBranchID = uuid.MustParse("6f1b2c3d-0000-4000-8000-000000000001")

// setupTestDB opens an in-memory SQLite database with every table migrated.
// One connection keeps the in-memory database alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockDB returns a postgres-dialect gorm DB over sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func vnd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedPartner(t *testing.T, db *gorm.DB, pt partner.PartnerType, code string) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(testBranchID, pt, code, "Đối tác "+code, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, NewGormPartnerRepository(db).Save(context.Background(), p))
	return p
}

func seedOrder(t *testing.T, db *gorm.DB, p *partner.Partner, code string, amount int64, createdAt time.Time) *trade.Order {
	t.Helper()
	kind := trade.OrderKindSales
	if p.Type == partner.PartnerTypeSupplier {
		kind = trade.OrderKindPurchase
	}
	line, err := trade.NewOrderLine(catalog.ProductRef(uuid.New()), vnd(1), vnd(amount))
	require.NoError(t, err)
	o, err := trade.NewOrder(kind, code, p.ID, []trade.OrderLine{line}, decimal.Zero, uuid.New())
	require.NoError(t, err)
	o.CreatedAt = createdAt
	o.UpdatedAt = createdAt
	require.NoError(t, NewGormOrderRepository(db).Create(context.Background(), o))
	return o
}
