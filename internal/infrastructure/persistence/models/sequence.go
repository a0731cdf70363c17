package models

// DocumentSequenceModel is the per-(prefix, day) counter behind document codes.
type DocumentSequenceModel struct {
	Prefix    string `gorm:"type:varchar(10);primaryKey"`
	SeqDate   string `gorm:"type:varchar(10);primaryKey"`
	LastValue int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}

// AllModels lists every persistence model, in dependency order, for AutoMigrate in tests.
func AllModels() []any {
	return []any{
		&PartnerModel{},
		&MaterialModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&DebtRecordModel{},
		&DebtPaymentModel{},
		&BankAccountModel{},
		&WarehouseModel{},
		&InventoryBalanceModel{},
		&InventoryTransactionModel{},
		&InventoryTransactionDetailModel{},
		&ProductionOrderModel{},
		&ProductionOrderLineModel{},
		&ProductionStepLogModel{},
		&BOMLineModel{},
		&DocumentSequenceModel{},
	}
}
