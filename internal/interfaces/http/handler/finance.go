package handler

import (
	"context"

	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/finance"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Settler settles a partner payment against open orders
type Settler interface {
	SettlePayment(ctx context.Context, req appfinance.SettlePaymentRequest, actorID uuid.UUID) (*finance.SettlementResult, error)
}

// DebtLedger answers debt ledger queries
type DebtLedger interface {
	List(ctx context.Context, filter appfinance.DebtListFilter) (*shared.Paginated[appfinance.DebtRecordResponse], error)
	Payments(ctx context.Context, debtRecordID uuid.UUID) ([]appfinance.DebtPaymentResponse, error)
	Summary(ctx context.Context, partnerID uuid.UUID) (*appfinance.DebtSummaryResponse, error)
}

// BankAccounts manages bank accounts
type BankAccounts interface {
	Create(ctx context.Context, req appfinance.CreateBankAccountRequest) (*appfinance.BankAccountResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*appfinance.BankAccountResponse, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[appfinance.BankAccountResponse], error)
}

// FinanceHandler serves settlements, the debt ledger and bank accounts
type FinanceHandler struct {
	BaseHandler
	settler Settler
	debts   DebtLedger
	banks   BankAccounts
}

// NewFinanceHandler creates a FinanceHandler
func NewFinanceHandler(settler Settler, debts DebtLedger, banks BankAccounts) *FinanceHandler {
	return &FinanceHandler{settler: settler, debts: debts, banks: banks}
}

// SettlePayment godoc
// @ID           settlePayment
// @Summary      Settle a partner payment
// @Description  Allocates the amount FIFO over the partner's open orders, oldest first, or onto one order when order_id is set
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user" format(uuid)
// @Param        request body appfinance.SettlePaymentRequest true "Payment"
// @Success      201 {object} APIResponse[finance.SettlementResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /settlements [post]
func (h *FinanceHandler) SettlePayment(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req appfinance.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	result, err := h.settler.SettlePayment(c.Request.Context(), req, actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, result)
}

// ListDebts godoc
// @ID           listDebts
// @Summary      List debt records
// @Tags         debts
// @Produce      json
// @Param        partner_id query string false "Partner" format(uuid)
// @Param        debt_type query string false "RECEIVABLE or PAYABLE"
// @Param        status query string false "PARTIAL or PAID"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appfinance.DebtRecordResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /debts [get]
func (h *FinanceHandler) ListDebts(c *gin.Context) {
	var q struct {
		DebtType string `form:"debt_type" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
		Status   string `form:"status" binding:"omitempty,oneof=PARTIAL PAID"`
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	partnerID, ok := h.QueryID(c, "partner_id")
	if !ok {
		return
	}
	result, err := h.debts.List(c.Request.Context(), appfinance.DebtListFilter{
		PartnerID: partnerID,
		DebtType:  q.DebtType,
		Status:    q.Status,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}

// DebtPayments godoc
// @ID           listDebtPayments
// @Summary      List the payments of a debt record
// @Tags         debts
// @Produce      json
// @Param        id path string true "Debt record ID" format(uuid)
// @Success      200 {object} APIResponse[[]appfinance.DebtPaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /debts/{id}/payments [get]
func (h *FinanceHandler) DebtPayments(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	payments, err := h.debts.Payments(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	if payments == nil {
		payments = []appfinance.DebtPaymentResponse{}
	}
	h.Success(c, payments)
}

// DebtSummary godoc
// @ID           getPartnerDebtSummary
// @Summary      Summarise a partner's open debt
// @Tags         debts
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[appfinance.DebtSummaryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id}/debt-summary [get]
func (h *FinanceHandler) DebtSummary(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	summary, err := h.debts.Summary(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, summary)
}

// CreateBankAccount godoc
// @ID           createBankAccount
// @Summary      Create a bank account
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        request body appfinance.CreateBankAccountRequest true "Bank account"
// @Success      201 {object} APIResponse[appfinance.BankAccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /bank-accounts [post]
func (h *FinanceHandler) CreateBankAccount(c *gin.Context) {
	var req appfinance.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	account, err := h.banks.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, account)
}

// GetBankAccount godoc
// @ID           getBankAccount
// @Summary      Get a bank account
// @Tags         bank-accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      200 {object} APIResponse[appfinance.BankAccountResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /bank-accounts/{id} [get]
func (h *FinanceHandler) GetBankAccount(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	account, err := h.banks.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, account)
}

// ListBankAccounts godoc
// @ID           listBankAccounts
// @Summary      List bank accounts
// @Tags         bank-accounts
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appfinance.BankAccountResponse]
// @Router       /bank-accounts [get]
func (h *FinanceHandler) ListBankAccounts(c *gin.Context) {
	filter, ok := h.ListQuery(c)
	if !ok {
		return
	}
	result, err := h.banks.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}
