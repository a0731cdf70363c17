package handler

import (
	"context"

	apppartner "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/partner"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Partners manages customers and suppliers
type Partners interface {
	Create(ctx context.Context, req apppartner.CreatePartnerRequest) (*apppartner.PartnerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*apppartner.PartnerResponse, error)
	List(ctx context.Context, filter apppartner.PartnerListFilter) (*shared.Paginated[apppartner.PartnerResponse], error)
}

// PartnerHandler serves customers and suppliers
type PartnerHandler struct {
	BaseHandler
	partners Partners
}

// NewPartnerHandler creates a PartnerHandler
func NewPartnerHandler(partners Partners) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// Create godoc
// @ID           createPartner
// @Summary      Create a customer or supplier
// @Description  opening_debt seeds the partner's debt amount
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body apppartner.CreatePartnerRequest true "Partner"
// @Success      201 {object} APIResponse[apppartner.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	var req apppartner.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.partners.Create(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p)
}

// GetByID godoc
// @ID           getPartner
// @Summary      Get a partner
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[apppartner.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	p, err := h.partners.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, p)
}

// List godoc
// @ID           listPartners
// @Summary      List partners
// @Tags         partners
// @Produce      json
// @Param        type query string false "customer or supplier"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]apppartner.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	var filter apppartner.PartnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	result, err := h.partners.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}
