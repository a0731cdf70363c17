package handler

import (
	"context"

	appcatalog "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/catalog"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Catalog manages materials and products
type Catalog interface {
	CreateMaterial(ctx context.Context, req appcatalog.CreateItemRequest) (*appcatalog.ItemResponse, error)
	CreateProduct(ctx context.Context, req appcatalog.CreateItemRequest) (*appcatalog.ItemResponse, error)
	GetMaterial(ctx context.Context, id uuid.UUID) (*appcatalog.ItemResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*appcatalog.ItemResponse, error)
	ListMaterials(ctx context.Context, filter shared.Filter) (*shared.Paginated[appcatalog.ItemResponse], error)
	ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[appcatalog.ItemResponse], error)
}

// CatalogHandler serves materials and products
type CatalogHandler struct {
	BaseHandler
	catalog Catalog
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type createItemFunc func(context.Context, appcatalog.CreateItemRequest) (*appcatalog.ItemResponse, error)

func (h *CatalogHandler) create(c *gin.Context, fn createItemFunc) {
	var req appcatalog.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := fn(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item)
}

func (h *CatalogHandler) get(c *gin.Context, fn func(context.Context, uuid.UUID) (*appcatalog.ItemResponse, error)) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	item, err := fn(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, item)
}

func (h *CatalogHandler) list(c *gin.Context, fn func(context.Context, shared.Filter) (*shared.Paginated[appcatalog.ItemResponse], error)) {
	filter, ok := h.ListQuery(c)
	if !ok {
		return
	}
	result, err := fn(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	page(c, result)
}

// CreateMaterial godoc
// @ID           createMaterial
// @Summary      Create a material
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateItemRequest true "Material"
// @Success      201 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /materials [post]
func (h *CatalogHandler) CreateMaterial(c *gin.Context) { h.create(c, h.catalog.CreateMaterial) }

// CreateProduct godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateItemRequest true "Product"
// @Success      201 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) { h.create(c, h.catalog.CreateProduct) }

// GetMaterial godoc
// @ID           getMaterial
// @Summary      Get a material
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /materials/{id} [get]
func (h *CatalogHandler) GetMaterial(c *gin.Context) { h.get(c, h.catalog.GetMaterial) }

// GetProduct godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) { h.get(c, h.catalog.GetProduct) }

// ListMaterials godoc
// @ID           listMaterials
// @Summary      List materials
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Code or name"
// @Success      200 {object} APIResponse[[]appcatalog.ItemResponse]
// @Router       /materials [get]
func (h *CatalogHandler) ListMaterials(c *gin.Context) { h.list(c, h.catalog.ListMaterials) }

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Code or name"
// @Success      200 {object} APIResponse[[]appcatalog.ItemResponse]
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) { h.list(c, h.catalog.ListProducts) }
