package transport

import (
	"net/http"
	"strconv"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
	"github.com/Nayelic98/backend-spring-01/internal/middleware"
	"github.com/Nayelic98/backend-spring-01/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public reads
		r.Get("/list", h.List)
		r.Get("/paginated", h.FindPaged)
		r.Get("/slice", h.FindSliced)
		r.Get("/search", h.Search)
		r.Get("/user/{userID}", h.FindByOwner)
		r.Get("/{id}", h.FindByID)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(middleware.RequireAdmin(h.logger)).Get("/", h.List)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles the unpaged, full product listing
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

// FindPaged handles paginated listing with total-count metadata
func (h *ProductHandler) FindPaged(w http.ResponseWriter, r *http.Request) {
	page, size, sort, err := parsePageParams(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.productService.FindPaged(r.Context(), page, size, sort)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductPageResponse(result))
}

// FindSliced handles count-free pagination with a has-next flag
func (h *ProductHandler) FindSliced(w http.ResponseWriter, r *http.Request) {
	page, size, sort, err := parsePageParams(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.productService.FindSliced(r.Context(), page, size, sort)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductSliceResponse(result))
}

// Search handles filtered, paginated product search
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, size, sort, err := parsePageParams(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters, err := parseProductFilters(r.URL.Query())
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.productService.Search(r.Context(), filters, page, size, sort)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductPageResponse(result))
}

// FindByOwner handles filtered, paginated listing scoped to one owner
func (h *ProductHandler) FindByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	page, size, sort, err := parsePageParams(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters, err := parseProductFilters(r.URL.Query())
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.productService.FindByOwner(r.Context(), ownerID, filters, page, size, sort)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductPageResponse(result))
}

// FindByID handles single product lookup
func (h *ProductHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, h.logger, err)
		return
	}

	product, err := h.productService.Create(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("owner_id", product.Owner.ID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update handles a wholesale product update gated on ownership
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, h.logger, err)
		return
	}

	product, err := h.productService.Update(r.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		CategoryIDs: req.CategoryIDs,
	}, principal)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete handles product deletion gated on ownership
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id, principal); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Error("Principal not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return domain.Principal{}, false
	}
	return principal, true
}
