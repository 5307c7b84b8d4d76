package transport

import (
	"time"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
	"github.com/Nayelic98/backend-spring-01/internal/service"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	OwnerID     int64   `json:"owner_id" validate:"required"`
	CategoryIDs []int64 `json:"category_ids"`
}

// UpdateProductRequest represents the wholesale product update payload.
// Absent category_ids clears the category set; the owner cannot change.
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	CategoryIDs []int64 `json:"category_ids"`
}

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// OwnerSummary is the compact owner shape embedded in product responses
type OwnerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategorySummary is the compact category shape embedded in product responses
type CategorySummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductResponse is the wire-facing product shape
type ProductResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Description string            `json:"description"`
	Owner       OwnerSummary      `json:"owner"`
	Categories  []CategorySummary `json:"categories"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductPageResponse is a page of products with total-count metadata
type ProductPageResponse struct {
	Content    []ProductResponse `json:"content"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// ProductSliceResponse is a page of products with only a has-next flag
type ProductSliceResponse struct {
	Content []ProductResponse `json:"content"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
	HasNext bool              `json:"has_next"`
}

// CategoryResponse is the wire-facing category shape
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserResponse is the wire-facing user shape
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// toProductResponse flattens a product into the response shape: the owner
// becomes a compact summary and categories a list of compact summaries.
// Pure transformation, no business logic.
func toProductResponse(product *domain.Product) ProductResponse {
	categories := make([]CategorySummary, 0, len(product.Categories))
	for _, category := range product.Categories {
		categories = append(categories, CategorySummary{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Owner: OwnerSummary{
			ID:    product.Owner.ID,
			Name:  product.Owner.Name,
			Email: product.Owner.Email,
		},
		Categories: categories,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}
	return responses
}

func toProductPageResponse(page *service.ProductPage) ProductPageResponse {
	return ProductPageResponse{
		Content:    toProductResponses(page.Items),
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

func toProductSliceResponse(slice *service.ProductSlice) ProductSliceResponse {
	return ProductSliceResponse{
		Content: toProductResponses(slice.Items),
		Page:    slice.Page,
		Size:    slice.Size,
		HasNext: slice.HasNext,
	}
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

func toUserResponse(user *domain.User) UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}
