package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
	"github.com/Nayelic98/backend-spring-01/internal/pagination"
	"github.com/Nayelic98/backend-spring-01/internal/repository"
)

var ErrAccessDenied = errors.New("you cannot modify products you do not own")

// ProductFilters holds the optional search constraints accepted by the read
// operations. All provided filters are AND-combined.
type ProductFilters struct {
	Name       *string
	MinPrice   *float64
	MaxPrice   *float64
	CategoryID *int64
}

// ProductPage is a page of products with total-count metadata.
type ProductPage struct {
	Items      []*domain.Product
	Page       int
	Size       int
	TotalItems int
	TotalPages int
}

// ProductSlice is a page of products with only a has-next flag, cheaper to
// compute than a full page because no count query runs.
type ProductSlice struct {
	Items   []*domain.Product
	Page    int
	Size    int
	HasNext bool
}

// CreateProductInput carries the fields for product creation.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	OwnerID     int64
	CategoryIDs []int64
}

// UpdateProductInput carries the fields for a wholesale product update. A nil
// CategoryIDs clears the category set; the owner is immutable.
type UpdateProductInput struct {
	Name        string
	Price       float64
	Description string
	CategoryIDs []int64
}

// ProductService defines the product catalog business logic: four read
// shapes over the same filter matrix, plus ownership-gated mutations.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindPaged(ctx context.Context, page, size int, sort []string) (*ProductPage, error)
	FindSliced(ctx context.Context, page, size int, sort []string) (*ProductSlice, error)
	Search(ctx context.Context, filters ProductFilters, page, size int, sort []string) (*ProductPage, error)
	FindByOwner(ctx context.Context, ownerID int64, filters ProductFilters, page, size int, sort []string) (*ProductPage, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput, principal domain.Principal) (*domain.Product, error)
	Delete(ctx context.Context, id int64, principal domain.Principal) error
}

type productService struct {
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	sortFields   pagination.SortFields
}

// NewProductService creates a new instance of ProductService. The sort field
// whitelist is injected so it can be varied independently of the service.
func NewProductService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	sortFields pagination.SortFields,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		sortFields:   sortFields,
	}
}

// List returns every product in store-default order, without paging
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// FindByID returns a single product
func (s *productService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// FindPaged returns one page of products plus total-count metadata
func (s *productService) FindPaged(ctx context.Context, page, size int, sort []string) (*ProductPage, error) {
	req, err := pagination.NewPageRequest(page, size, sort, s.sortFields)
	if err != nil {
		return nil, err
	}

	items, total, err := s.productRepo.FindPage(ctx, repository.ProductFilter{}, req)
	if err != nil {
		return nil, err
	}

	return s.toPage(items, total, req), nil
}

// FindSliced returns one page of products plus a has-next flag, skipping the
// total count
func (s *productService) FindSliced(ctx context.Context, page, size int, sort []string) (*ProductSlice, error) {
	req, err := pagination.NewPageRequest(page, size, sort, s.sortFields)
	if err != nil {
		return nil, err
	}

	items, hasNext, err := s.productRepo.FindSlice(ctx, req)
	if err != nil {
		return nil, err
	}

	return &ProductSlice{Items: items, Page: req.Page, Size: req.Size, HasNext: hasNext}, nil
}

// Search returns a filtered page of products with total-count metadata
func (s *productService) Search(ctx context.Context, filters ProductFilters, page, size int, sort []string) (*ProductPage, error) {
	if err := pagination.ValidatePriceRange(filters.MinPrice, filters.MaxPrice); err != nil {
		return nil, err
	}

	req, err := pagination.NewPageRequest(page, size, sort, s.sortFields)
	if err != nil {
		return nil, err
	}

	items, total, err := s.productRepo.FindPage(ctx, toRepoFilter(filters, nil), req)
	if err != nil {
		return nil, err
	}

	return s.toPage(items, total, req), nil
}

// FindByOwner returns a filtered page of products scoped to one owner. It
// fails with the user not-found error when the owner does not exist.
func (s *productService) FindByOwner(ctx context.Context, ownerID int64, filters ProductFilters, page, size int, sort []string) (*ProductPage, error) {
	exists, err := s.userRepo.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if !exists {
		return nil, repository.ErrUserNotFound
	}

	if err := pagination.ValidatePriceRange(filters.MinPrice, filters.MaxPrice); err != nil {
		return nil, err
	}

	req, err := pagination.NewPageRequest(page, size, sort, s.sortFields)
	if err != nil {
		return nil, err
	}

	items, total, err := s.productRepo.FindPage(ctx, toRepoFilter(filters, &ownerID), req)
	if err != nil {
		return nil, err
	}

	return s.toPage(items, total, req), nil
}

// Create persists a new product after checking that the owner exists, every
// category resolves, and the name is free. The name check is a fast path;
// the database unique constraint is the real enforcement point against
// concurrent creators.
func (s *productService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	owner, err := s.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	taken, err := s.productRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if taken {
		return nil, repository.ErrProductNameTaken
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Owner:       *owner,
		Categories:  categories,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update persists a product in place. The acting principal must own the
// product or hold an elevated role; the category set is replaced wholesale
// and the owner never changes.
func (s *productService) Update(ctx context.Context, id int64, input UpdateProductInput, principal domain.Principal) (*domain.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !principal.CanModify(existing) {
		return nil, ErrAccessDenied
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Categories = categories

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a product after the same ownership check as Update
func (s *productService) Delete(ctx context.Context, id int64, principal domain.Principal) error {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !principal.CanModify(existing) {
		return ErrAccessDenied
	}

	return s.productRepo.Delete(ctx, id)
}

func (s *productService) toPage(items []*domain.Product, total int, req pagination.PageRequest) *ProductPage {
	return &ProductPage{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: req.TotalPages(total),
	}
}

func toRepoFilter(filters ProductFilters, ownerID *int64) repository.ProductFilter {
	return repository.ProductFilter{
		Name:       filters.Name,
		MinPrice:   filters.MinPrice,
		MaxPrice:   filters.MaxPrice,
		CategoryID: filters.CategoryID,
		OwnerID:    ownerID,
	}
}
