package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
	"github.com/Nayelic98/backend-spring-01/internal/pagination"
	"github.com/Nayelic98/backend-spring-01/internal/repository"
)

// Mock repositories for testing

type mockUserRepository struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*domain.User), nextID: 1}
}

func (m *mockUserRepository) addUser(name, email string, roles ...domain.Role) *domain.User {
	user := &domain.User{
		ID:    m.nextID,
		Name:  name,
		Email: email,
		Roles: roles,
	}
	m.users[user.ID] = user
	m.nextID++
	return user
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *mockUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, exists := m.users[id]
	return exists, nil
}

type mockRoleRepository struct{}

func (m *mockRoleRepository) FindByName(ctx context.Context, name domain.Role) (int64, error) {
	switch name {
	case domain.RoleUser:
		return 1, nil
	case domain.RoleAdmin:
		return 2, nil
	case domain.RoleModerator:
		return 3, nil
	}
	return 0, repository.ErrRoleNotFound
}

func (m *mockRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	return []domain.Role{domain.RoleAdmin, domain.RoleModerator, domain.RoleUser}, nil
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockCategoryRepository struct {
	categories map[int64]domain.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[int64]domain.Category), nextID: 1}
}

func (m *mockCategoryRepository) addCategory(name string) domain.Category {
	category := domain.Category{ID: m.nextID, Name: name}
	m.categories[category.ID] = category
	m.nextID++
	return category
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	for id := range m.categories {
		category := m.categories[id]
		categories = append(categories, &category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return &category, nil
}

func (m *mockCategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	for _, id := range ids {
		category, exists := m.categories[id]
		if !exists {
			return nil, repository.ErrCategoryNotFound
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// mockProductRepository applies the filter matrix in memory. Listings are
// ordered by id regardless of the requested sort; ordering itself is
// exercised by the repository integration tests.
type mockProductRepository struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.Product), nextID: 1}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	for _, existing := range m.products {
		if existing.Name == product.Name {
			return repository.ErrProductNameTaken
		}
	}
	product.ID = m.nextID
	m.nextID++
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, product := range m.products {
		if product.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return m.matching(repository.ProductFilter{}), nil
}

func (m *mockProductRepository) FindPage(ctx context.Context, filter repository.ProductFilter, page pagination.PageRequest) ([]*domain.Product, int, error) {
	matched := m.matching(filter)
	return paginate(matched, page.Offset(), page.Limit()), len(matched), nil
}

func (m *mockProductRepository) FindSlice(ctx context.Context, page pagination.PageRequest) ([]*domain.Product, bool, error) {
	matched := m.matching(repository.ProductFilter{})
	items := paginate(matched, page.Offset(), page.Limit()+1)
	hasNext := len(items) > page.Limit()
	if hasNext {
		items = items[:page.Limit()]
	}
	return items, hasNext, nil
}

func (m *mockProductRepository) matching(filter repository.ProductFilter) []*domain.Product {
	matched := []*domain.Product{}
	for _, product := range m.products {
		if filter.OwnerID != nil && product.Owner.ID != *filter.OwnerID {
			continue
		}
		if filter.Name != nil && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		if filter.MinPrice != nil && product.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
			continue
		}
		if filter.CategoryID != nil && !hasCategory(product, *filter.CategoryID) {
			continue
		}
		copied := *product
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

func hasCategory(product *domain.Product, categoryID int64) bool {
	for _, category := range product.Categories {
		if category.ID == categoryID {
			return true
		}
	}
	return false
}

func paginate(products []*domain.Product, offset, limit int) []*domain.Product {
	if offset >= len(products) {
		return []*domain.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}
