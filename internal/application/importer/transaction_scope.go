package importer

import (
	"context"

	"github.com/michealzs/storemicroservice/internal/domain/catalog"
)

// TransactionScope provides transactional access to the catalog
// repositories. The importer runs each upstream page inside one scope so
// a page either lands completely or not at all.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos CatalogRepositories) error) error
}

// CatalogRepositories exposes the catalog repositories bound to the
// current transaction.
type CatalogRepositories interface {
	ProductRepo() catalog.ProductRepository
	CategoryRepo() catalog.CategoryRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos CatalogRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// CategoryRepo returns the category repository
func (s *NoOpTransactionScope) CategoryRepo() catalog.CategoryRepository {
	return s.categoryRepo
}

var (
	_ TransactionScope    = (*NoOpTransactionScope)(nil)
	_ CatalogRepositories = (*NoOpTransactionScope)(nil)
)
