package persistence

import (
	"context"

	"github.com/michealzs/storemicroservice/internal/application/importer"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormCatalogTransactionScope implements importer.TransactionScope using
// GORM transactions. Each Execute call runs its function against catalog
// repositories bound to one database transaction.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos importer.CatalogRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

// gormCatalogRepositories exposes catalog repositories scoped to one transaction
type gormCatalogRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CategoryRepo returns the category repository scoped to the current transaction
func (r *gormCatalogRepositories) CategoryRepo() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

var (
	_ importer.TransactionScope    = (*GormCatalogTransactionScope)(nil)
	_ importer.CatalogRepositories = (*gormCatalogRepositories)(nil)
)
