package catalog

import (
	"strings"

	"github.com/michealzs/storemicroservice/internal/domain/shared"
)

// Category groups products. Categories are mostly derived from external
// catalog tags by the importer, keyed by name, but can also be created by
// an admin.
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 50 characters")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              Slugify(name),
		Description:       description,
	}, nil
}

// UpdateDescription replaces the category description
func (c *Category) UpdateDescription(description string) {
	c.Description = description
	c.Touch()
}
