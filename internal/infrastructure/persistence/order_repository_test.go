package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindUnorderedByScope(t *testing.T) {
	t.Run("finds the active cart for a session scope", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		scope := store.SessionScope("abc123")

		orderRows := sqlmock.NewRows([]string{"id", "version", "scope_key", "session_key", "status", "ordered"}).
			AddRow(orderID, 1, scope.Key(), "abc123", store.OrderStatusPending, false)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE scope_key = \$1 AND ordered = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(scope.Key(), false, 1).
			WillReturnRows(orderRows)

		mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE "cart_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity"}))

		order, err := repo.FindUnorderedByScope(context.Background(), scope)

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "session:abc123", order.ScopeKey)
		assert.False(t, order.Ordered)
		assert.Empty(t, order.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when the scope has no cart", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		scope := store.SessionScope("missing")
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE scope_key = \$1 AND ordered = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(scope.Key(), false, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindUnorderedByScope(context.Background(), scope)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_DeleteItem(t *testing.T) {
	t.Run("returns not found for unknown item", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectExec(`DELETE FROM "cart_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteItem(context.Background(), itemID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_PurgeAbandoned(t *testing.T) {
	t.Run("deletes empty stale carts and reports the count", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		cutoff := time.Now().Add(-24 * time.Hour)
		mock.ExpectExec(`DELETE FROM "orders" WHERE ordered = \$1 AND updated_at < \$2 AND NOT EXISTS`).
			WithArgs(false, cutoff).
			WillReturnResult(sqlmock.NewResult(0, 3))

		purged, err := repo.PurgeAbandoned(context.Background(), cutoff)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), purged)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
