package repository_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
	"github.com/nikolayk812/orders/internal/repository"
	"github.com/nikolayk812/orders/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type itemRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	orders    port.OrderRepository
	repo      port.ItemRepository
	container testcontainers.Container
}

func TestItemRepositorySuite(t *testing.T) {
	suite.Run(t, new(itemRepositorySuite))
}

func (suite *itemRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = testutil.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = testutil.NewMigratedPool(ctx, connStr)
	suite.Require().NoError(err)

	suite.orders, err = repository.NewOrder(suite.pool)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewItem(suite.pool)
	suite.Require().NoError(err)
}

func (suite *itemRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *itemRepositorySuite) SetupTest() {
	suite.Require().NoError(testutil.TruncateAll(suite.T().Context(), suite.pool))
}

func (suite *itemRepositorySuite) TestInsert() {
	ctx := suite.T().Context()

	order, err := suite.orders.Insert(ctx, fakeOrder())
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		orderID   int64
		wantError error
	}{
		{
			name:    "insert into existing order: ok",
			orderID: order.ID,
		},
		{
			name:      "insert into missing order: not found",
			orderID:   order.ID + 1000,
			wantError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			item := testutil.RandomItem()
			item.OrderID = tt.orderID

			inserted, err := suite.repo.Insert(ctx, item)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, inserted.ID)

			actual, err := suite.repo.Get(ctx, inserted.ID)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(inserted, actual))

			// standalone insert leaves the parent row as it was
			parent, err := suite.orders.Get(ctx, order.ID)
			require.NoError(t, err)
			assert.True(t, order.TotalPrice.Equal(parent.TotalPrice))
			assert.True(t, order.LastUpdatedTime.Equal(parent.LastUpdatedTime))
			assert.Len(t, parent.Items, len(order.Items)+1)
		})
	}
}

func (suite *itemRepositorySuite) TestInsertEmptyOrderID() {
	t := suite.T()

	_, err := suite.repo.Insert(t.Context(), testutil.RandomItem())
	require.EqualError(t, err, "orderID is empty")
}

func (suite *itemRepositorySuite) TestUpdate() {
	t := suite.T()
	ctx := t.Context()

	order, err := suite.orders.Insert(ctx, fakeOrder())
	require.NoError(t, err)

	item := testutil.RandomItem()
	item.ID = order.Items[0].ID
	item.OrderID = order.ID

	_, err = suite.repo.Update(ctx, item)
	require.NoError(t, err)

	actual, err := suite.repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(item, actual))

	item.ID += 1000
	_, err = suite.repo.Update(ctx, item)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	item.ID = 0
	_, err = suite.repo.Update(ctx, item)
	require.EqualError(t, err, "itemID is empty")
}

func (suite *itemRepositorySuite) TestListByOrder() {
	t := suite.T()
	ctx := t.Context()

	order1, err := suite.orders.Insert(ctx, fakeOrder())
	require.NoError(t, err)

	_, err = suite.orders.Insert(ctx, fakeOrder())
	require.NoError(t, err)

	items, err := suite.repo.ListByOrder(ctx, order1.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(order1.Items, items))

	items, err = suite.repo.ListByOrder(ctx, order1.ID+1000)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func (suite *itemRepositorySuite) TestDelete() {
	ctx := suite.T().Context()

	order, err := suite.orders.Insert(ctx, fakeOrder())
	suite.Require().NoError(err)

	itemID := order.Items[0].ID

	tests := []struct {
		name      string
		itemID    int64
		wantFound bool
	}{
		{
			name:      "delete existing item: ok",
			itemID:    itemID,
			wantFound: true,
		},
		{
			name:      "delete same item again: not found",
			itemID:    itemID,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			found, err := suite.repo.Delete(ctx, tt.itemID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)

			_, err = suite.repo.Get(ctx, tt.itemID)
			require.ErrorIs(t, err, domain.ErrItemNotFound)
		})
	}

	// the order itself survives
	_, err = suite.orders.Get(ctx, order.ID)
	suite.Require().NoError(err)
}

func (suite *itemRepositorySuite) TestDeleteByOrder() {
	t := suite.T()
	ctx := t.Context()

	order, err := suite.orders.Insert(ctx, fakeOrder())
	require.NoError(t, err)

	deleted, err := suite.repo.DeleteByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(order.Items)), deleted)

	items, err := suite.repo.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
