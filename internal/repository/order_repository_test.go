package repository_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
	"github.com/nikolayk812/orders/internal/repository"
	"github.com/nikolayk812/orders/internal/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type orderRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.OrderRepository
	items     port.ItemRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = testutil.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = testutil.NewMigratedPool(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewOrder(suite.pool)
	suite.Require().NoError(err)

	suite.items, err = repository.NewItem(suite.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

// before each test
func (suite *orderRepositorySuite) SetupTest() {
	suite.Require().NoError(testutil.TruncateAll(suite.T().Context(), suite.pool))
}

func (suite *orderRepositorySuite) TestInsertGet() {
	order1 := fakeOrder()
	order2 := fakeOrder()
	order2.Items = nil
	order2.RecalculateTotal()

	tests := []struct {
		name  string
		order domain.Order
	}{
		{
			name:  "order with items: ok",
			order: order1,
		},
		{
			name:  "order without items: ok",
			order: order2,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			inserted, err := suite.repo.Insert(ctx, tt.order)
			require.NoError(t, err)
			require.NotZero(t, inserted.ID)

			for _, item := range inserted.Items {
				assert.NotZero(t, item.ID)
				assert.Equal(t, inserted.ID, item.OrderID)
			}

			actual, err := suite.repo.Get(ctx, inserted.ID)
			require.NoError(t, err)

			assertOrder(t, inserted, actual)

			// the caller's items are not mutated
			for _, item := range tt.order.Items {
				assert.Zero(t, item.ID)
			}
		})
	}
}

func (suite *orderRepositorySuite) TestInsertPersisted() {
	t := suite.T()

	order := fakeOrder()
	order.ID = 5

	_, err := suite.repo.Insert(t.Context(), order)
	require.EqualError(t, err, "order is already persisted")
}

func (suite *orderRepositorySuite) TestGetNotFound() {
	t := suite.T()

	_, err := suite.repo.Get(t.Context(), 123456)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "q.GetOrder")
}

func (suite *orderRepositorySuite) TestUpdate() {
	ctx := suite.T().Context()

	inserted, err := suite.repo.Insert(ctx, fakeOrder())
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		orderFunc func() domain.Order
		wantError error
	}{
		{
			name: "update status and customer: ok",
			orderFunc: func() domain.Order {
				o := inserted
				o.CustomerID++
				o.Status = "shipped"
				o.LastUpdatedTime = o.LastUpdatedTime.Add(time.Minute)
				return o
			},
		},
		{
			name: "update missing order: not found",
			orderFunc: func() domain.Order {
				o := inserted
				o.ID = inserted.ID + 1000
				return o
			},
			wantError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			order := tt.orderFunc()

			_, err := suite.repo.Update(ctx, order)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actual, err := suite.repo.Get(ctx, order.ID)
			require.NoError(t, err)

			assertOrder(t, order, actual)
		})
	}
}

func (suite *orderRepositorySuite) TestUpdateEmptyID() {
	t := suite.T()

	_, err := suite.repo.Update(t.Context(), fakeOrder())
	require.EqualError(t, err, "orderID is empty")
}

func (suite *orderRepositorySuite) TestDeleteCascadesItems() {
	t := suite.T()
	ctx := t.Context()

	kept, err := suite.repo.Insert(ctx, fakeOrder())
	require.NoError(t, err)

	deleted, err := suite.repo.Insert(ctx, fakeOrder())
	require.NoError(t, err)

	found, err := suite.repo.Delete(ctx, deleted.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = suite.repo.Get(ctx, deleted.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	for _, item := range deleted.Items {
		_, err := suite.items.Get(ctx, item.ID)
		require.ErrorIs(t, err, domain.ErrItemNotFound)
	}

	remaining, err := suite.items.All(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, len(kept.Items))

	// deleting again is not an error
	found, err = suite.repo.Delete(ctx, deleted.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func (suite *orderRepositorySuite) TestSearch() {
	ctx := suite.T().Context()

	day := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)

	insert := func(customerID int64, status domain.OrderStatus, created time.Time) domain.Order {
		o := fakeOrder()
		o.CustomerID = customerID
		o.Status = status
		o.CreationTime = created
		o.LastUpdatedTime = created

		inserted, err := suite.repo.Insert(ctx, o)
		suite.Require().NoError(err)
		return inserted
	}

	o1 := insert(42, "Created", day.Add(10*time.Hour))
	o2 := insert(7, "shipped", day.Add(23*time.Hour+59*time.Minute))
	o3 := insert(7, "Created", day.Add(24*time.Hour))
	o4 := insert(9, "shipped", day.Add(-time.Microsecond))

	tests := []struct {
		name   string
		filter domain.OrderFilter
		want   []domain.Order
	}{
		{
			name:   "empty filter: all orders by id",
			filter: domain.OrderFilter{},
			want:   []domain.Order{o1, o2, o3, o4},
		},
		{
			name:   "by customer_id",
			filter: domain.OrderFilter{CustomerID: lo.ToPtr(int64(42))},
			want:   []domain.Order{o1},
		},
		{
			name:   "by customer_id without orders",
			filter: domain.OrderFilter{CustomerID: lo.ToPtr(int64(1))},
			want:   nil,
		},
		{
			name:   "by date: whole UTC day",
			filter: domain.OrderFilter{Date: &day},
			want:   []domain.Order{o1, o2},
		},
		{
			name:   "by status",
			filter: domain.OrderFilter{Status: lo.ToPtr(domain.OrderStatus("shipped"))},
			want:   []domain.Order{o2, o4},
		},
		{
			name: "customer_id takes precedence over date and status",
			filter: domain.OrderFilter{
				CustomerID: lo.ToPtr(int64(7)),
				Date:       &day,
				Status:     lo.ToPtr(domain.OrderStatus("shipped")),
			},
			want: []domain.Order{o2, o3},
		},
		{
			name: "date takes precedence over status",
			filter: domain.OrderFilter{
				Date:   &day,
				Status: lo.ToPtr(domain.OrderStatus("shipped")),
			},
			want: []domain.Order{o1, o2},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			actual, err := suite.repo.Search(t.Context(), tt.filter)
			require.NoError(t, err)

			assertOrders(t, tt.want, actual)
		})
	}
}

func (suite *orderRepositorySuite) TestSearchInvalidFilter() {
	t := suite.T()

	_, err := suite.repo.Search(t.Context(), domain.OrderFilter{Status: lo.ToPtr(domain.OrderStatus(""))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter.Validate")
}

func (suite *orderRepositorySuite) TestAll() {
	t := suite.T()
	ctx := t.Context()

	var expected []domain.Order
	for range 3 {
		inserted, err := suite.repo.Insert(ctx, fakeOrder())
		require.NoError(t, err)
		expected = append(expected, inserted)
	}

	actual, err := suite.repo.All(ctx)
	require.NoError(t, err)

	assertOrders(t, expected, actual)
}

func (suite *orderRepositorySuite) TestExactMoney() {
	t := suite.T()
	ctx := t.Context()

	order := domain.Order{
		CustomerID:      42,
		Status:          domain.OrderStatusCreated,
		CreationTime:    time.Now().UTC().Truncate(time.Microsecond),
		LastUpdatedTime: time.Now().UTC().Truncate(time.Microsecond),
		Items: []domain.Item{
			{Name: "tool", Price: decimal.RequireFromString("2.32"), Description: "hammer", Quantity: 2},
			{Name: "food", Price: decimal.RequireFromString("4.44"), Description: "bread", Quantity: 2},
		},
	}
	order.LastUpdatedTime = order.CreationTime
	order.RecalculateTotal()

	inserted, err := suite.repo.Insert(ctx, order)
	require.NoError(t, err)

	actual, err := suite.repo.Get(ctx, inserted.ID)
	require.NoError(t, err)

	assert.Equal(t, "13.52", actual.TotalPrice.String())
	assert.Equal(t, "2.32", actual.Items[0].Price.String())
}

func fakeOrder() domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)

	order := testutil.RandomOrder()
	order.CreationTime = now
	order.LastUpdatedTime = now

	return order
}

func assertOrder(t *testing.T, expected domain.Order, actual domain.Order) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}

func assertOrders(t *testing.T, expected []domain.Order, actual []domain.Order) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}
