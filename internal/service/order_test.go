package service

import (
	"context"
	"testing"
	"time"

	"github.com/innocentteam/restaurant/internal/clock"
	"github.com/innocentteam/restaurant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	if _, ok := f.orders[order.ID]; ok {
		return nil, models.ErrConflictData
	}
	stored := *order
	stored.CreatedAt = time.Now()
	f.orders[order.ID] = &stored
	return &stored, nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) AcceptOrder(_ context.Context, id, admin string, dispatchedAt time.Time) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.Status != models.OrderStatusPlaced {
		return nil, models.ErrDataNotFound
	}
	order.Status = models.OrderStatusAccepted
	order.DispatchedAt = &dispatchedAt
	order.DispatchedBy = admin
	return order, nil
}

func (f *fakeOrderRepo) CancelOrder(_ context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.Status != models.OrderStatusPlaced {
		return nil, models.ErrDataNotFound
	}
	order.Status = models.OrderStatusCancelled
	return order, nil
}

func (f *fakeOrderRepo) ConfirmOrder(_ context.Context, id string, confirmedAt time.Time) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.Status == models.OrderStatusCancelled {
		return nil, models.ErrDataNotFound
	}
	if order.ConfirmedAt == nil {
		order.ConfirmedAt = &confirmedAt
	}
	return order, nil
}

func (f *fakeOrderRepo) DeleteOrder(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return models.ErrDataNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakePendingOrderRepo struct {
	pending map[string]*models.PendingOrder
}

func newFakePendingOrderRepo() *fakePendingOrderRepo {
	return &fakePendingOrderRepo{pending: map[string]*models.PendingOrder{}}
}

func (f *fakePendingOrderRepo) UpsertPendingOrder(_ context.Context, p *models.PendingOrder) error {
	stored := *p
	f.pending[p.CustomerEmail] = &stored
	return nil
}

func (f *fakePendingOrderRepo) GetPendingOrder(_ context.Context, email string) (*models.PendingOrder, error) {
	p, ok := f.pending[email]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return p, nil
}

func (f *fakePendingOrderRepo) DeletePendingOrder(_ context.Context, email string) error {
	delete(f.pending, email)
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return product, nil
}

const testProductID = "f0b9af79-35b4-4b93-9d14-54a0061dcd40"

func newTestOrderService(t *testing.T) (*OrderService, *fakeOrderRepo, *fakePendingOrderRepo, *fakeMailer) {
	t.Helper()

	orders := newFakeOrderRepo()
	pending := newFakePendingOrderRepo()
	products := &fakeProductRepo{products: map[string]*models.Product{
		testProductID: {ID: testProductID, Name: "pizza", Price: 9.5, Available: true},
	}}
	mailer := newFakeMailer()

	svc := NewOrderService(orders, pending, products, mailer, clock.NewFixed(testNow), zap.NewNop())
	return svc, orders, pending, mailer
}

func placeAndVerify(t *testing.T, svc *OrderService, pending *fakePendingOrderRepo) *models.Order {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, svc.Place(ctx, PlaceOrderInput{
		ProductID:     testProductID,
		CustomerName:  "bob",
		CustomerEmail: "bob@x.com",
		Quantity:      2,
	}))

	stored, err := pending.GetPendingOrder(ctx, "bob@x.com")
	require.NoError(t, err)

	order, err := svc.VerifyPlacement(ctx, "bob@x.com", stored.OTP)
	require.NoError(t, err)
	return order
}

func TestOrderService_PlaceAndVerify(t *testing.T) {
	svc, _, pending, mailer := newTestOrderService(t)

	order := placeAndVerify(t, svc, pending)

	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, "pizza", order.ProductName)
	assert.Equal(t, 2, order.Quantity)

	// pending row is consumed
	_, err := pending.GetPendingOrder(context.Background(), "bob@x.com")
	assert.ErrorIs(t, err, models.ErrDataNotFound)

	// an otp message and a placement receipt went out
	assert.Len(t, mailer.sent, 2)
}

func TestOrderService_PlaceValidation(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Place(ctx, PlaceOrderInput{
		ProductID: "nope", CustomerName: "bob", CustomerEmail: "bob@x.com", Quantity: 1,
	}), models.ErrInvalidID)

	assert.ErrorIs(t, svc.Place(ctx, PlaceOrderInput{
		ProductID: testProductID, CustomerName: "bob", CustomerEmail: "bob@x.com", Quantity: 0,
	}), models.ErrInvalidQuantity)

	assert.ErrorIs(t, svc.Place(ctx, PlaceOrderInput{
		ProductID: "1e9ae9a4-287e-4d05-9b21-26f1a9e13efe", CustomerName: "bob", CustomerEmail: "bob@x.com", Quantity: 1,
	}), models.ErrProductNotFound)
}

func TestOrderService_PlaceUnavailableProduct(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)

	products := &fakeProductRepo{products: map[string]*models.Product{
		testProductID: {ID: testProductID, Name: "pizza", Available: false},
	}}
	svc.products = products

	err := svc.Place(context.Background(), PlaceOrderInput{
		ProductID: testProductID, CustomerName: "bob", CustomerEmail: "bob@x.com", Quantity: 1,
	})
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestOrderService_VerifyPlacementExpired(t *testing.T) {
	svc, orders, pending, mailer := newTestOrderService(t)
	ctx := context.Background()

	require.NoError(t, svc.Place(ctx, PlaceOrderInput{
		ProductID: testProductID, CustomerName: "bob", CustomerEmail: "bob@x.com", Quantity: 1,
	}))

	stored, err := pending.GetPendingOrder(ctx, "bob@x.com")
	require.NoError(t, err)

	lateSvc := NewOrderService(orders, pending, svc.products, mailer,
		clock.NewFixed(testNow.Add(defaultOTPTTL+time.Second)), zap.NewNop())

	_, err = lateSvc.VerifyPlacement(ctx, "bob@x.com", stored.OTP)
	assert.ErrorIs(t, err, models.ErrPendingNotFound)
}

func TestOrderService_AcceptTransitions(t *testing.T) {
	svc, _, pending, _ := newTestOrderService(t)
	ctx := context.Background()

	order := placeAndVerify(t, svc, pending)

	result, err := svc.Accept(ctx, order.ID, "chef1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, result.Order.Status)
	assert.Equal(t, "chef1", result.Order.DispatchedBy)
	require.NotNil(t, result.Order.DispatchedAt)
	assert.Equal(t, testNow, *result.Order.DispatchedAt)

	// a terminal status cannot be re-entered
	_, err = svc.Accept(ctx, order.ID, "chef1")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderService_AcceptUnknownOrder(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)

	_, err := svc.Accept(context.Background(), "9a1be1d9-44a3-44b8-b8e6-743f1bd7bd66", "chef1")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	_, err = svc.Accept(context.Background(), "not-an-id", "chef1")
	assert.ErrorIs(t, err, models.ErrInvalidID)
}

func TestOrderService_AcceptNotifyFailure(t *testing.T) {
	svc, _, pending, mailer := newTestOrderService(t)
	ctx := context.Background()

	order := placeAndVerify(t, svc, pending)

	mailer.failAfter = len(mailer.sent)

	result, err := svc.Accept(ctx, order.ID, "chef1")
	require.NoError(t, err)
	assert.True(t, result.NotifyFailed)
	// the status change stands
	assert.Equal(t, models.OrderStatusAccepted, result.Order.Status)
}

func TestOrderService_RejectRemovesOrder(t *testing.T) {
	svc, _, pending, _ := newTestOrderService(t)
	ctx := context.Background()

	order := placeAndVerify(t, svc, pending)

	require.NoError(t, svc.Reject(ctx, order.ID))

	// a rejected order is gone for good
	_, err := svc.Accept(ctx, order.ID, "chef1")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	assert.ErrorIs(t, svc.Reject(ctx, order.ID), models.ErrOrderNotFound)
}

func TestOrderService_CancelOnlyPlaced(t *testing.T) {
	svc, _, pending, _ := newTestOrderService(t)
	ctx := context.Background()

	order := placeAndVerify(t, svc, pending)

	cancelled, err := svc.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// cancelling twice is rejected
	_, err = svc.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderService_ConfirmSetsTimestampOnce(t *testing.T) {
	svc, _, pending, _ := newTestOrderService(t)
	ctx := context.Background()

	order := placeAndVerify(t, svc, pending)

	confirmed, err := svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, confirmed.ConfirmedAt)
	first := *confirmed.ConfirmedAt

	again, err := svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, again.ConfirmedAt)
	assert.Equal(t, first, *again.ConfirmedAt)
}
