package services

import (
	"errors"
	"testing"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	createFn         func(o *models.Order) error
	getByIDFn        func(id uint) (*models.Order, error)
	getWithDetailsFn func(id uint) (*models.Order, error)
	searchFn         func(f repository.OrderFilter) ([]models.Order, int64, error)
	updateHeaderFn   func(o *models.Order) error
	updateItemsFn    func(orderID uint, status, payStatus string) error
	createPaymentFn  func(p *models.Payment) error
	createLogFn      func(l *models.UserLog) error
	getLogsFn        func(orderID uint) ([]models.UserLog, error)
	hardDeleteFn     func(id uint) error
}

func (m *mockOrderRepo) Create(o *models.Order) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(o)
}

func (m *mockOrderRepo) GetByID(id uint) (*models.Order, error) {
	return m.getByIDFn(id)
}

func (m *mockOrderRepo) GetWithDetails(id uint) (*models.Order, error) {
	return m.getWithDetailsFn(id)
}

func (m *mockOrderRepo) Search(f repository.OrderFilter) ([]models.Order, int64, error) {
	return m.searchFn(f)
}

func (m *mockOrderRepo) UpdateHeaderVersioned(o *models.Order) error {
	if m.updateHeaderFn == nil {
		return nil
	}
	return m.updateHeaderFn(o)
}

func (m *mockOrderRepo) UpdateItemsStatus(orderID uint, status, payStatus string) error {
	if m.updateItemsFn == nil {
		return nil
	}
	return m.updateItemsFn(orderID, status, payStatus)
}

func (m *mockOrderRepo) CreatePayment(p *models.Payment) error {
	if m.createPaymentFn == nil {
		return nil
	}
	return m.createPaymentFn(p)
}

func (m *mockOrderRepo) CreateLog(l *models.UserLog) error {
	if m.createLogFn == nil {
		return nil
	}
	return m.createLogFn(l)
}

func (m *mockOrderRepo) GetLogsByOrder(orderID uint) ([]models.UserLog, error) {
	return m.getLogsFn(orderID)
}

func (m *mockOrderRepo) HardDelete(id uint) error {
	return m.hardDeleteFn(id)
}

func (m *mockOrderRepo) Transaction(fn func(tx repository.OrderRepository) error) error {
	return fn(m)
}

func pendingOrder(id uint) *models.Order {
	return &models.Order{
		ID:        id,
		Status:    string(models.OrderPending),
		PayStatus: string(models.PayUnpaid),
		Interface: string(models.InterfaceIndividual),
		Currency:  models.CurrencyLKR,
	}
}

func TestCreateOrderTotals(t *testing.T) {
	var created *models.Order
	repo := &mockOrderRepo{
		createFn: func(o *models.Order) error {
			o.ID = 7
			created = o
			return nil
		},
	}
	svc := NewOrderService(repo)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerID:  3,
		Currency:    models.CurrencyLKR,
		DeliveryFee: 250,
		Items: []OrderItemInput{
			{ProductID: 1, Price: 600, Discount: 40},
			{ProductID: 2, Price: 400, Discount: 60},
		},
	}, 9)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 1000.0, order.Subtotal)
	assert.Equal(t, 100.0, order.Discount)
	assert.Equal(t, 1150.0, order.TotalAmount)
	assert.Equal(t, string(models.OrderPending), order.Status)
	assert.Equal(t, string(models.PayUnpaid), order.PayStatus)
	assert.Equal(t, string(models.InterfaceIndividual), order.Interface)
	assert.Len(t, order.Items, 2)
	for _, it := range order.Items {
		assert.Equal(t, string(models.OrderPending), it.Status)
	}
}

func TestCreateOrderClampsItemDiscount(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewOrderService(repo)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerID: 1,
		Currency:   models.CurrencyUSD,
		Items: []OrderItemInput{
			{ProductID: 1, Price: 100, Discount: 150},
		},
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, 100.0, order.Items[0].Discount)
	assert.Equal(t, 0.0, order.TotalAmount)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{})

	_, err := svc.CreateOrder(CreateOrderInput{Currency: models.CurrencyLKR}, 1)
	assert.Equal(t, ErrEmptyOrder, err)

	_, err = svc.CreateOrder(CreateOrderInput{
		Currency: "EUR",
		Items:    []OrderItemInput{{ProductID: 1, Price: 10}},
	}, 1)
	assert.Equal(t, ErrInvalidCurrency, err)
}

func TestDispatchFromPending(t *testing.T) {
	order := pendingOrder(5)
	order.Items = []models.OrderItem{
		{ID: 1, OrderID: 5, Price: 600, Discount: 40},
		{ID: 2, OrderID: 5, Price: 400, Discount: 60},
	}

	var headerUpdated bool
	var itemsStatus, itemsPay string
	var logged *models.UserLog
	repo := &mockOrderRepo{
		getWithDetailsFn: func(id uint) (*models.Order, error) { return order, nil },
		updateHeaderFn: func(o *models.Order) error {
			headerUpdated = true
			return nil
		},
		updateItemsFn: func(orderID uint, status, payStatus string) error {
			itemsStatus, itemsPay = status, payStatus
			return nil
		},
		createLogFn: func(l *models.UserLog) error {
			logged = l
			return nil
		},
	}
	svc := NewOrderService(repo)

	result, err := svc.Dispatch(5, 2, "TRK-001", 250, "leave at door", 9)
	require.NoError(t, err)

	assert.True(t, headerUpdated)
	assert.Equal(t, string(models.OrderDispatch), result.Status)
	assert.Equal(t, uint(2), *result.CourierID)
	assert.Equal(t, "TRK-001", result.TrackingNumber)
	assert.Equal(t, 250.0, result.DeliveryFee)
	assert.Equal(t, 1150.0, result.TotalAmount)
	assert.Equal(t, string(models.OrderDispatch), itemsStatus)
	assert.Equal(t, string(models.PayUnpaid), itemsPay)
	require.NotNil(t, logged)
	assert.Equal(t, models.ActionDispatch, logged.Action)
	assert.Equal(t, uint(5), logged.OrderID)
}

func TestDispatchRejectedWhenNotPending(t *testing.T) {
	order := pendingOrder(5)
	order.Status = string(models.OrderDispatch)
	repo := &mockOrderRepo{
		getWithDetailsFn: func(id uint) (*models.Order, error) { return order, nil },
	}
	svc := NewOrderService(repo)

	_, err := svc.Dispatch(5, 1, "TRK", 0, "", 1)
	assert.Equal(t, ErrInvalidTransition, err)
}

func TestCancelRejectedWhenPaid(t *testing.T) {
	order := pendingOrder(3)
	order.PayStatus = string(models.PayPaid)
	var touched bool
	repo := &mockOrderRepo{
		getByIDFn:      func(id uint) (*models.Order, error) { return order, nil },
		updateHeaderFn: func(o *models.Order) error { touched = true; return nil },
	}
	svc := NewOrderService(repo)

	_, err := svc.Cancel(3, "changed mind", 1)
	assert.Equal(t, ErrCancelPaidOrder, err)
	assert.False(t, touched)
}

func TestCancelAlreadyCancelledIsNoop(t *testing.T) {
	order := pendingOrder(3)
	order.Status = string(models.OrderCancel)
	var touched bool
	repo := &mockOrderRepo{
		getByIDFn:      func(id uint) (*models.Order, error) { return order, nil },
		updateHeaderFn: func(o *models.Order) error { touched = true; return nil },
		createLogFn:    func(l *models.UserLog) error { touched = true; return nil },
	}
	svc := NewOrderService(repo)

	result, err := svc.Cancel(3, "again", 1)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderCancel), result.Status)
	assert.False(t, touched)
}

func TestCancelRejectedWhenDone(t *testing.T) {
	order := pendingOrder(3)
	order.Status = string(models.OrderDone)
	repo := &mockOrderRepo{
		getByIDFn: func(id uint) (*models.Order, error) { return order, nil },
	}
	svc := NewOrderService(repo)

	_, err := svc.Cancel(3, "too late", 1)
	assert.Equal(t, ErrInvalidTransition, err)
}

func TestCancelFromDispatch(t *testing.T) {
	order := pendingOrder(3)
	order.Status = string(models.OrderDispatch)
	var itemsStatus string
	repo := &mockOrderRepo{
		getByIDFn: func(id uint) (*models.Order, error) { return order, nil },
		updateItemsFn: func(orderID uint, status, payStatus string) error {
			itemsStatus = status
			return nil
		},
	}
	svc := NewOrderService(repo)

	result, err := svc.Cancel(3, "courier lost it", 1)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderCancel), result.Status)
	assert.Equal(t, "courier lost it", result.CancellationReason)
	assert.Equal(t, string(models.OrderCancel), itemsStatus)
}

func TestMarkPaidInsertsPayment(t *testing.T) {
	order := pendingOrder(4)
	order.TotalAmount = 1150
	var payment *models.Payment
	var itemsPay string
	repo := &mockOrderRepo{
		getByIDFn: func(id uint) (*models.Order, error) { return order, nil },
		updateItemsFn: func(orderID uint, status, payStatus string) error {
			itemsPay = payStatus
			return nil
		},
		createPaymentFn: func(p *models.Payment) error {
			payment = p
			return nil
		},
	}
	svc := NewOrderService(repo)

	result, err := svc.MarkPaid(4, models.PayMethodTransfer, "slip_4_1.png", 9)
	require.NoError(t, err)

	assert.Equal(t, string(models.PayPaid), result.PayStatus)
	assert.NotNil(t, result.PayDate)
	// fulfillment status stays untouched
	assert.Equal(t, string(models.OrderPending), result.Status)
	require.NotNil(t, payment)
	assert.Equal(t, 1150.0, payment.AmountPaid)
	assert.Equal(t, uint(4), payment.OrderID)
	assert.Equal(t, uint(9), payment.PayBy)
	assert.Equal(t, "slip_4_1.png", payment.Slip)
	assert.Equal(t, string(models.PayPaid), itemsPay)
}

func TestMarkPaidRejectedWhenAlreadyPaid(t *testing.T) {
	order := pendingOrder(4)
	order.PayStatus = string(models.PayPaid)
	repo := &mockOrderRepo{
		getByIDFn: func(id uint) (*models.Order, error) { return order, nil },
	}
	svc := NewOrderService(repo)

	_, err := svc.MarkPaid(4, models.PayMethodCash, "", 1)
	assert.Equal(t, ErrAlreadyPaid, err)
}

func TestCompleteOnlyFromDispatch(t *testing.T) {
	order := pendingOrder(6)
	repo := &mockOrderRepo{
		getByIDFn: func(id uint) (*models.Order, error) { return order, nil },
	}
	svc := NewOrderService(repo)

	_, err := svc.Complete(6, 1)
	assert.Equal(t, ErrInvalidTransition, err)

	order.Status = string(models.OrderDispatch)
	result, err := svc.Complete(6, 1)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderDone), result.Status)
}

func TestTransitionFailurePropagates(t *testing.T) {
	order := pendingOrder(5)
	repo := &mockOrderRepo{
		getWithDetailsFn: func(id uint) (*models.Order, error) { return order, nil },
		createLogFn: func(l *models.UserLog) error {
			return errors.New("log insert failed")
		},
	}
	svc := NewOrderService(repo)

	_, err := svc.Dispatch(5, 1, "TRK", 0, "", 1)
	assert.Error(t, err)
}

func TestVersionConflictSurfaced(t *testing.T) {
	order := pendingOrder(5)
	repo := &mockOrderRepo{
		getByIDFn:      func(id uint) (*models.Order, error) { return order, nil },
		updateHeaderFn: func(o *models.Order) error { return repository.ErrVersionConflict },
	}
	svc := NewOrderService(repo)

	_, err := svc.Cancel(5, "race", 1)
	assert.Equal(t, ErrVersionConflict, err)
}

func TestListOrdersPagination(t *testing.T) {
	var captured repository.OrderFilter
	repo := &mockOrderRepo{
		searchFn: func(f repository.OrderFilter) ([]models.Order, int64, error) {
			captured = f
			return []models.Order{*pendingOrder(1)}, 42, nil
		},
	}
	svc := NewOrderService(repo)

	result, err := svc.ListOrders(ListFilter{Status: "pending", Page: 2, Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 25, captured.Limit)
	assert.Equal(t, string(models.InterfaceIndividual), captured.Interface)
	assert.Equal(t, int64(42), result.TotalRows)
	assert.Equal(t, 2, result.TotalPages)
}

func TestListOrdersNormalizesPageSize(t *testing.T) {
	var captured repository.OrderFilter
	repo := &mockOrderRepo{
		searchFn: func(f repository.OrderFilter) ([]models.Order, int64, error) {
			captured = f
			return nil, 0, nil
		},
	}
	svc := NewOrderService(repo)

	result, err := svc.ListOrders(ListFilter{Page: 0, Limit: 33})
	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, 0, result.TotalPages)
}

func TestAppendNoteKeepsHistory(t *testing.T) {
	order := pendingOrder(8)
	order.Notes = "[2024-01-01 09:00] first"
	repo := &mockOrderRepo{
		getByIDFn: func(id uint) (*models.Order, error) { return order, nil },
	}
	svc := NewOrderService(repo)

	result, err := svc.AppendNote(8, "second", 1)
	require.NoError(t, err)
	assert.Contains(t, result.Notes, "first")
	assert.Contains(t, result.Notes, "second")
	assert.Contains(t, result.Notes, time.Now().Format("2006-01-02"))
}
