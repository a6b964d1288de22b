package services

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrCancelPaidOrder   = errors.New("paid orders cannot be cancelled")
	ErrAlreadyPaid       = errors.New("order is already paid")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidCurrency   = errors.New("unsupported currency")
	ErrVersionConflict   = repository.ErrVersionConflict
)

// Page size options offered by the list views.
var allowedPageSizes = map[int]bool{10: true, 25: true, 50: true, 100: true}

type OrderItemInput struct {
	ProductID uint
	Price     float64
	Discount  float64
}

type CreateOrderInput struct {
	CustomerID  uint
	IssueDate   time.Time
	DueDate     *time.Time
	Currency    string
	DeliveryFee float64
	Notes       string
	Items       []OrderItemInput
}

type ListFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type ListResult struct {
	Orders     []models.Order `json:"orders"`
	TotalRows  int64          `json:"total_rows"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// OrderService owns the order lifecycle state machine. Every
// status-changing operation updates the header, propagates the status to
// all items and appends an audit entry inside one transaction.
type OrderService interface {
	CreateOrder(input CreateOrderInput, actor uint) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	ListOrders(filter ListFilter) (*ListResult, error)
	Dispatch(id uint, courierID uint, trackingNumber string, deliveryFee float64, note string, actor uint) (*models.Order, error)
	Cancel(id uint, reason string, actor uint) (*models.Order, error)
	MarkPaid(id uint, method, slipPath string, actor uint) (*models.Order, error)
	Complete(id uint, actor uint) (*models.Order, error)
	AppendNote(id uint, note string, actor uint) (*models.Order, error)
	GetLogs(orderID uint) ([]models.UserLog, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) CreateOrder(input CreateOrderInput, actor uint) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !models.ValidCurrency(input.Currency) {
		return nil, ErrInvalidCurrency
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	amounts := make([]itemAmount, 0, len(input.Items))
	for _, in := range input.Items {
		price := Round2(in.Price)
		discount := Round2(in.Discount)
		// A line discount can never exceed the line price.
		if discount > price {
			discount = price
		}
		if discount < 0 {
			discount = 0
		}
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Price:     price,
			Discount:  discount,
			Status:    string(models.OrderPending),
			PayStatus: string(models.PayUnpaid),
		})
		amounts = append(amounts, itemAmount{price: price, discount: discount})
	}
	subtotal, discount, total := orderTotals(amounts, input.DeliveryFee)

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	order := &models.Order{
		CustomerID:  input.CustomerID,
		IssueDate:   issueDate,
		DueDate:     input.DueDate,
		Currency:    input.Currency,
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: Round2(input.DeliveryFee),
		TotalAmount: total,
		Status:      string(models.OrderPending),
		PayStatus:   string(models.PayUnpaid),
		Interface:   string(models.InterfaceIndividual),
		CreatedBy:   actor,
		Items:       items,
	}
	if input.Notes != "" {
		appendNote(order, input.Notes)
	}

	err := s.orderRepo.Transaction(func(tx repository.OrderRepository) error {
		if err := tx.Create(order); err != nil {
			return err
		}
		return tx.CreateLog(&models.UserLog{
			UserID:  actor,
			Action:  models.ActionCreateOrder,
			OrderID: order.ID,
			Details: fmt.Sprintf("order created, total %.2f %s", order.TotalAmount, order.Currency),
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetWithDetails(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(filter ListFilter) (*ListResult, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)
	orders, total, err := s.orderRepo.Search(repository.OrderFilter{
		Status:    filter.Status,
		Interface: string(models.InterfaceIndividual),
		Search:    filter.Search,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Orders:     orders,
		TotalRows:  total,
		TotalPages: totalPages(total, limit),
		Page:       page,
		Limit:      limit,
	}, nil
}

// Dispatch moves a pending order to the courier. Payment is not a
// precondition: the pay axis stays orthogonal so cash-on-delivery flows
// remain possible.
func (s *orderService) Dispatch(id uint, courierID uint, trackingNumber string, deliveryFee float64, note string, actor uint) (*models.Order, error) {
	order, err := s.orderRepo.GetWithDetails(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != string(models.OrderPending) {
		return nil, ErrInvalidTransition
	}

	amounts := make([]itemAmount, 0, len(order.Items))
	for _, it := range order.Items {
		amounts = append(amounts, itemAmount{price: it.Price, discount: it.Discount})
	}
	subtotal, discount, total := orderTotals(amounts, deliveryFee)

	order.Status = string(models.OrderDispatch)
	order.CourierID = &courierID
	order.TrackingNumber = trackingNumber
	order.DispatchNote = note
	order.DeliveryFee = Round2(deliveryFee)
	order.Subtotal = subtotal
	order.Discount = discount
	order.TotalAmount = total

	err = s.applyTransition(order, &models.UserLog{
		UserID:  actor,
		Action:  models.ActionDispatch,
		OrderID: order.ID,
		Details: fmt.Sprintf("dispatched via courier %d, tracking %s", courierID, trackingNumber),
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel is rejected for paid orders. Cancelling an already cancelled
// order is a no-op.
func (s *orderService) Cancel(id uint, reason string, actor uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == string(models.OrderCancel) {
		return order, nil
	}
	if order.PayStatus == string(models.PayPaid) {
		return nil, ErrCancelPaidOrder
	}
	if order.Status != string(models.OrderPending) && order.Status != string(models.OrderDispatch) {
		return nil, ErrInvalidTransition
	}

	order.Status = string(models.OrderCancel)
	order.CancellationReason = reason

	err = s.applyTransition(order, &models.UserLog{
		UserID:  actor,
		Action:  models.ActionCancel,
		OrderID: order.ID,
		Details: "cancelled: " + reason,
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid records full payment of the order total. Fulfillment status
// is left untouched; a second payment attempt is rejected. The caller
// removes the stored slip file when an error comes back.
func (s *orderService) MarkPaid(id uint, method, slipPath string, actor uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.PayStatus == string(models.PayPaid) {
		return nil, ErrAlreadyPaid
	}
	if order.Status != string(models.OrderPending) && order.Status != string(models.OrderDispatch) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	order.PayStatus = string(models.PayPaid)
	order.PayDate = &now

	err = s.orderRepo.Transaction(func(tx repository.OrderRepository) error {
		if err := tx.UpdateHeaderVersioned(order); err != nil {
			return err
		}
		if err := tx.UpdateItemsStatus(order.ID, order.Status, order.PayStatus); err != nil {
			return err
		}
		if err := tx.CreatePayment(&models.Payment{
			OrderID:    order.ID,
			AmountPaid: order.TotalAmount,
			Method:     method,
			Date:       now,
			PayBy:      actor,
			Slip:       slipPath,
		}); err != nil {
			return err
		}
		return tx.CreateLog(&models.UserLog{
			UserID:  actor,
			Action:  models.ActionPayment,
			OrderID: order.ID,
			Details: fmt.Sprintf("payment of %.2f %s via %s", order.TotalAmount, order.Currency, method),
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Complete marks a dispatched order as delivered.
func (s *orderService) Complete(id uint, actor uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != string(models.OrderDispatch) {
		return nil, ErrInvalidTransition
	}

	order.Status = string(models.OrderDone)

	err = s.applyTransition(order, &models.UserLog{
		UserID:  actor,
		Action:  models.ActionComplete,
		OrderID: order.ID,
		Details: "order completed",
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) AppendNote(id uint, note string, actor uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	appendNote(order, note)

	err = s.orderRepo.Transaction(func(tx repository.OrderRepository) error {
		if err := tx.UpdateHeaderVersioned(order); err != nil {
			return err
		}
		return tx.CreateLog(&models.UserLog{
			UserID:  actor,
			Action:  models.ActionNote,
			OrderID: order.ID,
			Details: note,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetLogs(orderID uint) ([]models.UserLog, error) {
	return s.orderRepo.GetLogsByOrder(orderID)
}

// applyTransition commits a status change: versioned header update, item
// propagation and audit entry, all inside one transaction.
func (s *orderService) applyTransition(order *models.Order, entry *models.UserLog) error {
	return s.orderRepo.Transaction(func(tx repository.OrderRepository) error {
		if err := tx.UpdateHeaderVersioned(order); err != nil {
			return err
		}
		if err := tx.UpdateItemsStatus(order.ID, order.Status, order.PayStatus); err != nil {
			return err
		}
		return tx.CreateLog(entry)
	})
}

// appendNote adds a timestamped line to the append-only notes log.
func appendNote(order *models.Order, note string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04"), note)
	if order.Notes == "" {
		order.Notes = line
		return
	}
	order.Notes = order.Notes + "\n" + line
}

func normalizePage(page, limit int) (int, int) {
	if !allowedPageSizes[limit] {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	return page, limit
}

func totalPages(totalRows int64, limit int) int {
	if totalRows == 0 {
		return 0
	}
	return int((totalRows + int64(limit) - 1) / int64(limit))
}
