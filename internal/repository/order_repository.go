package repository

import (
	"errors"
	"strings"

	"backoffice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionConflict is returned when a versioned header update matches
// no row, meaning a concurrent transition won the race.
var ErrVersionConflict = errors.New("order was modified by another operation")

// OrderFilter drives the status-scoped list views. Search is matched as
// a case-insensitive substring OR-combined across id, customer name,
// dates, amount, status and tracking number.
type OrderFilter struct {
	Status    string
	Interface string
	Search    string
	Page      int
	Limit     int
}

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetWithDetails(id uint) (*models.Order, error)
	Search(filter OrderFilter) ([]models.Order, int64, error)
	UpdateHeaderVersioned(order *models.Order) error
	UpdateItemsStatus(orderID uint, status, payStatus string) error
	CreatePayment(payment *models.Payment) error
	CreateLog(entry *models.UserLog) error
	GetLogsByOrder(orderID uint) ([]models.UserLog, error)
	HardDelete(id uint) error
	Transaction(fn func(tx OrderRepository) error) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetWithDetails(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Payments").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Search(filter OrderFilter) ([]models.Order, int64, error) {
	q := r.db.Model(&models.Order{}).
		Joins("LEFT JOIN customers ON customers.id = order_header.customer_id")

	if filter.Status != "" {
		q = q.Where("order_header.status = ?", filter.Status)
	}
	if filter.Interface != "" {
		q = q.Where("order_header.interface = ?", filter.Interface)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(`(CAST(order_header.id AS TEXT) LIKE ?
			OR LOWER(customers.name) LIKE ?
			OR LOWER(order_header.lead_name) LIKE ?
			OR CAST(order_header.issue_date AS TEXT) LIKE ?
			OR CAST(order_header.due_date AS TEXT) LIKE ?
			OR CAST(order_header.total_amount AS TEXT) LIKE ?
			OR LOWER(order_header.status) LIKE ?
			OR LOWER(order_header.tracking_number) LIKE ?)`,
			term, term, term, term, term, term, term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var orders []models.Order
	err := q.Order("order_header.id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

// UpdateHeaderVersioned writes every column of the header guarded by the
// optimistic version check. The version is bumped in place so the caller
// sees the persisted value.
func (r *orderRepository) UpdateHeaderVersioned(order *models.Order) error {
	current := order.Version
	order.Version = current + 1
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, current).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(order)
	if res.Error != nil {
		order.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		order.Version = current
		return ErrVersionConflict
	}
	return nil
}

// UpdateItemsStatus propagates header status columns to every line item
// in a single statement.
func (r *orderRepository) UpdateItemsStatus(orderID uint, status, payStatus string) error {
	return r.db.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{"status": status, "pay_status": payStatus}).Error
}

func (r *orderRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *orderRepository) CreateLog(entry *models.UserLog) error {
	return r.db.Create(entry).Error
}

func (r *orderRepository) GetLogsByOrder(orderID uint) ([]models.UserLog, error) {
	var logs []models.UserLog
	err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&logs).Error
	return logs, err
}

// HardDelete removes the header and any items. Only leads prior to
// conversion are ever deleted; the service enforces that guard.
func (r *orderRepository) HardDelete(id uint) error {
	if err := r.db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Order{}, id).Error
}

// Transaction runs fn against a repository bound to a database
// transaction; any error rolls back every write made inside fn.
func (r *orderRepository) Transaction(fn func(tx OrderRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepository{db: tx})
	})
}
