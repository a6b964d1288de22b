package handlers

import (
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/middleware"
	"backoffice/internal/services"
	"backoffice/pkg/uploads"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	store        *uploads.Store
}

func NewOrderHandler(orderService services.OrderService, store *uploads.Store) *OrderHandler {
	return &OrderHandler{orderService: orderService, store: store}
}

type orderItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
}

type createOrderRequest struct {
	CustomerID  uint               `json:"customer_id" binding:"required"`
	IssueDate   *time.Time         `json:"issue_date"`
	DueDate     *time.Time         `json:"due_date"`
	Currency    string             `json:"currency" binding:"required"`
	DeliveryFee float64            `json:"delivery_fee"`
	Notes       string             `json:"notes"`
	Items       []orderItemRequest `json:"items" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format")
		return
	}

	input := services.CreateOrderInput{
		CustomerID:  req.CustomerID,
		DueDate:     req.DueDate,
		Currency:    req.Currency,
		DeliveryFee: req.DeliveryFee,
		Notes:       req.Notes,
	}
	if req.IssueDate != nil {
		input.IssueDate = *req.IssueDate
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, services.OrderItemInput{
			ProductID: it.ProductID,
			Price:     it.Price,
			Discount:  it.Discount,
		})
	}

	order, err := h.orderService.CreateOrder(input, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "order created", gin.H{"order": order})
}

func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.orderService.ListOrders(services.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "ok", gin.H{
		"orders":      result.Orders,
		"total_rows":  result.TotalRows,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"limit":       result.Limit,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "ok", gin.H{"order": order})
}

func (h *OrderHandler) Dispatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		CourierID      uint    `json:"courier_id" binding:"required"`
		TrackingNumber string  `json:"tracking_number" binding:"required"`
		DeliveryFee    float64 `json:"delivery_fee"`
		Note           string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "courier and tracking number are required")
		return
	}

	order, err := h.orderService.Dispatch(id, req.CourierID, req.TrackingNumber, req.DeliveryFee, req.Note, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "order dispatched", gin.H{"order": order})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "cancellation reason is required")
		return
	}

	order, err := h.orderService.Cancel(id, req.Reason, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "order cancelled", gin.H{"order": order})
}

// Payment accepts a multipart form with a "method" field and an optional
// "slip" proof file. The slip is stored before the transition runs and
// removed again if the transition fails.
func (h *OrderHandler) Payment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	method := c.PostForm("method")
	if method == "" {
		respondError(c, http.StatusBadRequest, "payment method is required")
		return
	}

	slipPath := ""
	if fileHeader, err := c.FormFile("slip"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read slip file")
			return
		}
		defer f.Close()

		slipPath, err = h.store.SaveSlip(id, fileHeader.Filename, f, fileHeader.Size)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	order, err := h.orderService.MarkPaid(id, method, slipPath, middleware.ActorID(c))
	if err != nil {
		h.store.Remove(slipPath)
		respondServiceError(c, err)
		return
	}
	respondOK(c, "payment recorded", gin.H{"order": order})
}

func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Complete(id, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "order completed", gin.H{"order": order})
}

func (h *OrderHandler) AppendNote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "note is required")
		return
	}

	order, err := h.orderService.AppendNote(id, req.Note, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "note added", gin.H{"order": order})
}

func (h *OrderHandler) Logs(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	logs, err := h.orderService.GetLogs(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "ok", gin.H{"logs": logs})
}
