package handlers

import (
	"net/http"

	"backoffice/internal/repository"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves read-only payment views; payments are created
// through the order payment transition.
type PaymentHandler struct {
	repo repository.PaymentRepository
}

func NewPaymentHandler(repo repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{repo: repo}
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.repo.GetAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load payments")
		return
	}
	respondOK(c, "ok", gin.H{"payments": payments})
}

func (h *PaymentHandler) ByOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payments, err := h.repo.GetByOrderID(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load payments")
		return
	}
	respondOK(c, "ok", gin.H{"payments": payments})
}
