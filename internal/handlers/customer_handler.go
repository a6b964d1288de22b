package handlers

import (
	"net/http"

	"backoffice/internal/models"
	"backoffice/internal/repository"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	repo repository.CustomerRepository
}

func NewCustomerHandler(repo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil || customer.Name == "" {
		respondError(c, http.StatusBadRequest, "customer name is required")
		return
	}
	if err := h.repo.Create(&customer); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	respondOK(c, "customer created", gin.H{"customer": customer})
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.repo.GetAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load customers")
		return
	}
	respondOK(c, "ok", gin.H{"customers": customers})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "customer not found")
		return
	}
	respondOK(c, "ok", gin.H{"customer": customer})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "customer not found")
		return
	}
	if err := c.ShouldBindJSON(customer); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format")
		return
	}
	customer.ID = id
	if err := h.repo.Update(customer); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update customer")
		return
	}
	respondOK(c, "customer updated", gin.H{"customer": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete customer")
		return
	}
	respondOK(c, "customer deleted", nil)
}
