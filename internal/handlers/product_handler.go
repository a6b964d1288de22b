package handlers

import (
	"net/http"

	"backoffice/internal/models"
	"backoffice/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.Code == "" || product.Name == "" {
		respondError(c, http.StatusBadRequest, "product code and name are required")
		return
	}
	if err := h.repo.Create(&product); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create product")
		return
	}
	respondOK(c, "product created", gin.H{"product": product})
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.repo.GetAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load products")
		return
	}
	respondOK(c, "ok", gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}
	respondOK(c, "ok", gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}
	if err := c.ShouldBindJSON(product); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format")
		return
	}
	product.ID = id
	if err := h.repo.Update(product); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update product")
		return
	}
	respondOK(c, "product updated", gin.H{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete product")
		return
	}
	respondOK(c, "product deleted", nil)
}
