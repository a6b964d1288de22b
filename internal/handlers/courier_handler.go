package handlers

import (
	"net/http"

	"backoffice/internal/models"
	"backoffice/internal/repository"

	"github.com/gin-gonic/gin"
)

type CourierHandler struct {
	repo repository.CourierRepository
}

func NewCourierHandler(repo repository.CourierRepository) *CourierHandler {
	return &CourierHandler{repo: repo}
}

func (h *CourierHandler) Create(c *gin.Context) {
	var courier models.Courier
	if err := c.ShouldBindJSON(&courier); err != nil || courier.Name == "" {
		respondError(c, http.StatusBadRequest, "courier name is required")
		return
	}
	if err := h.repo.Create(&courier); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create courier")
		return
	}
	respondOK(c, "courier created", gin.H{"courier": courier})
}

func (h *CourierHandler) List(c *gin.Context) {
	couriers, err := h.repo.GetAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load couriers")
		return
	}
	respondOK(c, "ok", gin.H{"couriers": couriers})
}

func (h *CourierHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	courier, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "courier not found")
		return
	}
	if err := c.ShouldBindJSON(courier); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format")
		return
	}
	courier.ID = id
	if err := h.repo.Update(courier); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update courier")
		return
	}
	respondOK(c, "courier updated", gin.H{"courier": courier})
}

func (h *CourierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete courier")
		return
	}
	respondOK(c, "courier deleted", nil)
}
