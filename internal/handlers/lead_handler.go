package handlers

import (
	"net/http"
	"strconv"

	"backoffice/internal/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadService services.LeadService
}

func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Import accepts a multipart form with a "file" CSV upload. Columns:
// full name, city, phone, product code, note.
func (h *LeadHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "csv file is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read csv file")
		return
	}
	defer f.Close()

	result, err := h.leadService.ImportCSV(f, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "import finished", gin.H{"result": result})
}

func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.leadService.ListLeads(services.ListFilter{
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
		"leads":       result.Orders,
		"total_rows":  result.TotalRows,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"limit":       result.Limit,
	})
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	lead, err := h.leadService.UpdateLeadStatus(id, req.Status, req.Note, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "lead updated", gin.H{"lead": lead})
}

func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.leadService.ConvertToOrder(id, middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "lead converted", gin.H{"order": order})
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.leadService.DeleteLead(id, middleware.ActorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "lead deleted", nil)
}
