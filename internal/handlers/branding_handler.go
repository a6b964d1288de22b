package handlers

import (
	"net/http"

	"backoffice/internal/repository"
	"backoffice/pkg/uploads"

	"github.com/gin-gonic/gin"
)

type BrandingHandler struct {
	repo  repository.BrandingRepository
	store *uploads.Store
}

func NewBrandingHandler(repo repository.BrandingRepository, store *uploads.Store) *BrandingHandler {
	return &BrandingHandler{repo: repo, store: store}
}

func (h *BrandingHandler) Get(c *gin.Context) {
	branding, err := h.repo.Get()
	if err != nil {
		respondError(c, http.StatusNotFound, "branding not configured")
		return
	}
	respondOK(c, "ok", gin.H{"branding": branding})
}

// Update takes a multipart form with text fields and optional logo and
// favicon files. Replaced asset files are deleted from disk.
func (h *BrandingHandler) Update(c *gin.Context) {
	branding, err := h.repo.Get()
	if err != nil {
		respondError(c, http.StatusNotFound, "branding not configured")
		return
	}

	if v := c.PostForm("company_name"); v != "" {
		branding.CompanyName = v
	}
	if v := c.PostForm("address"); v != "" {
		branding.Address = v
	}
	if v := c.PostForm("phone"); v != "" {
		branding.Phone = v
	}
	if v := c.PostForm("email"); v != "" {
		branding.Email = v
	}

	replacedLogo, replacedFavicon := "", ""
	newLogo, newFavicon := "", ""
	if fileHeader, err := c.FormFile("logo"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read logo file")
			return
		}
		name, err := h.store.SaveBrandingAsset("logo", fileHeader.Filename, f)
		f.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		replacedLogo = branding.Logo
		newLogo = name
		branding.Logo = name
	}
	if fileHeader, err := c.FormFile("favicon"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read favicon file")
			return
		}
		name, err := h.store.SaveBrandingAsset("favicon", fileHeader.Filename, f)
		f.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		replacedFavicon = branding.Favicon
		newFavicon = name
		branding.Favicon = name
	}

	if err := h.repo.Save(branding); err != nil {
		// keep the old assets, drop the new ones
		h.store.Remove(newLogo)
		h.store.Remove(newFavicon)
		respondError(c, http.StatusInternalServerError, "failed to update branding")
		return
	}

	if newLogo != "" {
		h.store.Remove(replacedLogo)
	}
	if newFavicon != "" {
		h.store.Remove(replacedFavicon)
	}
	respondOK(c, "branding updated", gin.H{"branding": branding})
}
