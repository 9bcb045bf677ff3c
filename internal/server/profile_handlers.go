package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ovencontroller/internal/models"
	"ovencontroller/internal/profile"
)

// @Summary  List profile names
// @Tags     profiles
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /api/v1/profiles [get]
func (h *Handler) listProfiles(c *gin.Context) {
	n, err := h.cat.Count()
	if err != nil {
		h.logError(c, http.StatusInternalServerError, "failed to read catalog", "profiles_count_failed", err)
		return
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		hdr, err := h.cat.LoadHeader(i)
		if err != nil {
			h.logError(c, http.StatusInternalServerError, "failed to read profile header", "profiles_header_failed", err)
			return
		}
		names = append(names, hdr.Name)
	}
	c.JSON(http.StatusOK, gin.H{"profiles": names})
}

// @Summary  Get a profile by index
// @Tags     profiles
// @Produce  json
// @Param    idx path int true "profile index"
// @Success  200 {object} models.Profile
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /api/v1/profiles/{idx} [get]
func (h *Handler) getProfile(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	p, err := h.cat.LoadProfile(idx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary  Create a profile and append it to the catalog
// @Tags     profiles
// @Accept   json
// @Produce  json
// @Param    body body models.Profile true "profile"
// @Success  200 {object} map[string]int
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /api/v1/profiles [post]
func (h *Handler) createProfile(c *gin.Context) {
	var p models.Profile
	if !h.bindJSONOrBadRequest(c, &p) {
		return
	}
	if err := profile.Validate(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := ctxWithTimeout(c)
	defer cancel()
	if err := h.cat.Append(ctx, p); err != nil {
		h.logError(c, http.StatusInternalServerError, "failed to persist profile", "profile_append_failed", err)
		return
	}
	idx, _ := h.cat.Count()
	c.JSON(http.StatusOK, gin.H{"index": idx - 1})
}

// @Summary  Activate a profile
// @Tags     profiles
// @Produce  json
// @Param    idx path int true "profile index"
// @Success  200 {object} map[string]string
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /api/v1/profiles/{idx}/select [post]
func (h *Handler) selectProfile(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	p, err := h.cat.LoadProfile(idx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := h.ctrl.SetPhases(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.ctrl.SetActiveIndex(idx)
	c.JSON(http.StatusOK, gin.H{"status": "selected"})
}
