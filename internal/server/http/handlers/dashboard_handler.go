package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/server/http/dto"
)

// DashboardHandler exposes the analytics view.
type DashboardHandler struct {
	view DashboardView
}

// NewDashboardHandler creates DashboardHandler instance.
func NewDashboardHandler(view DashboardView) *DashboardHandler {
	return &DashboardHandler{view: view}
}

// Register attaches the dashboard routes under /dashboard.
func (h *DashboardHandler) Register(g *gin.RouterGroup) {
	r := g.Group("/dashboard")
	r.GET("", h.State)
	r.POST("/mount", h.Mount)
	r.POST("/unmount", h.Unmount)
	r.POST("/refresh", h.Refresh)
	r.PUT("/filter", h.SetFilter)
}

func (h *DashboardHandler) afterLoad(c *gin.Context, err error) {
	if loadFailed(err) {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.State())
}

// State handles GET /dashboard.
func (h *DashboardHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.State())
}

// Mount handles POST /dashboard/mount.
func (h *DashboardHandler) Mount(c *gin.Context) {
	h.afterLoad(c, h.view.Mount(c.Request.Context()))
}

// Unmount handles POST /dashboard/unmount.
func (h *DashboardHandler) Unmount(c *gin.Context) {
	h.view.Unmount()
	c.JSON(http.StatusOK, h.view.State())
}

// Refresh handles POST /dashboard/refresh.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.afterLoad(c, h.view.Reload(c.Request.Context()))
}

// SetFilter handles PUT /dashboard/filter.
func (h *DashboardHandler) SetFilter(c *gin.Context) {
	var f model.DashboardFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid filter"})
		return
	}
	h.afterLoad(c, h.view.SetFilter(c.Request.Context(), f))
}
