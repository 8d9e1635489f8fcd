package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/server/http/dto"
)

// ResourceHandler exposes one resource view. Every successful call answers
// with the view state.
type ResourceHandler[T any, F any] struct {
	view   ResourceView[T, F]
	mount  func(ctx context.Context) error
	logger *slog.Logger
}

// NewResourceHandler creates a handler for view. mount overrides the view's
// own Mount when the view needs preparation first.
func NewResourceHandler[T any, F any](view ResourceView[T, F], mount func(ctx context.Context) error, logger *slog.Logger) *ResourceHandler[T, F] {
	if mount == nil {
		mount = view.Mount
	}
	return &ResourceHandler[T, F]{view: view, mount: mount, logger: logger}
}

// Register attaches the view routes under /<name>.
func (h *ResourceHandler[T, F]) Register(g *gin.RouterGroup) {
	r := g.Group("/" + h.view.Name())
	r.GET("", h.State)
	r.POST("/mount", h.Mount)
	r.POST("/unmount", h.Unmount)
	r.POST("/refresh", h.Refresh)
	r.PUT("/filter", h.SetFilter)
	r.POST("/items", h.Create)
	r.PUT("/items/:id", h.Update)
	r.DELETE("/items/:id", h.Delete)
	r.DELETE("/outcome", h.DismissOutcome)
	r.POST("/editor", h.OpenEditor)
	r.PUT("/editor", h.ReplaceDraft)
	r.DELETE("/editor", h.CloseEditor)
	r.POST("/editor/save", h.Save)
}

func (h *ResourceHandler[T, F]) state(c *gin.Context, status int) {
	c.JSON(status, h.view.State())
}

func (h *ResourceHandler[T, F]) afterLoad(c *gin.Context, err error) {
	if loadFailed(err) {
		writeError(c, err)
		return
	}
	if err != nil {
		h.logger.Debug("view load did not apply",
			slog.String("resource", h.view.Name()),
			slog.String("error", err.Error()),
		)
	}
	h.state(c, http.StatusOK)
}

// afterMutation answers with the state, which carries the outcome notice.
func (h *ResourceHandler[T, F]) afterMutation(c *gin.Context, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	h.state(c, http.StatusOK)
}

// State handles GET /<name>.
func (h *ResourceHandler[T, F]) State(c *gin.Context) {
	h.state(c, http.StatusOK)
}

// Mount handles POST /<name>/mount.
func (h *ResourceHandler[T, F]) Mount(c *gin.Context) {
	h.afterLoad(c, h.mount(c.Request.Context()))
}

// Unmount handles POST /<name>/unmount.
func (h *ResourceHandler[T, F]) Unmount(c *gin.Context) {
	h.view.Unmount()
	h.state(c, http.StatusOK)
}

// Refresh handles POST /<name>/refresh.
func (h *ResourceHandler[T, F]) Refresh(c *gin.Context) {
	h.afterLoad(c, h.view.Reload(c.Request.Context()))
}

// SetFilter handles PUT /<name>/filter.
func (h *ResourceHandler[T, F]) SetFilter(c *gin.Context) {
	var f F
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid filter"})
		return
	}
	h.afterLoad(c, h.view.SetFilter(c.Request.Context(), f))
}

// Create handles POST /<name>/items.
func (h *ResourceHandler[T, F]) Create(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	_, err := h.view.Create(c.Request.Context(), entity)
	h.afterMutation(c, err)
}

// Update handles PUT /<name>/items/:id.
func (h *ResourceHandler[T, F]) Update(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	_, err := h.view.Update(c.Request.Context(), model.ID(c.Param("id")), entity)
	h.afterMutation(c, err)
}

// Delete handles DELETE /<name>/items/:id.
func (h *ResourceHandler[T, F]) Delete(c *gin.Context) {
	_, err := h.view.Delete(c.Request.Context(), model.ID(c.Param("id")))
	h.afterMutation(c, err)
}

// DismissOutcome handles DELETE /<name>/outcome.
func (h *ResourceHandler[T, F]) DismissOutcome(c *gin.Context) {
	h.view.DismissOutcome()
	h.state(c, http.StatusOK)
}

// OpenEditor handles POST /<name>/editor. An empty body opens a blank form.
func (h *ResourceHandler[T, F]) OpenEditor(c *gin.Context) {
	var req dto.OpenEditorRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}
	}
	if err := h.view.OpenEditor(req.ID); err != nil {
		writeError(c, err)
		return
	}
	h.state(c, http.StatusOK)
}

// ReplaceDraft handles PUT /<name>/editor.
func (h *ResourceHandler[T, F]) ReplaceDraft(c *gin.Context) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.view.ReplaceDraft(draft); err != nil {
		writeError(c, err)
		return
	}
	h.state(c, http.StatusOK)
}

// CloseEditor handles DELETE /<name>/editor.
func (h *ResourceHandler[T, F]) CloseEditor(c *gin.Context) {
	h.view.CloseEditor()
	h.state(c, http.StatusOK)
}

// Save handles POST /<name>/editor/save.
func (h *ResourceHandler[T, F]) Save(c *gin.Context) {
	_, err := h.view.Save(c.Request.Context())
	h.afterMutation(c, err)
}
