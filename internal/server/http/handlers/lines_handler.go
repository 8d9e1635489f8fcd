package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/resource"
	"github.com/polkiloo/findash/internal/server/http/dto"
)

// LinesHandler edits the lines of the open order editor.
type LinesHandler struct {
	lines  LineEditor
	drafts OrderDrafts
}

// NewLinesHandler creates LinesHandler instance.
func NewLinesHandler(lines LineEditor, drafts OrderDrafts) *LinesHandler {
	return &LinesHandler{lines: lines, drafts: drafts}
}

// Register attaches the line routes under /orders/editor/lines.
func (h *LinesHandler) Register(g *gin.RouterGroup) {
	r := g.Group("/orders/editor/lines")
	r.GET("", h.List)
	r.POST("", h.Add)
	r.PATCH("/:index", h.Change)
	r.DELETE("/:index", h.Remove)
}

func (h *LinesHandler) respond(c *gin.Context, status int) {
	items := h.drafts.Editor().Draft.Items
	if items == nil {
		items = []model.OrderItem{}
	}
	c.JSON(status, dto.LinesResponse{Items: items, Total: h.lines.Total()})
}

func lineIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "line index must be a number"})
		return 0, false
	}
	return i, true
}

// List handles GET /orders/editor/lines.
func (h *LinesHandler) List(c *gin.Context) {
	h.respond(c, http.StatusOK)
}

// Add handles POST /orders/editor/lines.
func (h *LinesHandler) Add(c *gin.Context) {
	if _, err := h.lines.AddItem(); err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusCreated)
}

// Change handles PATCH /orders/editor/lines/:index. All given fields are
// applied together or not at all.
func (h *LinesHandler) Change(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	var req dto.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	change := resource.LineChange{ProductID: req.ProductID, Quantity: req.Quantity, Price: req.Price}
	if err := h.lines.ChangeItem(i, change); err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// Remove handles DELETE /orders/editor/lines/:index.
func (h *LinesHandler) Remove(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	if err := h.lines.RemoveItem(i); err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}
