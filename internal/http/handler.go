package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/bill-studio/internal/auth"
	"github.com/nurpe/bill-studio/internal/export"
	"github.com/nurpe/bill-studio/internal/http/middleware"
	"github.com/nurpe/bill-studio/internal/http/ws"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/service"
)

type Handler struct {
	workspace *service.Workspace
	hub       *ws.Hub
	parser    *auth.Parser
	log       zerolog.Logger
}

// NewHandler wires the API. hub and parser may be nil: without a hub there is
// no /ws endpoint, without a parser the endpoint is open.
func NewHandler(workspace *service.Workspace, hub *ws.Hub, parser *auth.Parser, log zerolog.Logger) *Handler {
	return &Handler{workspace: workspace, hub: hub, parser: parser, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	if h.hub != nil {
		router.GET("/ws", h.serveWs)
	}

	api := router.Group("/api")
	api.Use(authMiddleware)
	api.GET("/mode", h.getMode)
	api.PUT("/mode", h.setMode)
	api.GET("/invoice", h.getInvoice)
	api.GET("/fuel", h.getFuel)
	api.GET("/export", h.export)

	// Everything that changes a document needs the operator role.
	operate := api.Group("/", h.requireOperator)
	operate.PUT("/invoice", h.updateInvoice)
	operate.POST("/invoice/items", h.addItem)
	operate.PUT("/invoice/items/:index", h.updateItem)
	operate.DELETE("/invoice/items/:index", h.removeItem)
	operate.PUT("/fuel", h.updateFuel)
	operate.POST("/fuel/invoice-number", h.generateFuelInvoiceNo)
	operate.POST("/fuel/batch", h.startBatch)
}

func (h *Handler) requireOperator(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	if err := service.Authorize(principal); err != nil {
		h.log.Warn().Str("subject", principal.Subject).Str("role", principal.Role).Str("path", c.FullPath()).Msg("operation denied")
		h.handleError(c, err)
		c.Abort()
		return
	}
	c.Next()
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *Handler) getMode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": h.workspace.Mode()})
}

func (h *Handler) setMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode := model.Mode(strings.ToLower(strings.TrimSpace(req.Mode)))
	if err := h.workspace.SetMode(mode); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

func (h *Handler) getInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace.Invoice())
}

func (h *Handler) updateInvoice(c *gin.Context) {
	var req service.InvoiceFieldsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.workspace.UpdateInvoice(req))
}

func (h *Handler) addItem(c *gin.Context) {
	var req service.ItemInput
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.workspace.AddItem(req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) updateItem(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req service.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.workspace.UpdateItem(index, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeItem(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	view, err := h.workspace.RemoveItem(index)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) getFuel(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace.Fuel())
}

func (h *Handler) updateFuel(c *gin.Context) {
	var req service.FuelFieldsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.workspace.UpdateFuel(req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) generateFuelInvoiceNo(c *gin.Context) {
	view, err := h.workspace.GenerateFuelInvoiceNo()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// batchRequest accepts count as a JSON number or as the raw text of the form
// field; anything that is not a positive integer starts nothing.
type batchRequest struct {
	Count     json.RawMessage `json:"count"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	RateMin   *float64        `json:"rateMin"`
	RateMax   *float64        `json:"rateMax"`
	AmountMin *float64        `json:"amountMin"`
	AmountMax *float64        `json:"amountMax"`
}

func (h *Handler) startBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.BatchInput{
		Count:     strings.Trim(string(req.Count), `"`),
		RateMin:   req.RateMin,
		RateMax:   req.RateMax,
		AmountMin: req.AmountMin,
		AmountMax: req.AmountMax,
	}
	if strings.TrimSpace(req.From) != "" {
		from, err := parseDate(req.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
		input.From = &from
	}
	if strings.TrimSpace(req.To) != "" {
		to, err := parseDate(req.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
		input.To = &to
	}

	// The run outlives the request.
	ticket, err := h.workspace.StartBatch(context.WithoutCancel(c.Request.Context()), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusOK, gin.H{"started": false})
		return
	}

	principal, _ := middleware.MustPrincipal(c)
	h.log.Info().
		Str("batch_id", ticket.ID.String()).
		Int("count", ticket.Count).
		Str("subject", principal.Subject).
		Msg("batch accepted")
	c.JSON(http.StatusAccepted, gin.H{"started": true, "batchId": ticket.ID, "count": ticket.Count})
}

func (h *Handler) export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode := model.Mode(strings.ToLower(strings.TrimSpace(c.Query("mode"))))

	result, err := h.workspace.ExportMode(c.Request.Context(), mode, format)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", result.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) serveWs(c *gin.Context) {
	h.hub.Serve(c, h.parser)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBatchRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExportFailed):
		h.log.Error().Err(err).Msg("export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindOptionalJSON binds the body when there is one.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, service.ErrInvalidInput
	}
	return index, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
