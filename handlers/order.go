package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"lablink/models"
	"lablink/services/order"
	"lablink/services/ranking"
	"lablink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler exposes the dental case lifecycle endpoints.
type OrderHandler struct {
	Orders order.OrderService
}

// CreateOrderHandler handles POST /api/orders.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	logger := getLogger(c)

	var input struct {
		models.Order
		AutoAssign bool `json:"autoAssign"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ord := input.Order
	ord.DoctorID = dentistID(c)

	created, assignment, err := h.Orders.CreateOrder(c.Request.Context(), &ord, input.AutoAssign)
	if err != nil {
		logger.Error("order creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": created, "assignment": assignment})
}

// AutoAssignHandler handles POST /api/orders/auto-assign.
func (h *OrderHandler) AutoAssignHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Orders.AutoAssign(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ranking.ErrNoLabs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ranking.ErrNoLabs.Error()})
			return
		}
		logger.Error("auto-assignment failed", zap.String("orderId", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign a lab"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetOrderHandler handles GET /api/orders/:id.
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	ord, err := h.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		logger.Error("order not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, ord)
}

// ListMyOrdersHandler handles GET /api/orders (dentist view).
func (h *OrderHandler) ListMyOrdersHandler(c *gin.Context) {
	orders, err := h.Orders.ListDoctorOrders(c.Request.Context(), dentistID(c))
	if err != nil {
		getLogger(c).Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListLabOrdersHandler handles GET /api/orders/assigned (lab view).
func (h *OrderHandler) ListLabOrdersHandler(c *gin.Context) {
	orders, err := h.Orders.ListLabOrders(c.Request.Context(), labID(c))
	if err != nil {
		getLogger(c).Error("failed to list lab orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListOpenOrdersHandler handles GET /api/orders/open (lab marketplace view).
// Restoration types come comma separated in the "types" query param; without
// the param the lab sees orders matching its own specializations.
func (h *OrderHandler) ListOpenOrdersHandler(c *gin.Context) {
	var types []string
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	orders, err := h.Orders.ListOpenOrders(c.Request.Context(), labID(c), types)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateStatusHandler handles PUT /api/orders/:id/status (lab side).
func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ord, err := h.Orders.AdvanceStatus(c.Request.Context(), c.Param("id"), labID(c), input.Status, input.Note)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ord)
}

// CancelOrderHandler handles POST /api/orders/:id/cancel (dentist side).
func (h *OrderHandler) CancelOrderHandler(c *gin.Context) {
	var input struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&input)

	ord, err := h.Orders.AdvanceStatus(c.Request.Context(), c.Param("id"), dentistID(c), models.OrderStatusCancelled, input.Note)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ord)
}

// ConfirmDeliveryHandler handles POST /api/orders/:id/delivered.
func (h *OrderHandler) ConfirmDeliveryHandler(c *gin.Context) {
	ord, inv, err := h.Orders.ConfirmDelivery(c.Request.Context(), c.Param("id"), dentistID(c))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": ord, "invoice": inv})
}

// UploadAttachmentHandler handles POST /api/orders/:id/attachments. The file
// comes in as multipart form data with a "kind" field (photo or model).
func (h *OrderHandler) UploadAttachmentHandler(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > utils.MaxModelFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	kind := c.DefaultPostForm("kind", "photo")

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		logger.Error("failed to stage upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	defer os.Remove(tmpPath)

	att, err := h.Orders.AddAttachment(c.Request.Context(), c.Param("id"), tmpPath, fileHeader.Filename, kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, att)
}
