package handlers

import (
	"net/http"

	"lablink/services/invoice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler exposes the billing endpoints.
type InvoiceHandler struct {
	Invoices invoice.InvoiceService
}

// GetInvoiceHandler handles GET /api/invoices/:id.
func (h *InvoiceHandler) GetInvoiceHandler(c *gin.Context) {
	inv, err := h.Invoices.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListMyInvoicesHandler handles GET /api/invoices (dentist side).
func (h *InvoiceHandler) ListMyInvoicesHandler(c *gin.Context) {
	invoices, err := h.Invoices.ListDoctorInvoices(c.Request.Context(), dentistID(c))
	if err != nil {
		getLogger(c).Error("failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// ListLabInvoicesHandler handles GET /api/invoices/lab (lab side).
func (h *InvoiceHandler) ListLabInvoicesHandler(c *gin.Context) {
	invoices, err := h.Invoices.ListLabInvoices(c.Request.Context(), labID(c))
	if err != nil {
		getLogger(c).Error("failed to list lab invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// CreatePaymentIntentHandler handles POST /api/invoices/:id/pay.
func (h *InvoiceHandler) CreatePaymentIntentHandler(c *gin.Context) {
	clientSecret, err := h.Invoices.CreatePaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		getLogger(c).Error("payment intent creation failed",
			zap.String("invoiceId", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// MarkPaidHandler handles POST /api/invoices/:id/paid.
func (h *InvoiceHandler) MarkPaidHandler(c *gin.Context) {
	if err := h.Invoices.MarkPaid(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice paid"})
}
