package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhubbd/tutorhub-api/internal/service"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
	"github.com/tutorhubbd/tutorhub-api/pkg/response"
)

// InvoiceHandler wires HTTP endpoints to the invoice service.
type InvoiceHandler struct {
	invoices *service.InvoiceService
}

// NewInvoiceHandler creates a new handler.
func NewInvoiceHandler(invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// List godoc
// @Summary List invoices
// @Description List commission invoices visible to the caller
// @Tags Invoices
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	invoices, err := h.invoices.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, invoices, nil)
}

// Pay godoc
// @Summary Pay invoice
// @Description Settle an unpaid commission invoice as the invoiced teacher
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	inv, err := h.invoices.Pay(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, inv, nil)
}

// DownloadPDF godoc
// @Summary Download invoice PDF
// @Description Render a commission invoice as a printable PDF
// @Tags Invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	invoiceID := c.Param("id")
	pdfBytes, err := h.invoices.RenderPDF(c.Request.Context(), claims.UserID, invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoiceID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
