package controller

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"printshop-crm/service"
)

// InvoiceController renders order invoices. The HTML route doubles as the
// page headless Chrome prints when producing the PDF.
type InvoiceController struct {
	invoices *service.InvoiceService
	logger   *zap.Logger
}

// NewInvoiceController creates a new InvoiceController.
func NewInvoiceController(invoices *service.InvoiceService, logger *zap.Logger) *InvoiceController {
	return &InvoiceController{invoices: invoices, logger: logger}
}

// RenderHTML handles GET /admin/orders/{id}/invoice.
func (c *InvoiceController) RenderHTML(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	html, err := c.invoices.RenderHTML(r.Context(), orderID)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// RenderPDF handles GET /admin/orders/{id}/invoice.pdf.
func (c *InvoiceController) RenderPDF(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	pdf, err := c.invoices.GeneratePDF(r.Context(), orderID)
	if err != nil {
		c.logger.Error("invoice PDF generation failed",
			zap.Int64("orderId", orderID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice-%d.pdf", orderID)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
