package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"printshop-crm/models"
	"printshop-crm/repository"
	"printshop-crm/utils"
)

// InvoiceService renders order invoices as HTML and prints them to PDF with
// headless Chrome. VAT is applied here, at render time, and nowhere else.
type InvoiceService struct {
	orders     repository.OrderRepositoryInterface
	clients    repository.ClientRepositoryInterface
	baseURL    string
	chromePath string
	vatPercent float64
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	orders repository.OrderRepositoryInterface,
	clients repository.ClientRepositoryInterface,
	baseURL, chromePath string,
	vatPercent float64,
) *InvoiceService {
	return &InvoiceService{
		orders:     orders,
		clients:    clients,
		baseURL:    baseURL,
		chromePath: chromePath,
		vatPercent: vatPercent,
	}
}

type invoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

type invoiceData struct {
	OrderID    int64
	Date       string
	ClientName string
	Company    string
	Lines      []invoiceLine
	Net        string
	VATPercent float64
	VAT        string
	Gross      string
}

// RenderHTML renders the invoice HTML for an order.
func (s *InvoiceService) RenderHTML(ctx context.Context, orderID int64) (string, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	client, err := s.clients.Get(ctx, order.ClientID)
	if err != nil {
		return "", err
	}

	data := invoiceData{
		OrderID:    order.ID,
		Date:       time.Now().Format("2006-01-02"),
		ClientName: client.Name,
		Company:    client.Company,
		VATPercent: s.vatPercent,
	}

	var net float64
	for _, item := range order.Items {
		net += item.TotalPrice
		data.Lines = append(data.Lines, invoiceLine{
			Description: itemDescription(&item),
			Quantity:    item.Quantity,
			UnitPrice:   utils.FormatEUR(item.UnitPrice),
			Total:       utils.FormatEUR(item.TotalPrice),
		})
	}

	vat := net * s.vatPercent / 100
	data.Net = utils.FormatEUR(net)
	data.VAT = utils.FormatEUR(vat)
	data.Gross = utils.FormatEUR(net + vat)

	tmpl, err := template.ParseFiles(filepath.Join("templates", "invoice.html"))
	if err != nil {
		return "", fmt.Errorf("failed to parse invoice template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}

	return buf.String(), nil
}

func itemDescription(item *models.OrderItem) string {
	desc := fmt.Sprintf("Product #%d", item.ProductID)
	if item.WidthMM != nil && item.HeightMM != nil {
		desc = fmt.Sprintf("%s (%.0fx%.0f mm)", desc, *item.WidthMM, *item.HeightMM)
	}
	if item.ManualOverride {
		desc += " [manual price]"
	}
	return desc
}

// GeneratePDF prints the rendered invoice to an A4 PDF.
func (s *InvoiceService) GeneratePDF(ctx context.Context, orderID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/orders/%d/invoice", s.baseURL, orderID)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// detectChromePath checks CHROME_PATH style config first, then common
// installation paths.
func (s *InvoiceService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
