package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"printshop-crm/app/controller"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Pricing    *controller.PricingController
	Rule       *controller.RuleController
	Client     *controller.ClientController
	Catalog    *controller.CatalogController
	Order      *controller.OrderController
	Attachment *controller.AttachmentController
	Invoice    *controller.InvoiceController
	Assistant  *controller.AssistantController
	Webhook    *controller.WebhookController
}

// pingHandler handles GET /ping.
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// New builds the HTTP handler for the whole admin API.
func New(c *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/pricing/calculate", c.Pricing.Calculate)

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", c.Rule.List)
			r.Post("/", c.Rule.Create)
			r.Get("/{id}", c.Rule.Get)
			r.Put("/{id}", c.Rule.Update)
			r.Delete("/{id}", c.Rule.Delete)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", c.Client.List)
			r.Post("/", c.Client.Create)
			r.Get("/{id}", c.Client.Get)
			r.Put("/{id}", c.Client.Update)
			r.Delete("/{id}", c.Client.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", c.Catalog.ListProducts)
			r.Post("/", c.Catalog.CreateProduct)
			r.Get("/{id}", c.Catalog.GetProduct)
			r.Put("/{id}", c.Catalog.UpdateProduct)
			r.Delete("/{id}", c.Catalog.DeleteProduct)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", c.Catalog.ListMaterials)
			r.Post("/", c.Catalog.CreateMaterial)
			r.Put("/{id}", c.Catalog.UpdateMaterial)
			r.Delete("/{id}", c.Catalog.DeleteMaterial)
		})

		r.Route("/works", func(r chi.Router) {
			r.Get("/", c.Catalog.ListWorks)
			r.Post("/", c.Catalog.CreateWork)
			r.Put("/{id}", c.Catalog.UpdateWork)
			r.Delete("/{id}", c.Catalog.DeleteWork)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", c.Order.List)
			r.Post("/", c.Order.Create)
			r.Get("/{id}", c.Order.Get)
			r.Post("/{id}/status", c.Order.UpdateStatus)
			r.Post("/{id}/items", c.Order.AddItem)
			r.Put("/{id}/items/{itemId}", c.Order.UpdateItem)
			r.Delete("/{id}/items/{itemId}", c.Order.RemoveItem)
			r.Get("/{id}/attachments", c.Attachment.List)
			r.Post("/{id}/attachments", c.Attachment.Upload)
			r.Get("/{id}/invoice", c.Invoice.RenderHTML)
			r.Get("/{id}/invoice.pdf", c.Invoice.RenderPDF)
		})

		r.Route("/attachments", func(r chi.Router) {
			r.Get("/{id}/download", c.Attachment.Download)
			r.Get("/{id}/thumbnail", c.Attachment.Thumbnail)
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Get("/", c.Webhook.List)
			r.Post("/", c.Webhook.Create)
			r.Delete("/{id}", c.Webhook.Delete)
		})

		r.Post("/assistant/quote", c.Assistant.Quote)
	})

	return r
}
