package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"printshop-crm/app/controller"
	"printshop-crm/app/router"
	"printshop-crm/config"
	"printshop-crm/db"
	"printshop-crm/migrations"
	"printshop-crm/pricing"
	"printshop-crm/repository"
	"printshop-crm/service"
)

// Initialize connects the database, runs migrations, and wires repositories,
// services, and controllers into the HTTP handler.
func Initialize(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	if err := db.Init(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := migrations.Up(db.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pricingRepo := repository.NewPricingRepository()
	ruleRepo := repository.NewRuleRepository()
	clientRepo := repository.NewClientRepository()
	productRepo := repository.NewProductRepository()
	materialRepo := repository.NewMaterialRepository()
	workRepo := repository.NewWorkRepository()
	orderRepo := repository.NewOrderRepository()
	attachmentRepo := repository.NewAttachmentRepository()
	webhookRepo := repository.NewWebhookRepository()

	engine := pricing.NewEngine(pricingRepo, logger)
	webhookService := service.NewWebhookService(webhookRepo, logger)
	invoiceService := service.NewInvoiceService(orderRepo, clientRepo, cfg.BaseURL, cfg.ChromePath, cfg.VATPercent)

	// Optional integrations: missing credentials disable the feature, they
	// never stop the server.
	var storage service.StorageInterface
	if cfg.GoogleCredentialsFile != "" {
		driveService, err := service.NewDriveService(cfg.GoogleCredentialsFile, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		storage = driveService
	}

	var assistantService *service.AssistantService
	if cfg.GeminiAPIKey != "" {
		var err error
		assistantService, err = service.NewAssistantService(cfg.GeminiAPIKey, cfg.GeminiModel, engine, logger)
		if err != nil {
			return nil, err
		}
	}

	controllers := &router.Controllers{
		Pricing:    controller.NewPricingController(engine, pricingRepo, clientRepo, logger),
		Rule:       controller.NewRuleController(ruleRepo),
		Client:     controller.NewClientController(clientRepo),
		Catalog:    controller.NewCatalogController(productRepo, materialRepo, workRepo),
		Order:      controller.NewOrderController(orderRepo, clientRepo, pricingRepo, engine, webhookService, logger),
		Attachment: controller.NewAttachmentController(attachmentRepo, orderRepo, storage, logger),
		Invoice:    controller.NewInvoiceController(invoiceService, logger),
		Assistant:  controller.NewAssistantController(assistantService, logger),
		Webhook:    controller.NewWebhookController(webhookRepo),
	}

	return router.New(controllers), nil
}
