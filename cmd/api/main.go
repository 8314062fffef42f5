package main

import (
	"context"
	"fmt"
	common_api "go-erp/internal/common/api"
	"go-erp/internal/config"
	"go-erp/internal/database"
	"go-erp/internal/features/approval"
	"go-erp/internal/features/automation"
	"go-erp/internal/features/chaintemplate"
	"go-erp/internal/features/comment"
	cron_feature "go-erp/internal/features/cron"
	"go-erp/internal/features/history"
	"go-erp/internal/features/purchaseorder"
	"go-erp/internal/features/quotation"
	"go-erp/internal/features/report"
	sync_feature "go-erp/internal/features/sync"
	"go-erp/internal/features/system"
	"go-erp/internal/logger"
	"go-erp/internal/middleware"
	"go-erp/pkg/utils"
	"log"
	"time"

	_ "go-erp/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created.
// The partial unique index on pending approval runs must exist before
// the server takes traffic, so this blocks startup.
func InitializeIndexes(lc fx.Lifecycle, requests approval.RequestRepository, historyRepo history.HistoryRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := requests.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to ensure approval indexes: %w", err)
			}
			if err := historyRepo.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to ensure history indexes: %w", err)
			}
			return nil
		},
	})
}

// newApprovalService constructs the approval engine without finalizers;
// the document services register themselves in RegisterFinalizers.
func newApprovalService(
	repo approval.RequestRepository,
	templates approval.TemplateProvider,
	historyService history.HistoryService,
	commentService comment.CommentService,
	automationHook approval.AutomationHook,
	zapLogger *zap.Logger,
) approval.ApprovalService {
	return approval.NewApprovalService(repo, templates, historyService, commentService, automationHook, nil, zapLogger)
}

// RegisterFinalizers attaches the document services to the approval engine
// so terminal transitions flip document status.
func RegisterFinalizers(
	approvals approval.ApprovalService,
	quotations quotation.QuotationService,
	orders purchaseorder.OrderService,
) {
	approvals.RegisterFinalizer(quotations)
	approvals.RegisterFinalizer(orders)
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			chaintemplate.NewTemplateRepository,
			approval.NewRequestRepository,
			history.NewHistoryRepository,
			comment.NewCommentRepository,
			quotation.NewQuotationRepository,
			purchaseorder.NewOrderRepository,
			automation.NewAutomationRepository,
			sync_feature.NewSyncSettingRepository,
			sync_feature.NewSyncLogRepository,

			// Initialize Service
			chaintemplate.NewTemplateService,
			history.NewHistoryService,
			comment.NewCommentService,
			automation.NewAutomationService,
			newApprovalService,
			quotation.NewQuotationService,
			purchaseorder.NewOrderService,
			sync_feature.NewSyncService,
			report.NewReportService,
			cron_feature.NewScheduler,

			// Websocket hub feeding the live audit trail
			system.NewHub,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s chaintemplate.TemplateService) approval.TemplateProvider { return s },
			func(s automation.AutomationService) approval.AutomationHook { return s },
			func(h *system.Hub) history.Publisher { return h },

			// Initialize Controller
			chaintemplate.NewTemplateController,
			approval.NewApprovalController,
			quotation.NewQuotationController,
			purchaseorder.NewOrderController,
			automation.NewAutomationController,
			sync_feature.NewSyncController,
			report.NewReportController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(chaintemplate.NewTemplateApi),
			AsRoute(approval.NewApprovalApi),
			AsRoute(quotation.NewQuotationApi),
			AsRoute(purchaseorder.NewOrderApi),
			AsRoute(automation.NewAutomationApi),
			AsRoute(sync_feature.NewSyncApi),
			AsRoute(report.NewReportApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterFinalizers,
			RegisterAllRoutesWithAnnotation,
			InitializeIndexes,
			func(lc fx.Lifecycle, scheduler cron_feature.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduler.Stop()
					},
				})
			},
			StartServer,
		),
	)

	app.Run()
}
