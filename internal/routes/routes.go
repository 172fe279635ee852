package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhadigital/barber-saas/internal/audit"
	"github.com/navalhadigital/barber-saas/internal/config"
	"github.com/navalhadigital/barber-saas/internal/handlers"
	infraRepo "github.com/navalhadigital/barber-saas/internal/infra/repository"
	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/payments/mercadopago"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
	"github.com/navalhadigital/barber-saas/internal/storage"
	ucBooking "github.com/navalhadigital/barber-saas/internal/usecase/booking"
	ucInventory "github.com/navalhadigital/barber-saas/internal/usecase/inventory"
	ucSubscription "github.com/navalhadigital/barber-saas/internal/usecase/subscription"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	broker pubsub.Broker,
	notifier *notify.Dispatcher,
	uploader storage.Uploader,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)
	inventoryRepo := infraRepo.NewInventoryGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		broker,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		auditDispatcher,
		notifier,
		broker,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	paymentLinkUC := ucBooking.NewCreatePaymentLink(
		bookingRepo,
		mercadopago.Factory,
		cfg.PublicBaseURL,
	)

	confirmPaymentUC := ucBooking.NewConfirmPayment(
		bookingRepo,
		mercadopago.Factory,
		notifier,
		broker,
	)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// 🧠 USE CASES — SUBSCRIPTIONS
	// ======================================================
	checkoutUC := ucSubscription.NewCreatePreapproval(
		subscriptionRepo,
		mercadopago.Factory,
		auditDispatcher,
		cfg.PublicBaseURL,
	)

	reconcileUC := ucSubscription.NewReconcile(
		subscriptionRepo,
		mercadopago.Factory,
		broker,
	)

	cancelRenewalUC := ucSubscription.NewCancelRenewal(subscriptionRepo, auditDispatcher)
	activateUC := ucSubscription.NewActivate(subscriptionRepo, auditDispatcher, broker)

	// ======================================================
	// 🧠 USE CASES — INVENTORY
	// ======================================================
	moveStockUC := ucInventory.NewMoveStock(inventoryRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db, uploader)

	serviceHandler := handlers.NewServiceHandler(db)
	planHandler := handlers.NewPlanHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateStatusUC,
		deleteBookingUC,
		paymentLinkUC,
		confirmPaymentUC,
		availabilityUC,
		listBookingsUC,
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscriptionRepo,
		checkoutUC,
		reconcileUC,
		cancelRenewalUC,
		activateUC,
	)

	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo, moveStockUC)
	eventsHandler := handlers.NewEventsHandler(broker)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PÚBLICA (por barbearia)
		// ------------------------------
		shop := api.Group("/barbershops/:shopId")
		{
			shop.GET("/services", serviceHandler.ListPublic)
			shop.GET("/plans", planHandler.ListPublic)
			shop.GET("/availability", bookingHandler.Availability)

			shop.POST("/bookings", bookingHandler.CreatePublic)
			shop.POST("/bookings/:id/create-payment", bookingHandler.CreatePayment)

			shop.POST("/subscriptions/create-preapproval", subscriptionHandler.Create)
			shop.POST("/subscriptions/:id/cancel", subscriptionHandler.CancelRenewalPublic)

			// Webhooks do processador: sem autenticação, validados pelo
			// fetch autoritativo na API do Mercado Pago.
			shop.POST("/bookings/webhook", bookingHandler.Webhook)
			shop.POST("/subscriptions/webhook", subscriptionHandler.Webhook)
		}

		// ------------------------------
		// 🔐 API ADMIN (JWT + tenant)
		// ------------------------------
		admin := api.Group("/barbershops/:shopId/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.TenantGuard())
		{
			admin.POST("/bookings", bookingHandler.CreateAdmin)
			admin.GET("/bookings", bookingHandler.List)
			admin.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)
			admin.DELETE("/bookings/:id", bookingHandler.Delete)

			admin.GET("/subscriptions", subscriptionHandler.List)
			admin.GET("/subscriptions/:id", subscriptionHandler.Get)
			admin.PUT("/subscriptions/:id/cancel-renewal", subscriptionHandler.CancelRenewal)
			admin.PUT("/subscriptions/:id/activate", subscriptionHandler.Activate)

			admin.GET("/events", eventsHandler.Stream)
		}

		// ------------------------------
		// 🔐 API PRIVADA (/me)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)
			secured.POST("/me/barbershop/logo", barbershopHandler.UploadLogo)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id", clientHandler.Get)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/plans", planHandler.List)
			secured.POST("/me/plans", planHandler.Create)
			secured.PATCH("/me/plans/:id", planHandler.Update)

			secured.GET("/me/products", inventoryHandler.ListProducts)
			secured.POST("/me/products", inventoryHandler.CreateProduct)
			secured.PATCH("/me/products/:id", inventoryHandler.UpdateProduct)
			secured.POST("/me/products/:id/movements", inventoryHandler.MoveStock)
			secured.GET("/me/products/:id/movements", inventoryHandler.ListMovements)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
