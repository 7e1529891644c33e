package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/audit"
	"github.com/cortedigital/salon-api/internal/cache"
	"github.com/cortedigital/salon-api/internal/chat"
	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/dashboard"
	"github.com/cortedigital/salon-api/internal/handlers"
	infraRepo "github.com/cortedigital/salon-api/internal/infra/repository"
	"github.com/cortedigital/salon-api/internal/messaging"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/notify"
	"github.com/cortedigital/salon-api/internal/observability"
	"github.com/cortedigital/salon-api/internal/payments"
	"github.com/cortedigital/salon-api/internal/realtime"
	"github.com/cortedigital/salon-api/internal/reviews"
	"github.com/cortedigital/salon-api/internal/storage"
	ucAppointment "github.com/cortedigital/salon-api/internal/usecase/appointment"
)

// RegisterRoutes monta toda a árvore de rotas. Devolve o use case de
// auto-conclusão para o ticker de fundo do main.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	metrics *observability.Metrics,
	hub *realtime.Hub,
	store *cache.Cache,
	publisher *messaging.RabbitPublisher,
) *ucAppointment.AutoComplete {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware(metrics))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	chatService := chat.NewService(db)
	reviewService := reviews.NewService(db)
	notifyService := notify.NewService(db, hub, publisher, log)
	dashboardService := dashboard.NewService(db, store)
	avatarStore := storage.NewAvatarStore(cfg)

	paymentGateway, err := payments.NewGateway(cfg.MercadoPagoToken, log)
	if err != nil {
		log.Warn("mercadopago disabled", zap.Error(err))
		paymentGateway = nil
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createBookingUC := ucAppointment.NewCreateBooking(
		appointmentRepo,
		auditDispatcher,
		notifyService,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		notifyService,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		notifyService,
	)

	autoCompleteUC := ucAppointment.NewAutoComplete(
		appointmentRepo,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	professionalHandler := handlers.NewProfessionalHandler(db, availabilityUC)
	serviceHandler := handlers.NewServiceHandler(db)
	barberPriceHandler := handlers.NewBarberPriceHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createBookingUC,
		cancelAppointmentUC,
		updateStatusUC,
		autoCompleteUC,
		dashboardService,
	)

	inventoryHandler := handlers.NewInventoryHandler(db, notifyService)
	dashboardHandler := handlers.NewDashboardHandler(db, dashboardService)
	chatHandler := handlers.NewChatHandler(chatService, hub)
	notificationHandler := handlers.NewNotificationHandler(db, hub, notifyService)
	avatarHandler := handlers.NewAvatarHandler(db, avatarStore)
	paymentHandler := handlers.NewPaymentHandler(db, paymentGateway)
	reviewHandler := handlers.NewReviewHandler(reviewService, notifyService)
	wsHandler := handlers.NewWSHandler(cfg, hub, chatService, notifyService, metrics, log)

	// ======================================================
	// 🌍 PÁGINAS (SPA) + ESTÁTICOS
	// ======================================================
	index := filepath.Join(cfg.StaticDir, "index.html")
	servePage := func(c *gin.Context) { c.File(index) }

	r.Static("/static", cfg.StaticDir)
	for _, page := range []string{"/", "/login", "/register", "/cliente", "/barbeiro"} {
		r.GET(page, servePage)
	}

	// ======================================================
	// 📈 OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🔌 WEBSOCKET
	// ======================================================
	r.GET("/ws", wsHandler.Serve)

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
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// 🌐 CATÁLOGO PÚBLICO
		// ------------------------------
		api.GET("/professionals", professionalHandler.List)
		api.GET("/professionals/:id", professionalHandler.Get)
		api.GET("/professionals/:id/availability", professionalHandler.Availability)
		api.GET("/barbers", professionalHandler.ListBarbers)
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/barber-prices", barberPriceHandler.List)
		api.GET("/reviews/barbeiro/:id", reviewHandler.ForBarber)
		api.GET("/reviews/top-rated", reviewHandler.TopRated)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)
			secured.POST("/me/avatar", avatarHandler.Upload)

			// APPOINTMENTS
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.GET("/appointments/for_barber/:id", appointmentHandler.ListForBarber)
			secured.POST("/appointments/:id/payment", paymentHandler.CreateCheckout)

			// DASHBOARD
			secured.GET("/user/dashboard", dashboardHandler.Get)

			// CHAT
			secured.GET("/chat/conversations", chatHandler.Conversations)
			secured.GET("/chat/messages/:id", chatHandler.Messages)
			secured.GET("/chat/conversation/:userId", chatHandler.Conversation)
			secured.POST("/chat/mark-read/:id", chatHandler.MarkRead)
			secured.GET("/chat/available-users", chatHandler.AvailableUsers)

			// REVIEWS
			secured.POST("/reviews", reviewHandler.Create)
			secured.PUT("/reviews/:id", reviewHandler.Update)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)
			secured.GET("/reviews/my-reviews", reviewHandler.Mine)
			secured.GET("/reviews/pending", reviewHandler.Pending)

			// NOTIFICATIONS
			secured.GET("/notifications", notificationHandler.List)
			secured.GET("/notifications/unread", notificationHandler.Unread)
			secured.POST("/notifications/:id/read", notificationHandler.MarkRead)
			secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)
			secured.DELETE("/notifications/:id", notificationHandler.Delete)

			// ------------------------------
			// 💈 EXCLUSIVO DO PROFISSIONAL
			// ------------------------------
			pro := secured.Group("/")
			pro.Use(middleware.RequireProfessional())
			{
				pro.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
				pro.POST("/appointments/auto-complete", appointmentHandler.AutoComplete)
				pro.PUT("/barber-prices", barberPriceHandler.Upsert)

				pro.GET("/inventory", inventoryHandler.List)
				pro.POST("/inventory", inventoryHandler.Create)
				pro.PUT("/inventory/:id", inventoryHandler.Update)
				pro.DELETE("/inventory/:id", inventoryHandler.Delete)
			}
		}
	}

	return autoCompleteUC
}
