package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navalhadigital/barber-saas/internal/config"
	dbpkg "github.com/navalhadigital/barber-saas/internal/db"
	infraRepo "github.com/navalhadigital/barber-saas/internal/infra/repository"
	"github.com/navalhadigital/barber-saas/internal/jobs"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
	"github.com/navalhadigital/barber-saas/internal/routes"
	"github.com/navalhadigital/barber-saas/internal/storage"
	ucBooking "github.com/navalhadigital/barber-saas/internal/usecase/booking"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// ------------------------------
	// Broker de eventos: Redis quando configurado, memória caso contrário.
	// ------------------------------
	var broker pubsub.Broker
	if cfg.RedisAddr != "" {
		rb, err := pubsub.NewRedisBroker(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		broker = rb
	} else {
		broker = pubsub.NewMemoryBroker()
	}
	defer broker.Close()

	// ------------------------------
	// Notificações WhatsApp (opcional)
	// ------------------------------
	var notifier *notify.Dispatcher
	if cfg.WhatsAppGatewayURL != "" {
		notifier = notify.NewDispatcher(
			notify.NewWhatsAppGateway(cfg.WhatsAppGatewayURL, cfg.WhatsAppToken),
		)
	}

	// ------------------------------
	// Upload de logo (opcional)
	// ------------------------------
	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		up, err := storage.NewS3Uploader(
			context.Background(),
			cfg.S3Bucket,
			cfg.S3Region,
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
		)
		if err != nil {
			log.Fatalf("failed to init s3 uploader: %v", err)
		}
		uploader = up
	}

	// ------------------------------
	// Jobs diários
	// ------------------------------
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(db)

	scheduler := jobs.NewScheduler(
		db,
		ucBooking.NewSweepOverdue(bookingRepo),
		subscriptionRepo,
		notifier,
	)
	if err := scheduler.Start(cfg.SweepSchedule, cfg.ReminderSchedule); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, broker, notifier, uploader)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
