package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lablink/config"
	"lablink/cron"
	"lablink/database"
	bidRepoPkg "lablink/database/repository/bid"
	invoiceRepoPkg "lablink/database/repository/invoice"
	labRepoPkg "lablink/database/repository/lab"
	orderRepoPkg "lablink/database/repository/order"
	userRepoPkg "lablink/database/repository/user"
	"lablink/handlers"
	"lablink/routes"
	"lablink/services/bid"
	"lablink/services/invoice"
	"lablink/services/lab"
	"lablink/services/notification"
	"lablink/services/order"
	"lablink/services/ranking"
	"lablink/services/user"
	"lablink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

// indexedRepo is implemented by every Mongo repository that maintains indexes.
type indexedRepo interface {
	EnsureIndexes() error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	labRepository := labRepoPkg.NewMongoLabRepo()
	orderRepository := orderRepoPkg.NewMongoOrderRepo()
	bidRepository := bidRepoPkg.NewMongoBidRepo()
	invoiceRepository := invoiceRepoPkg.NewMongoInvoiceRepo()
	userRepository := userRepoPkg.NewMongoUserRepo()

	for _, repo := range []interface{}{labRepository, orderRepository, bidRepository, invoiceRepository, userRepository} {
		if ir, ok := repo.(indexedRepo); ok {
			if err := ir.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: failed to create indexes: %v", err)
			}
		}
	}

	// background task queue.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer taskClient.Close()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepository, labRepository, taskClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	rankingService := &ranking.DefaultRankingService{
		LabRepo:     labRepository,
		OrderRepo:   orderRepository,
		CacheClient: utils.GetCacheClient(),
	}
	invoiceService := &invoice.DefaultInvoiceService{
		InvoiceRepo: invoiceRepository,
		LabRepo:     labRepository,
		Notifier:    notificationService,
	}
	orderService := &order.DefaultOrderService{
		OrderRepo: orderRepository,
		LabRepo:   labRepository,
		Ranking:   rankingService,
		Invoices:  invoiceService,
		Notifier:  notificationService,
		Storage:   storageService,
	}
	bidService := &bid.DefaultBidService{
		BidRepo:   bidRepository,
		OrderRepo: orderRepository,
		LabRepo:   labRepository,
		Notifier:  notificationService,
	}
	labService := &lab.DefaultLabService{
		LabRepo:   labRepository,
		OrderRepo: orderRepository,
	}
	userService := &user.DefaultUserService{
		UserRepo: userRepository,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepository,
		LabRepo:  labRepository,

		Ranking:  &handlers.RankingHandler{Ranking: rankingService},
		Orders:   &handlers.OrderHandler{Orders: orderService},
		Bids:     &handlers.BidHandler{Bids: bidService},
		Invoices: &handlers.InvoiceHandler{Invoices: invoiceService},
		Labs:     &handlers.LabHandler{Labs: labService},
		Users:    &handlers.UserHandler{Users: userService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background push worker and health monitor.
	cron.InitNotificationWorker(notificationService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
