package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/echtwell/echt-crm/internal/infra/database"
	"github.com/echtwell/echt-crm/internal/infra/http/handlers"
	"github.com/echtwell/echt-crm/internal/infra/http/middleware"
	"github.com/echtwell/echt-crm/internal/infra/integration/echt"
	"github.com/echtwell/echt-crm/internal/infra/mail"
	"github.com/echtwell/echt-crm/internal/infra/queue"
	"github.com/echtwell/echt-crm/internal/infra/session"
	"github.com/echtwell/echt-crm/internal/infra/worker"
	"github.com/echtwell/echt-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ database connection failed: %v", err)
	}
	defer db.Close()

	sessions, err := session.NewRedisStore(ctx, getEnv("REDIS_ADDR", "localhost:6379"), session.DefaultTTL)
	if err != nil {
		log.Fatalf("❌ redis connection failed: %v", err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		getEnv("RABBITMQ_USER", "guest"),
		getEnv("RABBITMQ_PASS", "guest"),
		getEnv("RABBITMQ_HOST", "localhost"),
		getEnv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("❌ rabbitmq connection failed: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	productRepo := database.NewProductRepository(db)
	orderRepo := database.NewOrderRepository(db)
	appointmentRepo := database.NewAppointmentRepository(db)

	// 2. Gateways and adapters
	messenger := echt.NewClient(os.Getenv("ECHT_API_URL"), os.Getenv("ECHT_API_TOKEN"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort(), os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"), os.Getenv("MAIL_ADMIN_TO"),
	)

	// 3. Background workers
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, messenger, mailSender, os.Getenv("ADMIN_PHONE"))
	go notificationWorker.Start(queue.QueueName)

	reminderWorker := worker.NewReminderWorker(appointmentRepo, producer)
	go reminderWorker.Start(ctx)

	// 4. UseCases
	resolveLeadUC := usecase.NewResolveLeadUseCase(leadRepo)
	createOrderUC := usecase.NewCreateOrderUseCase(orderRepo, leadRepo)
	orderFlowUC := usecase.NewOrderFlowUseCase(sessions, productRepo, createOrderUC, messenger)
	inboundUC := usecase.NewInboundMessageUseCase(resolveLeadUC, orderFlowUC, sessions, messenger, producer)
	bookAppointmentUC := usecase.NewBookAppointmentUseCase(leadRepo, appointmentRepo, messenger)
	intakeOrderUC := usecase.NewIntakeOrderUseCase(resolveLeadUC, productRepo, createOrderUC, messenger)

	// 5. Handlers
	webhookHandler := handlers.NewWebhookHandler(inboundUC)
	appointmentHandler := handlers.NewAppointmentHandler(bookAppointmentUC)
	orderHandler := handlers.NewOrderHandler(intakeOrderUC, orderRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, sessions, messenger)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Post("/api/whatsapp/webhook", webhookHandler.Handle)
	r.Get("/api/whatsapp/webhook", webhookHandler.HandleVerify)
	r.Post("/api/whatsapp/book-appointment", appointmentHandler.Book)
	r.Post("/api/whatsapp/create-order", orderHandler.Create)
	r.Get("/api/orders/{id}", orderHandler.Get)
	r.Post("/api/leads", leadHandler.CaptureLead)
	r.Get("/api/leads", leadHandler.List)
	r.Patch("/api/leads/{id}/status", leadHandler.UpdateStatus)
	r.Get("/api/products", productHandler.List)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + getEnv("PORT", "8080")
	log.Printf("🔥 ECHT CRM server running on %s", port)
	srv := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("❌ server stopped: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mailPort() int {
	if p, err := strconv.Atoi(os.Getenv("MAIL_PORT")); err == nil && p > 0 {
		return p
	}
	return 587
}
