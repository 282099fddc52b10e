package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marketsantafe/leads-api/internal/auth"
	"github.com/marketsantafe/leads-api/internal/config"
	"github.com/marketsantafe/leads-api/internal/infra/database"
	"github.com/marketsantafe/leads-api/internal/infra/http/handlers"
	"github.com/marketsantafe/leads-api/internal/infra/http/middleware"
	"github.com/marketsantafe/leads-api/internal/infra/integration/chatbot"
	"github.com/marketsantafe/leads-api/internal/infra/mail"
	"github.com/marketsantafe/leads-api/internal/infra/queue"
	"github.com/marketsantafe/leads-api/internal/infra/worker"
	"github.com/marketsantafe/leads-api/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	auth.SetSecret(cfg.Auth.JWTSecret)

	db, err := database.NewDBConnection(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositorios
	leadRepo := database.NewLeadRepository(db)
	tenantRepo := database.NewTenantRepository(db)
	notificationRepo := database.NewNotificationRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	botClient := chatbot.NewClient(cfg.Chatbot.BaseURL, time.Duration(cfg.Chatbot.TimeoutSeconds)*time.Second)

	// 3. Workers
	alertWorker := queue.NewWorker(rabbitMQ.Ch, tenantRepo, mailSender)
	go alertWorker.Start(queue.QueueName)

	cleanup := worker.NewDraftCleanupWorker(db)
	go cleanup.Start(context.Background())

	// 4. UseCases
	createUC := usecase.NewCreateLeadUseCase(leadRepo, tenantRepo)
	autosaveUC := usecase.NewAutosaveStepUseCase(leadRepo)
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, producer)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo)
	listUC := usecase.NewListLeadsUseCase(leadRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createUC, autosaveUC, submitUC, updateUC, leadRepo)
	inboxHandler := handlers.NewInboxHandler(listUC)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	wizardHandler := handlers.NewWizardHandler()
	chatbotHandler := handlers.NewChatbotHandler(botClient)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.Chatbot.BaseURL)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://marketsantafe.com.ar", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Puntas públicas del wizard y el bot
	r.Post("/leads", leadHandler.CreateLead)
	r.Patch("/leads/{id}/step", leadHandler.AutosaveStep)
	r.Post("/leads/{id}/submit", leadHandler.SubmitLead)
	r.Get("/flows/{flowType}/steps", wizardHandler.FlowSteps)
	r.Post("/chatbot/message", chatbotHandler.Handle)

	// Panel (requiere Bearer token)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/leads/{id}", leadHandler.GetLead)
		r.Patch("/leads/{id}", leadHandler.UpdateLead)
		r.Get("/tenant/{tenantId}/leads", inboxHandler.TenantLeads)
		r.Get("/tenant/{tenantId}/notifications", notificationHandler.ListByTenant)
		r.Patch("/notifications/{id}/read", notificationHandler.MarkRead)
		r.Get("/admin/leads", inboxHandler.AdminLeads)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Printf("🔥 MarketSantaFe leads API escuchando en %s", cfg.Server.Addr)
	http.ListenAndServe(cfg.Server.Addr, r)
}
