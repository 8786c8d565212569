package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/opensplit/opensplit/docs"
	"github.com/opensplit/opensplit/internal/audit"
	"github.com/opensplit/opensplit/internal/config"
	"github.com/opensplit/opensplit/internal/database"
	"github.com/opensplit/opensplit/internal/events"
	"github.com/opensplit/opensplit/internal/expense"
	"github.com/opensplit/opensplit/internal/expense/split"
	"github.com/opensplit/opensplit/internal/group"
	"github.com/opensplit/opensplit/internal/ledger"
	"github.com/opensplit/opensplit/internal/obs"
	"github.com/opensplit/opensplit/internal/settlement"
	"github.com/opensplit/opensplit/internal/user"
	mw "github.com/opensplit/opensplit/pkg/middleware"
)

// @title           OpenSplit API
// @version         1.0
// @description     Shared-expense ledger: groups, split expenses, balances, and settlements.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Prometheus collectors
	obs.Init()

	// Audit fan-out over AMQP is optional; events stay in Postgres
	// either way.
	var publisher audit.Publisher
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Println("Connected to AMQP broker successfully")
	}

	// Split Strategy Factory (Factory Pattern)
	splitFactory := split.NewFactory()

	// Audit feature
	auditRepo := audit.NewRepository(db)
	auditService := audit.NewService(auditRepo, publisher)
	auditHandler := audit.NewHandler(auditService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(db, expenseRepo, groupRepo, splitFactory, auditService)
	expenseHandler := expense.NewHandler(expenseService)

	// Ledger feature (balances and transfer suggestions)
	ledgerService := ledger.NewService(ledger.NewRepository(db))
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(db, settlementRepo, groupRepo, auditService)
	settlementHandler := settlement.NewHandler(settlementService)

	limiter := mw.NewRateLimiter(20, 40)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(obs.Instrument)
	r.Use(limiter.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", obs.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", ledgerHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/audit", auditHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
