package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"moneytracker/internal/domain/budget"
	"moneytracker/internal/domain/category"
	"moneytracker/internal/domain/savings"
	"moneytracker/internal/domain/subscription"
	"moneytracker/internal/domain/transaction"
	"moneytracker/internal/domain/user"
	"moneytracker/internal/infrastructure/firebase"
	"moneytracker/internal/infrastructure/memory"
	"moneytracker/internal/infrastructure/postgres"
	"moneytracker/internal/infrastructure/redis"
	httphandlers "moneytracker/internal/interfaces/http"
	"moneytracker/internal/interfaces/scheduler"
	"moneytracker/internal/shared/auth"
	"moneytracker/internal/shared/config"
	"moneytracker/internal/shared/messages"
	"moneytracker/internal/shared/middleware"
)

type transactionStore interface {
	transaction.Repository
	budget.SpendCalculator
}

type subscriptionStore interface {
	subscription.Repository
	scheduler.SubscriptionStore
}

// repositories is the storage backend selected by DATA_BACKEND.
type repositories struct {
	transactions  transactionStore
	budgets       budget.Repository
	categories    category.Repository
	savings       savings.Repository
	subscriptions subscriptionStore
	users         user.Repository
}

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB    *postgres.DB
	Redis *goredis.Client

	Gate        *auth.Gate
	RateLimiter middleware.Limiter
	memLimiter  *middleware.MemoryLimiter

	TransactionHandler  *httphandlers.TransactionHandler
	BudgetHandler       *httphandlers.BudgetHandler
	CategoryHandler     *httphandlers.CategoryHandler
	SavingsHandler      *httphandlers.SavingsHandler
	SubscriptionHandler *httphandlers.SubscriptionHandler
	UserHandler         *httphandlers.UserHandler
	HealthHandler       *httphandlers.HealthHandler

	Reminders *scheduler.Reminders
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}
	checks := make(map[string]httphandlers.Check)

	repos, err := deps.openBackend(cfg, log)
	if err != nil {
		return nil, err
	}
	if deps.DB != nil {
		checks["database"] = deps.DB.Ping
	}

	var verifier auth.TokenVerifier
	var notifier scheduler.Notifier = scheduler.LogNotifier{Logger: log}
	if cfg.Firebase.Configured() {
		app, err := firebase.NewApp(ctx, cfg.Firebase)
		if err != nil {
			deps.Close()
			return nil, err
		}
		authVerifier, err := firebase.NewAuthVerifier(ctx, app)
		if err != nil {
			deps.Close()
			return nil, err
		}
		verifier = authVerifier
		fcm, err := firebase.NewNotifier(ctx, app)
		if err != nil {
			deps.Close()
			return nil, err
		}
		notifier = fcm
		log.Info().Msg("firebase initialized")
	} else {
		log.Warn().Msg("firebase credentials not configured, token verification unavailable")
	}

	deps.Gate = auth.NewGate(auth.GateConfig{
		Verifier:              verifier,
		Development:           !cfg.IsProduction(),
		AllowUnverifiedTokens: cfg.Auth.AllowUnverifiedTokens,
	})

	if cfg.RateLimit.Enabled {
		deps.RateLimiter = deps.newRateLimiter(ctx, cfg, log)
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }
	}

	msgs, err := messages.Load(cfg.Messages.Path)
	if err != nil {
		deps.Close()
		return nil, err
	}

	resolver := category.NewResolver(repos.categories)
	aggregator := budget.NewAggregator(repos.transactions, resolver)
	showDetails := !cfg.IsProduction()

	deps.TransactionHandler = httphandlers.NewTransactionHandler(transaction.NewService(repos.transactions, resolver), showDetails)
	deps.BudgetHandler = httphandlers.NewBudgetHandler(budget.NewService(repos.budgets, resolver, aggregator), showDetails)
	deps.CategoryHandler = httphandlers.NewCategoryHandler(resolver, showDetails)
	deps.SavingsHandler = httphandlers.NewSavingsHandler(savings.NewService(repos.savings), showDetails)
	deps.SubscriptionHandler = httphandlers.NewSubscriptionHandler(subscription.NewService(repos.subscriptions), showDetails)
	deps.UserHandler = httphandlers.NewUserHandler(user.NewService(repos.users), showDetails)
	deps.HealthHandler = httphandlers.NewHealthHandler(cfg.Server.Version, checks)

	deps.Reminders = scheduler.NewReminders(repos.subscriptions, notifier, msgs, log)

	return deps, nil
}

func (d *Dependencies) openBackend(cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Database.Backend == config.BackendMemory {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		store := memory.New()
		return &repositories{
			transactions:  store.Transactions(),
			budgets:       store.Budgets(),
			categories:    store.Categories(),
			savings:       store.Savings(),
			subscriptions: store.Subscriptions(),
			users:         store.Users(),
		}, nil
	}

	connStr := cfg.Database.ConnectionString()
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(connStr); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info().Msg("database migrations applied")
	}

	db, err := postgres.New(connStr)
	if err != nil {
		return nil, err
	}
	d.DB = db
	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("connected to database")

	return &repositories{
		transactions:  postgres.NewTransactionRepository(db),
		budgets:       postgres.NewBudgetRepository(db),
		categories:    postgres.NewCategoryRepository(db),
		savings:       postgres.NewSavingsRepository(db),
		subscriptions: postgres.NewSubscriptionRepository(db),
		users:         postgres.NewUserRepository(db),
	}, nil
}

// newRateLimiter prefers Redis so limits hold across instances, falling back
// to a per process limiter.
func (d *Dependencies) newRateLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger) middleware.Limiter {
	if cfg.Redis.URL != "" {
		client, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err == nil {
			d.Redis = client
			log.Info().Msg("rate limiting backed by redis")
			return redis.NewLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
		log.Warn().Err(err).Msg("redis unavailable, using in-memory rate limiting")
	}

	d.memLimiter = middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	return d.memLimiter
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.memLimiter != nil {
		d.memLimiter.Stop()
	}
	if d.Redis != nil {
		d.Redis.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
