package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"moneytracker/internal/domain/user"
	"moneytracker/internal/infrastructure/firebase"
	"moneytracker/internal/infrastructure/postgres"
	"moneytracker/internal/interfaces/scheduler"
	"moneytracker/internal/shared/config"
	"moneytracker/internal/shared/logger"
	"moneytracker/internal/shared/messages"
)

const (
	defaultTestEmail    = "test@moneytracker.com"
	defaultTestPassword = "TestPassword123!"
)

const usage = `Money Tracker Admin CLI - Management commands for the Money Tracker API

Usage:
  admin <command> [options]

Commands:
  migrate            Apply pending database migrations
  create-test-user   Create (or look up) a Firebase test user and its profile row
  generate-token     Mint a Firebase custom token for a user
  remind-now         Run the subscription reminder batch once

Examples:
  admin migrate
  admin create-test-user --email=test@moneytracker.com
  admin generate-token --uid=abc123 --email=test@moneytracker.com
  admin remind-now --workers=4 --timeout=5m
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	log := logger.New(true)

	var err error
	switch command := os.Args[1]; command {
	case "migrate":
		err = runMigrate(log)
	case "create-test-user":
		err = runCreateTestUser(os.Args[2:], log)
	case "generate-token":
		err = runGenerateToken(os.Args[2:])
	case "remind-now":
		err = runRemindNow(os.Args[2:], log)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}

	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func runMigrate(log zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Database.DBName).Msg("migrations applied")
	return nil
}

func runCreateTestUser(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("create-test-user", flag.ExitOnError)
	email := fs.String("email", defaultTestEmail, "Email of the test user")
	password := fs.String("password", defaultTestPassword, "Password of the test user")
	displayName := fs.String("display-name", "Test User", "Display name of the test user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	admin, err := newFirebaseAdmin(ctx, cfg)
	if err != nil {
		return err
	}

	uid, created, err := admin.EnsureUser(ctx, *email, *password, *displayName)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Test user created\n  Email:    %s\n  UID:      %s\n  Password: %s\n", *email, uid, *password)
	} else {
		fmt.Printf("User %s already exists\n  UID: %s\n", *email, uid)
	}

	if cfg.Database.Backend != config.BackendPostgres {
		return nil
	}
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := postgres.NewUserRepository(db).Upsert(ctx, user.UpsertParams{FirebaseUID: uid, Email: *email}); err != nil {
		return fmt.Errorf("failed to store user profile: %w", err)
	}
	log.Info().Str("uid", uid).Msg("user profile stored")
	return nil
}

func runGenerateToken(args []string) error {
	fs := flag.NewFlagSet("generate-token", flag.ExitOnError)
	uid := fs.String("uid", "", "Firebase UID to mint the token for")
	email := fs.String("email", defaultTestEmail, "Email claim carried by the token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *uid == "" {
		fs.Usage()
		return fmt.Errorf("--uid is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	admin, err := newFirebaseAdmin(ctx, cfg)
	if err != nil {
		return err
	}

	token, err := admin.CustomToken(ctx, *uid, *email)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "\nThis is a custom token. Clients exchange it for an ID token; development")
	fmt.Fprintln(os.Stderr, "servers started with AUTH_ALLOW_UNVERIFIED_TOKENS=true accept it directly:")
	fmt.Fprintf(os.Stderr, "  curl -H \"Authorization: Bearer <token>\" http://localhost:%s/api/transactions\n", cfg.Server.Port)
	return nil
}

func runRemindNow(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("remind-now", flag.ExitOnError)
	workers := fs.Int("workers", 4, "Number of concurrent workers")
	timeout := fs.Duration("timeout", 10*time.Minute, "Timeout for the whole batch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	msgs, err := messages.Load(cfg.Messages.Path)
	if err != nil {
		return err
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	var notifier scheduler.Notifier = scheduler.LogNotifier{Logger: log}
	if cfg.Firebase.Configured() {
		app, err := firebase.NewApp(ctx, cfg.Firebase)
		if err != nil {
			return err
		}
		if notifier, err = firebase.NewNotifier(ctx, app); err != nil {
			return err
		}
	}

	reminders := scheduler.NewReminders(postgres.NewSubscriptionRepository(db), notifier, msgs, log)
	jobs, err := reminders.Jobs(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	pool := scheduler.NewWorkerPool(*workers, 0, len(jobs)+1, log)
	pool.Start()
	submitted := pool.SubmitBatch(jobs)
	pool.ShutdownWithTimeout(*timeout)

	log.Info().Int("jobs", submitted).Dur("elapsed", time.Since(start)).Msg("reminder batch completed")
	return nil
}

func newFirebaseAdmin(ctx context.Context, cfg *config.Config) (*firebase.Admin, error) {
	if !cfg.Firebase.Configured() {
		return nil, fmt.Errorf("firebase credentials are not configured")
	}
	app, err := firebase.NewApp(ctx, cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return firebase.NewAdmin(ctx, app)
}
