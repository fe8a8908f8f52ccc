package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"challenge-tracker/bot"
	"challenge-tracker/handlers"
	"challenge-tracker/middleware"
	"challenge-tracker/services"
	"challenge-tracker/storage"
	"challenge-tracker/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// logNotifier stands in when no chat front-end is configured.
type logNotifier struct{}

func (logNotifier) SendReminder(ctx context.Context, participantID string) error {
	log.Printf("[Reminder] %s is at risk of breaking their streak", participantID)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID, X-User-Name",
	}))

	ledger, err := openLedger()
	if err != nil {
		log.Fatal("failed to open ledger: ", err)
	}

	submissionService := services.NewSubmissionService(ledger)
	reportService := services.NewReportService(ledger)
	reminderService := services.NewReminderService(ledger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Chat front-end is optional; without a token the service is API-only and
	// reminders go to the log.
	var notifier workers.Notifier = logNotifier{}
	botCfg, err := bot.LoadConfig()
	if err != nil {
		log.Fatal("failed to load bot config: ", err)
	}
	if botCfg.Token != "" {
		chatBot, err := bot.New(botCfg, submissionService, reportService)
		if err != nil {
			log.Fatal("failed to create bot: ", err)
		}
		if err := chatBot.Open(); err != nil {
			log.Fatal("failed to connect bot: ", err)
		}
		defer chatBot.Close()
		notifier = chatBot
	} else {
		log.Println("⚠️  BOT token not set — running without chat front-end")
	}

	reminderWorker := workers.NewReminderWorker(reminderService, notifier, reminderHour(), 0)
	if err := reminderWorker.Start(ctx); err != nil {
		log.Fatal("failed to start reminder worker: ", err)
	}

	handlers.SetupSubmissionRoutes(app, submissionService)
	handlers.SetupReportRoutes(app, reportService, reminderService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Daily reminder worker registered")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

// openLedger picks the storage backend: Postgres in production, in-memory for
// local runs (LEDGER=memory).
func openLedger() (storage.Ledger, error) {
	if os.Getenv("LEDGER") == "memory" {
		log.Println("⚠️  Using in-memory ledger — records are lost on restart")
		return storage.NewInMemoryLedger(), nil
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	ledger := storage.NewGormLedger(db)
	if err := ledger.Migrate(); err != nil {
		return nil, err
	}
	return ledger, nil
}

func reminderHour() int {
	raw := os.Getenv("REMINDER_HOUR")
	if raw == "" {
		return 9
	}
	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 23 {
		log.Printf("⚠️  Invalid REMINDER_HOUR %q, using 9", raw)
		return 9
	}
	return hour
}
