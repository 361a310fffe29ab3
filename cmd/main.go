package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coffee-shop-bot/internal/bot"
	"coffee-shop-bot/internal/catalog"
	"coffee-shop-bot/internal/checkout"
	"coffee-shop-bot/internal/config"
	"coffee-shop-bot/internal/database"
	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/messaging"
	"coffee-shop-bot/internal/notify"
	"coffee-shop-bot/internal/operator"
	"coffee-shop-bot/internal/order"
	"coffee-shop-bot/internal/session"
	"coffee-shop-bot/internal/telegram"
)

func main() {
	var (
		mode       = flag.String("mode", "bot", "Service mode (bot, operator-console)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":            *mode,
		"session_backend": cfg.Session.Backend,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "bot":
		if err := runBot(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Bot failed", requestID, err, nil)
			os.Exit(1)
		}
	case "operator-console":
		if err := runOperatorConsole(ctx, cfg, log); err != nil && err != context.Canceled {
			log.Error("service_failed", "Operator console failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runBot wires the core and runs the Telegram transport
func runBot(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	cat, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog_loaded", "Menu catalog loaded", requestID, map[string]interface{}{
		"categories": len(cat.Categories()),
	})

	store, closeStore, err := buildSessionStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to build session store: %w", err)
	}
	defer closeStore()

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("failed to create telegram client: %w", err)
	}
	log.Info("telegram_connected", fmt.Sprintf("Authorized as @%s", api.Self.UserName), requestID, nil)

	notifier, closeNotifier, err := buildNotifier(cfg, api, log)
	if err != nil {
		return fmt.Errorf("failed to build notifier: %w", err)
	}
	defer closeNotifier()

	builder := order.NewBuilder(cat, store)
	checkoutSvc := checkout.NewService(store, notifier, log)
	dispatcher := bot.NewDispatcher(cat, builder, checkoutSvc, log, cfg.Bot.AdminUsername)

	return telegram.New(api, dispatcher, log).Run(ctx)
}

// runOperatorConsole subscribes to the orders fanout and prints notices
func runOperatorConsole(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if !cfg.HasRabbitMQ() {
		return fmt.Errorf("rabbitmq configuration is required for operator-console mode")
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.OperatorQueue, "operator-console")
	return operator.NewSubscriber(consumer, log).Start(ctx)
}

// loadCatalog picks the menu source: database, operator file, or the
// embedded default
func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) (*catalog.Catalog, error) {
	if cfg.HasDatabase() {
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return catalog.LoadDatabase(ctx, db)
	}
	if cfg.Menu.File != "" {
		return catalog.LoadFile(cfg.Menu.File)
	}
	return catalog.Embedded()
}

func buildSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend == config.BackendRedis {
		store := session.NewRedisStore(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		return store, func() { store.Close() }, nil
	}
	return session.NewMemoryStore(), func() {}, nil
}

// buildNotifier composes the operator notification chain: Telegram chat
// when configured, AMQP fanout when configured, log-only otherwise
func buildNotifier(cfg *config.Config, api *tgbotapi.BotAPI, log *logger.Logger) (notify.Notifier, func(), error) {
	var notifiers notify.Multi
	closeFn := func() {}

	if cfg.Bot.OperatorChatID != 0 {
		notifiers = append(notifiers, notify.NewTelegramNotifier(api, cfg.Bot.OperatorChatID, log))
	}

	if cfg.HasRabbitMQ() {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		notifiers = append(notifiers, notify.NewAMQPNotifier(messaging.NewPublisher(conn, log)))
		closeFn = func() { conn.Close() }
	}

	if len(notifiers) == 0 {
		return notify.NewLogNotifier(log), closeFn, nil
	}
	return notifiers, closeFn, nil
}
