package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/handlers/http/archive_submissions_handler"
	"doralyzer/internal/app/handlers/http/list_submissions_handler"
	"doralyzer/internal/app/handlers/http/share_link_handler"
	"doralyzer/internal/app/handlers/http/submission_report_handler"
	"doralyzer/internal/app/handlers/telegram/answer_handler"
	"doralyzer/internal/app/handlers/telegram/cancel_handler"
	"doralyzer/internal/app/handlers/telegram/flow"
	"doralyzer/internal/app/handlers/telegram/language_handler"
	"doralyzer/internal/app/handlers/telegram/my_submissions_handler"
	"doralyzer/internal/app/handlers/telegram/new_assessment_handler"
	"doralyzer/internal/app/handlers/telegram/resend_handler"
	"doralyzer/internal/app/handlers/telegram/start_handler"
	"doralyzer/internal/app/handlers/telegram/submit_handler"
	"doralyzer/internal/app/handlers/telegram/text_handler"
	"doralyzer/internal/app/state"
	"doralyzer/internal/delivery"
	"doralyzer/internal/domain/catalog"
	"doralyzer/internal/domain/invites"
	"doralyzer/internal/domain/submissions"
	"doralyzer/internal/domain/submissions/repository"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
	"doralyzer/internal/infra/config"
	"doralyzer/internal/infra/logging"
	"doralyzer/internal/infra/middleware"
	"doralyzer/internal/report"
)

// Services groups the domain services of the application.
type Services struct {
	submissionService *service.SubmissionService
}

// App wires the catalog, the session store, the bot and the HTTP API.
type App struct {
	config  *config.Config
	logger  *zap.Logger
	bot     *telebot.Bot
	db      *pgxpool.Pool
	server  *http.Server
	chats   *state.Chats
	invites *invites.Registry
	archive *repository.ArchiveRepository

	Services
}

// NewApp builds the application from the config file at configPath.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("logging.NewLogger: %w", err)
	}

	cat, err := catalog.Load(cfg.Assessment.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramBot.Token,
		Poller: newPoller(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	bot.Use(middleware.Recover(logger))
	if cfg.Debug {
		bot.Use(middleware.Logger(logger))
	}

	var (
		db          *pgxpool.Pool
		archiveRepo *repository.ArchiveRepository
		archive     service.Archive
	)
	if cfg.DatabaseEnabled() {
		db, err = InitDatabase(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		archiveRepo = repository.NewArchiveRepository(db)
		archive = archiveRepo
	}

	store := submissions.NewStore(cfg.Storage.Type, cfg.Storage.Path)
	renderer := report.NewPDFRenderer(cat)
	deliverer := delivery.NewTelegramDeliverer(bot, cfg.TelegramBot.ReportChatID)

	app := &App{
		config:  cfg,
		logger:  logger,
		bot:     bot,
		db:      db,
		chats:   state.NewChats(i18n.ParseLocale(cfg.Assessment.DefaultLocale)),
		invites: invites.NewRegistry(),
		archive: archiveRepo,
	}
	app.submissionService = service.NewSubmissionService(store, cat, renderer, deliverer, archive, logger)

	app.bootstrapHandlersTelegram()

	return app, nil
}

// bootstrapHandlersTelegram registers the bot handlers.
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Handle("/start", start_handler.NewStartHandler(app.submissionService, app.invites, app.chats).GetHandlerFunc())
	app.bot.Handle(telebot.OnText, text_handler.NewTextHandler(app.submissionService, app.chats).GetHandlerFunc())

	app.bot.Handle(&telebot.InlineButton{Unique: flow.NewAssessmentKey},
		new_assessment_handler.NewNewAssessmentHandler(app.submissionService, app.chats, app.logger).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: flow.AnswerKey},
		answer_handler.NewAnswerHandler(app.submissionService, app.chats).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: flow.SubmitKey},
		submit_handler.NewSubmitHandler(app.submissionService, app.chats, app.logger).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: flow.CancelKey},
		cancel_handler.NewCancelHandler(app.submissionService, app.chats).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: flow.MySubmissionsKey},
		my_submissions_handler.NewMySubmissionsHandler(app.submissionService, app.chats).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: flow.ResendKey},
		resend_handler.NewResendHandler(app.submissionService, app.chats, app.logger).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: flow.SwitchLanguageKey},
		language_handler.NewLanguageHandler(app.chats).GetHandlerFunc())
}

// newPoller selects the update transport for the configured mode.
func newPoller(cfg *config.Config) telebot.Poller {
	if cfg.TelegramBot.Mode == "webhook" {
		return &telebot.Webhook{
			Listen: cfg.TelegramBot.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.TelegramBot.WebhookURL,
			},
		}
	}
	return &telebot.LongPoller{
		Timeout: time.Duration(cfg.TelegramBot.PollIntervalSeconds) * time.Second,
	}
}

// ListenAndServeTelegram starts the bot.
func (app *App) ListenAndServeTelegram() error {
	go app.bot.Start()
	app.logger.Info("telegram bot started", zap.String("mode", app.config.TelegramBot.Mode))
	return nil
}

// ListenAndServeHTTP starts the HTTP API.
func (app *App) ListenAndServeHTTP() error {
	loc := i18n.ParseLocale(app.config.Assessment.DefaultLocale)

	const qrDir = "data/qr"
	if err := os.MkdirAll(qrDir, 0755); err != nil {
		return fmt.Errorf("failed to create qr directory: %w", err)
	}

	mx := http.NewServeMux()
	mx.Handle("GET /submissions", list_submissions_handler.NewListSubmissionsHandler(app.submissionService, loc))
	mx.Handle("GET /submissions/report", submission_report_handler.NewSubmissionReportHandler(app.submissionService, loc))
	mx.Handle("POST /share_link", share_link_handler.NewShareLinkHandler(
		app.config.TelegramBot.Username, app.config.Server.BaseURL, qrDir, app.invites, app.logger))
	mx.Handle("GET /qr/", http.StripPrefix("/qr/", http.FileServer(http.Dir(qrDir))))
	if app.archive != nil {
		archiveHandler := archive_submissions_handler.NewArchiveSubmissionsHandler(app.archive)
		mx.Handle("GET /archive", archiveHandler)
		mx.Handle("DELETE /archive", archiveHandler)
	}

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: mx,
	}
	app.logger.Info("http server starting", zap.String("addr", app.server.Addr))
	return app.server.ListenAndServe()
}

// ListenAndServe starts both servers; it blocks on the HTTP one.
func (app *App) ListenAndServe() error {
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}
	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Close releases the database pool and flushes the logger.
func (app *App) Close() {
	if app.db != nil {
		app.db.Close()
	}
	_ = app.logger.Sync()
}
