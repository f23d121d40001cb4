// Package bootstrap wires configuration into the pipeline services shared by
// the API server and the operator CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/external/mail"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/meeting-notes/internal/usecase/ai"
	"github.com/johnquangdev/meeting-notes/internal/usecase/notify"
	"github.com/johnquangdev/meeting-notes/internal/usecase/reconcile"
	pkgai "github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// App holds the wired services and the connections they own
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   repositories.RecordStore
	Service aiuse.Service
	Sweeper *reconcile.Sweeper
	// Archive is nil unless ARCHIVE_ENABLED is set
	Archive *storage.MinIOClient
	// DB is set for the postgres backend only
	DB *gorm.DB

	closers []func(context.Context) error
}

// NewLogger builds the process logger for the configured environment
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// New connects every configured backend and builds the services.
// On error, connections opened so far are closed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
		}
	}()

	if app.Store, err = app.openStore(ctx); err != nil {
		return nil, err
	}
	logger.Info("📦 Record store ready", zap.String("backend", app.Store.Backend()))

	model, err := newLanguageModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("🤖 Language model ready", zap.String("model", model.Name()))

	mailer := mail.NewMailer(cfg.Mail.ResendAPIKey, logger)
	if cfg.Mail.BaseURL != "" {
		if mailer, err = mailer.WithBaseURL(cfg.Mail.BaseURL); err != nil {
			return nil, err
		}
	}
	dispatcher := notify.NewDispatcher(
		mailer,
		cfg.Mail.From,
		cfg.Mail.Recipient,
		notify.PolicyFromConfig(cfg.Mail),
		logger,
	)

	deps := aiuse.Deps{
		Model:  model,
		Store:  app.Store,
		Sender: dispatcher,
	}

	if cfg.Archive.Enabled {
		if app.Archive, err = storage.NewMinIOClient(ctx, cfg.Archive); err != nil {
			return nil, err
		}
		deps.Archive = app.Archive
		logger.Info("🗄️ Raw-output archive enabled", zap.String("bucket", cfg.Archive.BucketName))
	}

	if transcriber := pkgai.NewAssemblyAIClient(cfg.Transcription); transcriber != nil {
		deps.Transcriber = transcriber
	}

	app.Service = aiuse.NewAIService(deps, aiuse.Timeouts{
		Model:         cfg.Model.Timeout,
		Store:         cfg.Store.Timeout,
		Transcription: cfg.Transcription.Timeout,
	}, cfg.DefaultMeetingName, logger)

	lease, err := app.openLease(ctx)
	if err != nil {
		return nil, err
	}
	app.Sweeper = reconcile.NewSweeper(app.Store, dispatcher, lease, reconcile.Options{
		PageSize:     cfg.Sweep.PageSize,
		StoreTimeout: cfg.Store.Timeout,
		LeaseTTL:     cfg.Sweep.LeaseTTL,
		Timeout:      cfg.Sweep.Timeout,
	}, logger)

	return app, nil
}

// Close releases every connection in reverse order of opening
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func (a *App) openStore(ctx context.Context) (repositories.RecordStore, error) {
	cfg := a.Config
	switch cfg.Store.Backend {
	case config.StoreBackendNotion:
		return repository.NewNotionRecordRepository(cfg.Store.NotionAPIKey, cfg.Store.NotionDatabaseID), nil

	case config.StoreBackendPostgres:
		db, err := database.NewPostgresDB(cfg, a.Logger)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.onClose(func(context.Context) error { return database.CloseDB(db) })

		// Production deployments manage the schema with `notesctl migrate`.
		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				return nil, fmt.Errorf("DB_AUTO_MIGRATE must be disabled in production; run notesctl migrate up")
			}
			if err := database.AutoMigrate(db, a.Logger); err != nil {
				return nil, err
			}
		}
		return repository.NewPostgresRecordRepository(db, cfg.Store.RecordURLPrefix), nil

	case config.StoreBackendMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, a.Logger)
		if err != nil {
			return nil, err
		}
		a.onClose(func(ctx context.Context) error { return database.CloseMongo(ctx, client) })

		repo := repository.NewMongoRecordRepository(
			client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
			cfg.Store.RecordURLPrefix,
		)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		return repo, nil

	case config.StoreBackendMemory:
		a.Logger.Warn("⚠️ Using the in-memory record store; records are lost on restart")
		return repository.NewMemoryRecordRepository(cfg.Store.RecordURLPrefix), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (a *App) openLease(ctx context.Context) (repositories.Lease, error) {
	cfg := a.Config
	if !cfg.Sweep.LeaseEnabled {
		return nil, nil
	}

	if cfg.GetRedisAddr() == "" {
		store := cache.NewMemoryStore(cache.DefaultCleanupInterval)
		a.onClose(func(context.Context) error { store.Close(); return nil })
		a.Logger.Info("🔒 Sweep lease held in process memory")
		return cache.NewMemoryLease(store), nil
	}

	client, err := cache.NewRedisClient(ctx, cfg, a.Logger)
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) error { return client.Close() })
	a.Logger.Info("🔒 Sweep lease held in Redis")
	return cache.NewRedisLease(client), nil
}

func newLanguageModel(ctx context.Context, cfg *config.Config) (repositories.LanguageModel, error) {
	switch cfg.Model.Provider {
	case config.ModelProviderGemini:
		return pkgai.NewGeminiClient(ctx, cfg.Model)
	case config.ModelProviderOpenAI:
		return pkgai.NewChatClient(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}
