package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"GardenBot/internal/config"
	"GardenBot/internal/domain"
	"GardenBot/internal/formatter"
	"GardenBot/internal/infrastructure/feed"
	"GardenBot/internal/infrastructure/fetch"
	"GardenBot/internal/infrastructure/image"
	"GardenBot/internal/infrastructure/llm"
	"GardenBot/internal/infrastructure/parser"
	"GardenBot/internal/infrastructure/storage"
	"GardenBot/internal/infrastructure/telegram"
	"GardenBot/internal/logging"
	"GardenBot/internal/ports"
	"GardenBot/internal/scanner"
	"GardenBot/internal/summarizer"
	"GardenBot/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg    config.Config
	deps   usecase.PipelineDeps
	store  ports.PostStore
	db     *sql.DB
	logger *slog.Logger
}

// New builds every adapter from cfg. Postgres connections are opened here,
// so the caller must Close the application.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	component := func(name string) *slog.Logger {
		return baseLogger.With("component", name)
	}

	a := &Application{cfg: cfg, logger: component("app")}
	if err := a.openStore(ctx, component("store")); err != nil {
		return nil, err
	}

	fetcher := fetch.NewClient(nil, cfg.Fetch.UserAgent, cfg.Fetch.Timeout())
	registry := scanner.NewRegistry(parser.DefaultSites()...)

	source := parser.NewStrategySource(registry, fetcher, cfg.Sources, parser.SourceOptions{
		Feeds:       feed.NewSource(fetcher, component("feed")),
		RequireDate: cfg.Pipeline.RecencyDays > 0,
		Logger:      component("source"),
	})

	var chat ports.ChatClient
	if cfg.ChatGPT.Enabled() {
		chat = llm.NewChatGPTClient(cfg.ChatGPT, nil)
	}

	now := time.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))

	a.deps = usecase.PipelineDeps{
		Source:     source,
		Extractor:  parser.NewExtractor(registry, fetcher, component("extractor")),
		Images:     image.NewResolver(fetcher, component("image")),
		Summarizer: summarizer.New(cfg.Summarizer, chat, component("summarizer")),
		Formatter: formatter.New(formatter.Options{
			Mode:    cfg.Telegram.ParseMode,
			Style:   cfg.Pipeline.Style,
			Text:    formatter.Limits{Max: cfg.Pipeline.MaxMessageLength, CutAt: cfg.Pipeline.TruncateAt},
			Caption: formatter.Limits{Max: cfg.Pipeline.CaptionLength, CutAt: cfg.Pipeline.CaptionTruncate},
			Rand:    rng,
		}),
		Publisher: telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.APIURL, nil),
		Store:     a.store,
		Rand:      rng,
		Clock:     func() time.Time { return time.Now().In(cfg.Location()) },
		Logger:    component("pipeline"),
	}
	return a, nil
}

func (a *Application) openStore(ctx context.Context, log *slog.Logger) error {
	switch a.cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := storage.OpenPostgres(ctx, a.cfg.Storage.DSN)
		if err != nil {
			return err
		}
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return err
		}
		a.db = db
		a.store = repo
	default:
		a.store = storage.NewFileStore(a.cfg.Storage.Path, log)
	}
	return nil
}

// Close releases the database pool, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *Application) pipeline(dryRun bool) *usecase.Pipeline {
	return usecase.NewPipeline(a.deps, usecase.PipelineOptions{
		Channel:       a.cfg.Telegram.ChannelID,
		RecencyWindow: a.cfg.Pipeline.RecencyWindow(),
		TipEvery:      a.cfg.Pipeline.TipEvery,
		PhotoPosts:    a.cfg.Pipeline.PhotoPosts,
		DryRun:        dryRun,
	})
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context, dryRun bool) (usecase.Result, error) {
	return a.pipeline(dryRun).Run(ctx)
}

// Discover lists the candidates a run would choose from.
func (a *Application) Discover(ctx context.Context) ([]domain.Candidate, error) {
	return a.pipeline(true).Preview(ctx)
}

// MigrateStore reads the JSON file at path in any known shape and writes it
// to the configured store in the current shape.
func (a *Application) MigrateStore(ctx context.Context, path string) (domain.PostLog, storage.Shape, error) {
	if path == "" {
		path = a.cfg.Storage.Path
	}
	postLog, shape, err := storage.NewFileStore(path, a.logger).LoadShape(ctx)
	if err != nil {
		return postLog, shape, err
	}
	if err := a.store.Save(ctx, postLog); err != nil {
		return postLog, shape, fmt.Errorf("write migrated post log: %w", err)
	}
	a.logger.Info("post log migrated", "from", path, "shape", shape, "backend", a.cfg.Storage.Backend,
		"posts_count", postLog.PostsCount, "published", len(postLog.PublishedLinks))
	return postLog, shape, nil
}
