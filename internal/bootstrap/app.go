package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"pdfhelper-backend/internal/ai"
	"pdfhelper-backend/internal/answercache"
	"pdfhelper-backend/internal/conversations"
	"pdfhelper-backend/internal/documents"
	"pdfhelper-backend/internal/ingest"
	"pdfhelper-backend/internal/llm"
	"pdfhelper-backend/internal/llm/gemini"
	"pdfhelper-backend/internal/notes"
	"pdfhelper-backend/internal/shared/config"
	"pdfhelper-backend/internal/shared/server"
	"pdfhelper-backend/internal/shared/storage/mongodb"
	"pdfhelper-backend/internal/shared/storage/object"
	localstore "pdfhelper-backend/internal/shared/storage/object/local"
	"pdfhelper-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine

	Mongo *mongo.Database
	Store object.Store
	Cache answercache.Cache
	LLM   llm.Client

	UsersRepo users.Repo
	DocsRepo  documents.Repo
	ConvsRepo conversations.Repo
	NotesRepo notes.Repo

	UsersService *users.Service
	DocsService  *documents.Service
	NotesService *notes.Service
	AIService    *ai.Service
}

// Build prepares shared dependencies and the router. Missing MongoDB or
// Redis configuration falls back to in-memory implementations so the
// server stays runnable in dev.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	app := &App{Config: cfg}

	app.Store = localstore.New(cfg.LocalStoreDir)

	if cfg.MongoURI != "" {
		db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Printf("failed to connect mongodb, falling back to memory: %v", err)
		} else {
			app.Mongo = db
		}
	}

	if app.Mongo != nil {
		app.UsersRepo = users.NewMongoRepo(app.Mongo)
		app.DocsRepo = documents.NewMongoRepo(app.Mongo)
		app.ConvsRepo = conversations.NewMongoRepo(app.Mongo)
		app.NotesRepo = notes.NewMongoRepo(app.Mongo)
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocsRepo = documents.NewMemoryRepo()
		app.ConvsRepo = conversations.NewMemoryRepo()
		app.NotesRepo = notes.NewMemoryRepo()
	}

	if cfg.RedisAddr != "" {
		cache, err := answercache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("failed to connect redis, falling back to memory cache: %v", err)
			app.Cache = answercache.NewMemory(time.Now)
		} else {
			app.Cache = cache
		}
	} else {
		app.Cache = answercache.NewMemory(time.Now)
	}

	llmClient, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	app.LLM = llmClient

	captioner, err := ingest.NewOllamaCaptioner(cfg.OllamaHost, cfg.CaptionModel)
	if err != nil {
		return nil, err
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.DocsService = &documents.Service{
		Store:          app.Store,
		Repo:           app.DocsRepo,
		Rasterizer:     &ingest.ExecRasterizer{Command: cfg.ConverterCmd},
		Captioner:      captioner,
		Cache:          app.Cache,
		CaptionWorkers: cfg.CaptionWorkers,
	}
	app.NotesService = notes.NewService(app.NotesRepo)
	app.AIService = &ai.Service{
		Docs:      app.DocsRepo,
		Convs:     app.ConvsRepo,
		Notes:     app.NotesService,
		Cache:     app.Cache,
		LLM:       app.LLM,
		AnswerTTL: time.Duration(cfg.AnswerTTLSecs) * time.Second,
	}

	app.Router = server.NewRouter(cfg, server.Deps{
		Users:     users.NewHandler(app.UsersService),
		Documents: documents.NewHandler(app.DocsService),
		AI:        ai.NewHandler(app.AIService),
		Notes:     notes.NewHandler(app.NotesService),
	})

	return app, nil
}

// Close releases external connections.
func (a *App) Close(ctx context.Context) {
	if a.Mongo != nil {
		if err := mongodb.Disconnect(ctx, a.Mongo); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}
	if cache, ok := a.Cache.(*answercache.RedisCache); ok {
		if err := cache.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
}
