package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dcharly/atsparse/internal/config"
	"github.com/dcharly/atsparse/internal/core"
	db "github.com/dcharly/atsparse/internal/core/database"
	"github.com/dcharly/atsparse/internal/core/llm"
	objectclient "github.com/dcharly/atsparse/internal/core/object-client"
	"github.com/dcharly/atsparse/internal/core/parser"
	"github.com/dcharly/atsparse/internal/core/uploads"
	"github.com/dcharly/atsparse/internal/services"
)

type App struct {
	DBClient core.DbClient
	LLM      *llm.GeminiLLM
	Embedder *llm.GeminiEmbedder
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider, %w", err)
	}

	embedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	var archive core.ObjectClient
	if cfg.ArchiveEnabled() {
		archive, err = objectclient.NewS3Client(appCtx, cfg)
		if err != nil {
			return nil, err
		}
		log.Println("Upload archive initialized and ready.")
	}

	store, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	var docParser core.DocumentParser
	switch cfg.ExtractorMode {
	case config.ExtractorModeNative:
		docParser = parser.NewNativeParser(llmProvider, core.DefaultTemplate(), cfg.LLMTimeout)
	default:
		docParser = parser.NewExternalParser(cfg.ExtractorCmd, cfg.ExtractorArgs, cfg.ExtractorTimeout)
	}

	parseSvc := services.NewParseService(llmProvider, core.DefaultTemplate(), cfg.LLMTimeout)
	fileSvc := services.NewFileService(store, docParser, dbClient, embedder, archive, cfg.BucketName)
	userSvc := services.NewUserService(dbClient)

	server := NewServer(cfg, dbClient, parseSvc, fileSvc, userSvc)

	return &App{DBClient: dbClient, LLM: llmProvider, Embedder: embedder, Server: server}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.Embedder != nil {
		_ = a.Embedder.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
