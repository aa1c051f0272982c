package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"aarogya-ai/internal/ai"
	"aarogya-ai/internal/config"
	"aarogya-ai/internal/model"
	mysqlClient "aarogya-ai/internal/platform/mysql"
	rabbitmqClient "aarogya-ai/internal/platform/rabbitmq"
	redisClient "aarogya-ai/internal/platform/redis"
	"aarogya-ai/internal/rag"
	"aarogya-ai/internal/repository"
	"aarogya-ai/internal/vectorstore"
	"aarogya-ai/internal/vectorstore/qdrant"
	"aarogya-ai/internal/worker"
)

type App struct {
	Config      *config.Config
	Logger      zerolog.Logger
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	VectorStore vectorstore.Store
	Embedder    *ai.EmbeddingClient
	ChatLLM     *ai.ChatClient
	Transcriber *ai.Transcriber
	IndexWorker *worker.IndexWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger := newLogger(cfg)

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.UserSession{},
		&model.Report{},
		&model.Appointment{},
		&model.ConnectionRequest{},
		&model.ChatMessage{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	// Sweep sessions that expired while the server was down.
	if err := repository.NewSessionRepository(mysqlDB).DeleteExpired(time.Now()); err != nil {
		logger.Warn().Err(err).Msg("expired session sweep failed")
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	store := qdrant.NewStore(qdrant.Config{
		URL:        cfg.Vector.URL,
		APIKey:     cfg.Vector.APIKey,
		Collection: cfg.Vector.Collection,
	})
	if err := store.EnsureCollection(ctx, cfg.Vector.Dimension); err != nil {
		return nil, fmt.Errorf("ensure vector collection failed: %w", err)
	}

	embedder := ai.NewEmbeddingClient(ai.ClientConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	})
	chatLLM := ai.NewChatClient(ai.ClientConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	transcriber := ai.NewTranscriber(ai.ClientConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.TranscribeModel,
	})

	indexer := rag.NewIndexer(store, embedder, cfg.RAG.ChunkSize, logger)
	indexWorker := worker.NewIndexWorker(mqConn, indexer, cfg.RabbitMQ.ReportIndexQueue, logger)
	if err := indexWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start index worker failed: %w", err)
	}

	return &App{
		Config:      cfg,
		Logger:      logger,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		VectorStore: store,
		Embedder:    embedder,
		ChatLLM:     chatLLM,
		Transcriber: transcriber,
		IndexWorker: indexWorker,
		StartedAt:   time.Now(),
	}, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()
	if cfg.App.Env == "dev" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.IndexWorker != nil {
		a.IndexWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
