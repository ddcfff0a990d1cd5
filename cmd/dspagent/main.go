// Command dspagent runs the Lokiteck agent platform HTTP server.
//
// Configuration comes from the environment (prefix DSPAGENT), optionally
// seeded from a .env file:
//
//	DSPAGENT_ADDR            listen address (default 127.0.0.1:8000)
//	DSPAGENT_MODEL_PROVIDER  openai | anthropic | mock (default openai)
//	DSPAGENT_SESSION_STORE   memory | mongo (default memory)
//	DSPAGENT_QUESTION_STORE  memory | firestore (default memory)
//
// Provider credentials use the SDKs' own variables (OPENAI_API_KEY,
// ANTHROPIC_API_KEY, GOOGLE_APPLICATION_CREDENTIALS).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gfirestore "cloud.google.com/go/firestore"
	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lokiteck/dspagent"
	"github.com/lokiteck/dspagent/agent"
	"github.com/lokiteck/dspagent/config"
	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/logging"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/model/anthropic"
	"github.com/lokiteck/dspagent/model/openai"
	"github.com/lokiteck/dspagent/questions"
	qfirestore "github.com/lokiteck/dspagent/questions/firestore"
	"github.com/lokiteck/dspagent/server"
	"github.com/lokiteck/dspagent/session"
	sessionmongo "github.com/lokiteck/dspagent/session/mongo"
)

type appConfig struct {
	Addr       string `envconfig:"ADDR" default:"127.0.0.1:8000"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
	PrettyLogs bool   `envconfig:"PRETTY_LOGS" default:"false"`

	ModelProvider  string `envconfig:"MODEL_PROVIDER" default:"openai"`
	OpenAIModel    string `envconfig:"OPENAI_MODEL"`
	AnthropicModel string `envconfig:"ANTHROPIC_MODEL"`

	SessionStore    string `envconfig:"SESSION_STORE" default:"memory"`
	MongoURI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase   string `envconfig:"MONGO_DATABASE"`
	MongoCollection string `envconfig:"MONGO_COLLECTION"`

	QuestionStore       string `envconfig:"QUESTION_STORE" default:"memory"`
	FirestoreProject    string `envconfig:"FIRESTORE_PROJECT"`
	FirestoreCollection string `envconfig:"FIRESTORE_COLLECTION"`

	CoachingRecordsFile string `envconfig:"COACHING_RECORDS_FILE"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dspagent:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustNew[appConfig]("DSPAGENT")
	logger := logging.NewZerologLogger(cfg.Debug, cfg.PrettyLogs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	manager, qcleanup, err := buildQuestionManager(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer qcleanup()

	llm, err := buildModel(cfg)
	if err != nil {
		return err
	}
	logger.Info("model configured", "provider", llm.Info().Provider, "model", llm.Info().Name)

	coaching, err := buildCoachingSource(cfg)
	if err != nil {
		return err
	}

	platform, err := dspagent.New(func(o *dspagent.Options) {
		o.SessionStore = store
		o.Questions = manager
		o.Coaching = coaching
		o.Model = llm
		o.Logger = logger
	})
	if err != nil {
		return fmt.Errorf("build platform: %w", err)
	}

	agents := server.Agents{}
	if a, ok := platform.Agent("driver_screening"); ok {
		agents.Screening = a
	}
	if a, ok := platform.Agent("company_admin"); ok {
		agents.CompanyAdmin = a
	}
	if a, ok := platform.Agent("content_generator"); ok {
		agents.Content = a
	}
	if a, ok := platform.Agent("performance_analyzer"); ok {
		agents.Performance = a
	}
	if a, ok := platform.Agent("coaching_analyzer"); ok {
		agents.Coaching = a
	}

	srv := server.New(agents, manager, store, func(o *server.Options) {
		o.Logger = logger
	})
	return srv.Run(ctx, cfg.Addr)
}

func buildSessionStore(ctx context.Context, cfg *appConfig, logger logging.Logger) (core.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case "memory":
		return session.NewInMemoryStore(), func() {}, nil
	case "mongo":
		client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		store := sessionmongo.NewStore(client, func(o *sessionmongo.Options) {
			if cfg.MongoDatabase != "" {
				o.Database = cfg.MongoDatabase
			}
			if cfg.MongoCollection != "" {
				o.Collection = cfg.MongoCollection
			}
		})
		return store, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

func buildQuestionManager(ctx context.Context, cfg *appConfig, logger logging.Logger) (questions.Manager, func(), error) {
	switch cfg.QuestionStore {
	case "memory":
		return questions.NewInMemory(), func() {}, nil
	case "firestore":
		if cfg.FirestoreProject == "" {
			return nil, nil, fmt.Errorf("DSPAGENT_FIRESTORE_PROJECT is required for the firestore question store")
		}
		client, err := gfirestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, nil, fmt.Errorf("connect firestore: %w", err)
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("firestore close failed", "error", err)
			}
		}
		manager := qfirestore.NewManager(client, func(o *qfirestore.Options) {
			if cfg.FirestoreCollection != "" {
				o.Collection = cfg.FirestoreCollection
			}
		})
		return manager, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown question store %q", cfg.QuestionStore)
	}
}

func buildModel(cfg *appConfig) (model.Model, error) {
	switch cfg.ModelProvider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.OpenAIModel != "" {
				o.Model = cfg.OpenAIModel
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.AnthropicModel != "" {
				o.Model = anthropicsdk.Model(cfg.AnthropicModel)
			}
		}), nil
	case "mock":
		return model.NewMockModel("mock"), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.ModelProvider)
	}
}

func buildCoachingSource(cfg *appConfig) (agent.CoachingSource, error) {
	if cfg.CoachingRecordsFile == "" {
		return agent.NewInMemoryCoachingSource(), nil
	}
	return agent.NewCoachingSourceFromFile(cfg.CoachingRecordsFile)
}
