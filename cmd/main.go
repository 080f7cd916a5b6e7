package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"project-rag/internal/chat"
	"project-rag/internal/chunker"
	"project-rag/internal/config"
	"project-rag/internal/db"
	"project-rag/internal/embedding"
	"project-rag/internal/helper"
	"project-rag/internal/ingest"
	"project-rag/internal/llm"
	"project-rag/internal/project"
	"project-rag/internal/rag"
	"project-rag/internal/vectorstore"
	"project-rag/internal/worker"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	_ = godotenv.Load()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	initSchema := flag.Bool("init", false, "Initialize the database schema")
	createProject := flag.String("create-project", "", "Create a project with the given name")
	projectID := flag.Int64("project", 0, "Project id for -file and -new-session")
	filePath := flag.String("file", "", "Path to a document file to upload and ingest")
	newSession := flag.Bool("new-session", false, "Create a chat session for -project")
	sessionID := flag.Int64("session", 0, "Chat session id for -query")
	query := flag.String("query", "", "Query to be answered")
	flag.Parse()

	ctx := context.Background()
	app, err := newApp(ctx, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing application")
	}
	defer app.close()

	switch {
	case *initSchema:
		if err := db.InitDB(ctx, app.db); err != nil {
			log.Fatal().Err(err).Msg("Error initializing database")
		}
		log.Info().Msg("Database schema initialized")

	case *createProject != "":
		p, err := app.projects.CreateProject(ctx, *createProject, "")
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating project")
		}
		helper.PrettyPrint(p)

	case *filePath != "":
		if *projectID == 0 {
			log.Fatal().Msg("Please provide the project id using the -project flag")
		}
		ingestFile(ctx, app, *projectID, *filePath)

	case *newSession:
		if *projectID == 0 {
			log.Fatal().Msg("Please provide the project id using the -project flag")
		}
		s, err := app.chats.CreateSession(ctx, *projectID, "")
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating session")
		}
		helper.PrettyPrint(s)

	case *query != "":
		if *sessionID == 0 {
			log.Fatal().Msg("Please provide the session id using the -session flag")
		}
		askQuestion(ctx, app, *sessionID, *query)

	default:
		flag.Usage()
	}
}

type application struct {
	db         *bun.DB
	projects   *project.Service
	chats      *chat.Service
	dispatcher *worker.Dispatcher
}

func newApp(ctx context.Context, configPath string) (*application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	sqldb, err := db.ConnectDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	bunDB := db.NewDB(sqldb, cfg.Database.Debug)

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	vectors, err := vectorstore.NewStore(cfg.Storage.ChromaRoot, embedder.Func())
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	completer, err := llm.NewClient(&cfg.InferLLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize inference client: %w", err)
	}

	store := db.NewStore(bunDB)
	pipeline := ingest.NewPipeline(store, vectors, embedder, chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap))
	dispatcher := worker.NewDispatcher(pipeline, 16)
	dispatcher.Start(ctx, 2)

	ragService := rag.NewService(vectors, completer, cfg.RAG.TopK)

	return &application{
		db:         bunDB,
		projects:   project.NewService(bunDB, dispatcher, vectors, cfg.Storage.MediaRoot),
		chats:      chat.NewService(store, ragService),
		dispatcher: dispatcher,
	}, nil
}

func (a *application) close() {
	a.dispatcher.Stop()
	if err := a.db.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing database")
	}
}

func ingestFile(ctx context.Context, app *application, projectID int64, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error reading file")
	}
	doc, err := app.projects.UploadDocument(ctx, projectID, filepath.Base(filePath), content)
	if err != nil {
		log.Fatal().Err(err).Msg("Error uploading document")
	}
	log.Info().Int64("document_id", doc.ID).Msg("Document uploaded, waiting for ingestion")

	// drain the queue so the CLI observes the terminal status
	app.dispatcher.Stop()

	docs, err := app.projects.ListDocuments(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("Error listing documents")
	}
	for _, d := range docs {
		if d.ID == doc.ID {
			log.Info().Str("status", string(d.ProcessingStatus)).Int("chunks", d.ChunksCount).Msg("Ingestion finished")
		}
	}
}

func askQuestion(ctx context.Context, app *application, sessionID int64, query string) {
	userMsg, assistantMsg, err := app.chats.PostMessage(ctx, sessionID, query)
	if err != nil {
		log.Fatal().Err(err).Msg("Error querying")
	}

	log.Info().Msg("Query: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", userMsg.Content)

	log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", assistantMsg.Content)
}
