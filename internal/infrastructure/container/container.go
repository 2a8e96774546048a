package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/silverbridge24/silverbridge-backend/internal/config"
	"github.com/silverbridge24/silverbridge-backend/internal/delivery/http"
	"github.com/silverbridge24/silverbridge-backend/internal/delivery/http/handler"
	"github.com/silverbridge24/silverbridge-backend/internal/delivery/http/middleware"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/database"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/events"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/gemini"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/server"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/session"
	"github.com/silverbridge24/silverbridge-backend/internal/repository/postgres"
	"github.com/silverbridge24/silverbridge-backend/internal/usecase/acceptance"
	"github.com/silverbridge24/silverbridge-backend/internal/usecase/answer"
	"github.com/silverbridge24/silverbridge-backend/internal/usecase/auth"
	"github.com/silverbridge24/silverbridge-backend/internal/usecase/points"
	"github.com/silverbridge24/silverbridge-backend/internal/usecase/question"
	"github.com/silverbridge24/silverbridge-backend/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Log       *logrus.Logger
	DB        *sqlx.DB
	Redis     *redis.Client
	Server    *server.Server
	Responder *gemini.Responder
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New(cfg.Logging.Level)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis (sessions + change events)
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize the Gemini responder for AI-directed questions
	var responder *gemini.Responder
	if cfg.GeminiAPIKey != "" {
		responder, err = gemini.NewResponder(cfg.GeminiAPIKey)
		if err != nil {
			log.WithError(err).Warn("gemini responder unavailable, AI-directed questions will stay pending")
			responder = nil
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	answerRepo := postgres.NewAnswerRepository(db)
	acceptanceRepo := postgres.NewAcceptanceRepository(db)
	pointRepo := postgres.NewPointRepository(db)

	// Initialize infrastructure collaborators
	sessions := session.NewStore(redisClient)
	publisher := events.NewRedisPublisher(redisClient, cfg.Redis.EventChannel)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		sessions,
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry(),
		log,
	)

	var questionResponder question.Responder
	if responder != nil {
		questionResponder = responder
	}
	questionUseCase := question.NewQuestionUseCase(
		questionRepo,
		answerRepo,
		profileRepo,
		questionResponder,
		publisher,
		log,
	)

	answerUseCase := answer.NewAnswerUseCase(
		questionRepo,
		answerRepo,
		profileRepo,
		publisher,
		log,
	)

	acceptanceUseCase := acceptance.NewAcceptanceUseCase(
		questionRepo,
		answerRepo,
		acceptanceRepo,
		publisher,
		log,
	)

	pointsUseCase := points.NewPointsUseCase(pointRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	questionHandler := handler.NewQuestionHandler(questionUseCase)
	answerHandler := handler.NewAnswerHandler(answerUseCase, acceptanceUseCase)
	pointsHandler := handler.NewPointsHandler(pointsUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		questionHandler,
		answerHandler,
		pointsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Redis:     redisClient,
		Server:    srv,
		Responder: responder,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Responder != nil {
		c.Responder.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.WithError(err).Error("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
