package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/silverbridge24/silverbridge-backend/internal/delivery/http/handler"
	"github.com/silverbridge24/silverbridge-backend/internal/delivery/http/middleware"
	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

type Router struct {
	authHandler     *handler.AuthHandler
	questionHandler *handler.QuestionHandler
	answerHandler   *handler.AnswerHandler
	pointsHandler   *handler.PointsHandler
	authMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	questionHandler *handler.QuestionHandler,
	answerHandler *handler.AnswerHandler,
	pointsHandler *handler.PointsHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:     authHandler,
		questionHandler: questionHandler,
		answerHandler:   answerHandler,
		pointsHandler:   pointsHandler,
		authMiddleware:  authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	registerValidators()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.GET("/profile/me", r.authHandler.Me)

			questions := protected.Group("/questions")
			{
				questions.POST("", r.questionHandler.Create)
				questions.GET("/mine", r.questionHandler.ListMine)
				questions.GET("/pending", r.questionHandler.ListPending)
				questions.GET("/:id/answers", r.questionHandler.Answers)
				questions.POST("/:id/answers", r.answerHandler.Submit)
				questions.POST("/:id/accept", r.answerHandler.Accept)
			}

			answers := protected.Group("/answers")
			{
				answers.POST("/:id/reject", r.answerHandler.Reject)
			}

			points := protected.Group("/points")
			{
				points.GET("/history", r.pointsHandler.History)
				points.GET("/summary", r.pointsHandler.Summary)
			}
		}
	}

	return router
}

// registerValidators adds the satisfaction rating to gin's binding validator.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("satisfaction", func(fl validator.FieldLevel) bool {
			return domain.Satisfaction(fl.Field().String()).Valid()
		})
	}
}
