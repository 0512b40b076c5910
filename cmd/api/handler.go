package api

import (
	"github.com/gin-gonic/gin"

	authDelivery "brf-backend/internal/auth/delivery"
	authUsecasePkg "brf-backend/internal/auth/usecase"
	"brf-backend/internal/middleware"
	personDelivery "brf-backend/internal/person/delivery"
	personUsecasePkg "brf-backend/internal/person/usecase"
	"brf-backend/internal/stream"
	taskDelivery "brf-backend/internal/task/delivery"
	taskUsecasePkg "brf-backend/internal/task/usecase"
	"brf-backend/pkg/config"
)

type Handler struct {
	authUsecase   authUsecasePkg.AuthUsecase
	authHandler   *authDelivery.AuthHandler
	personHandler *personDelivery.PersonHandler
	taskHandler   *taskDelivery.TaskHandler
	boardHandler  *BoardHandler
	sseManager    *stream.Manager
	config        *config.Config
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	personUc personUsecasePkg.PersonUsecase,
	taskUc taskUsecasePkg.TaskUsecase,
	sseManager *stream.Manager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:   authUc,
		authHandler:   authDelivery.NewAuthHandler(authUc),
		personHandler: personDelivery.NewPersonHandler(personUc),
		taskHandler:   taskDelivery.NewTaskHandler(taskUc),
		boardHandler:  NewBoardHandler(personUc, taskUc, cfg.Location),
		sseManager:    sseManager,
		config:        cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(middleware.Metrics())

	SetupRoutes(r, h.authUsecase, h.authHandler, h.personHandler, h.taskHandler, h.boardHandler, h.sseManager)

	return r.Run(addr)
}
