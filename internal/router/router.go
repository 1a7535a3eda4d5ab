package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/access"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/ordering"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
)

// Config carries everything the router needs to assemble the application
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	OrderingGap    int
}

// Setup wires repositories, services and handlers and registers all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	alloc := ordering.NewAllocator(cfg.OrderingGap)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	columnRepo := repository.NewColumnRepository(cfg.DB, alloc)
	cardRepo := repository.NewCardRepository(cfg.DB, alloc)
	tagRepo := repository.NewTagRepository(cfg.DB)
	notificationRepo := repository.NewNotificationRepository(cfg.DB)

	// Authorization gate with a redis read-through role cache
	roleLookup := access.NewCachedLookup(projectRepo, cfg.Redis, cfg.Logger)
	gate := access.NewGate(roleLookup, cfg.Logger)

	// Services
	notificationService := service.NewNotificationService(notificationRepo, cfg.Logger)
	projectService := service.NewProjectService(projectRepo, gate, notificationService, cfg.Metrics, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, projectRepo, gate, cfg.Metrics, cfg.Logger)
	columnService := service.NewColumnService(columnRepo, boardRepo, gate, cfg.Metrics, cfg.Logger)
	cardService := service.NewCardService(cardRepo, columnRepo, boardRepo, tagRepo, gate, notificationService, cfg.Metrics, cfg.Logger)
	tagService := service.NewTagService(tagRepo, projectRepo, gate, cfg.Logger)

	// Handlers
	projectHandler := handler.NewProjectHandler(projectService, cfg.Logger)
	boardHandler := handler.NewBoardHandler(boardService, cfg.Logger)
	columnHandler := handler.NewColumnHandler(columnService, cfg.Logger)
	cardHandler := handler.NewCardHandler(cardService, cfg.Logger)
	tagHandler := handler.NewTagHandler(tagService, cfg.Logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, cfg.Logger)

	// Unauthenticated endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes, all behind JWT auth
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:projectId", projectHandler.GetProject)
			projects.PUT("/:projectId", projectHandler.UpdateProject)
			projects.GET("/:projectId/members", projectHandler.ListMembers)
			projects.POST("/:projectId/members", projectHandler.AddMember)
			projects.DELETE("/:projectId/members/:userId", projectHandler.RemoveMember)
			projects.GET("/:projectId/boards", boardHandler.ListBoards)
			projects.GET("/:projectId/tags", tagHandler.ListTags)
		}

		boards := api.Group("/boards")
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:boardId", boardHandler.GetBoard)
			boards.PUT("/:boardId", boardHandler.UpdateBoard)
			boards.DELETE("/:boardId", boardHandler.ArchiveBoard)
			boards.POST("/:boardId/restore", boardHandler.RestoreBoard)
			boards.GET("/:boardId/columns", columnHandler.ListColumns)
		}

		columns := api.Group("/columns")
		{
			columns.POST("", columnHandler.CreateColumn)
			columns.GET("/:columnId", columnHandler.GetColumn)
			columns.PUT("/:columnId", columnHandler.UpdateColumn)
			columns.DELETE("/:columnId", columnHandler.ArchiveColumn)
			columns.POST("/:columnId/restore", columnHandler.RestoreColumn)
			columns.POST("/:columnId/reorder", columnHandler.ReorderColumn)
			columns.GET("/:columnId/cards", cardHandler.ListCards)
		}

		cards := api.Group("/cards")
		{
			cards.POST("", cardHandler.CreateCard)
			cards.GET("/:cardId", cardHandler.GetCard)
			cards.PUT("/:cardId", cardHandler.UpdateCard)
			cards.DELETE("/:cardId", cardHandler.ArchiveCard)
			cards.POST("/:cardId/restore", cardHandler.RestoreCard)
			cards.POST("/:cardId/reorder", cardHandler.ReorderCard)
			cards.POST("/:cardId/move", cardHandler.MoveCard)
			cards.POST("/:cardId/tags", cardHandler.AssignTag)
			cards.DELETE("/:cardId/tags/:tagId", cardHandler.UnassignTag)
		}

		tags := api.Group("/tags")
		{
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:tagId", tagHandler.UpdateTag)
			tags.DELETE("/:tagId", tagHandler.DeleteTag)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:notificationId/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}
	}

	return r
}
