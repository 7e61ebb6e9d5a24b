// Package router 提供路由配置
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/weiwangfds/lifenote/config"
	_ "github.com/weiwangfds/lifenote/docs" // swagger docs
	"github.com/weiwangfds/lifenote/internal/handler"
	"github.com/weiwangfds/lifenote/internal/middleware"
	authservice "github.com/weiwangfds/lifenote/internal/service/auth"
	blogservice "github.com/weiwangfds/lifenote/internal/service/blog"
	"github.com/weiwangfds/lifenote/internal/service/knowledge"
	tasksservice "github.com/weiwangfds/lifenote/internal/service/tasks"
	"gorm.io/gorm"
)

// Router 路由配置
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter 创建路由实例
// 装配全部服务、处理器和中间件
func NewRouter(loggerMiddleware *middleware.LoggerMiddleware, db *gorm.DB, cfg *config.Config) *Router {
	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	// 初始化认证组件
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth)
	authService := authservice.NewAuthService(db, cfg.Auth, authMiddleware)

	// 初始化知识库服务
	// 内容在创建时可留空，主题非必选
	entryService := knowledge.NewEntryService(db, knowledge.ValidationConfig{
		ContentRequired: false,
		TopicRequired:   false,
	})
	topicService := knowledge.NewTopicService(db)
	resourceService := knowledge.NewResourceService(db)

	// 初始化博客服务
	postService := blogservice.NewPostService(db)
	categoryService := blogservice.NewCategoryService(db)

	// 初始化任务服务
	taskService := tasksservice.NewTaskService(db)
	sessionService := tasksservice.NewSessionService(db)
	listService := tasksservice.NewList100Service(db)

	// 初始化处理器
	authHandler := handler.NewAuthHandler(authService)
	entryHandler := handler.NewEntryHandler(entryService)
	topicHandler := handler.NewTopicHandler(topicService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	postHandler := handler.NewPostHandler(postService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	taskHandler := handler.NewTaskHandler(taskService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	listHandler := handler.NewList100Handler(listService)
	publicHandler := handler.NewPublicHandler(postService, entryService, listService, cfg.Site)

	// 使用中间件
	engine.Use(gin.Recovery())
	engine.Use(loggerMiddleware.RequestID())
	engine.Use(loggerMiddleware.RequestLogger())

	// 配置CORS
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Swagger文档路由
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	// API路由组
	api := engine.Group("/api/v1")
	{
		// 基础信息接口
		api.GET("/info", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"service": "LifeNote",
				"version": "1.0.0",
				"status":  "running",
			})
		})

		// 数据库状态检查
		api.GET("/db/status", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err != nil {
				c.JSON(500, gin.H{
					"error": "Database connection error",
				})
				return
			}

			if err := sqlDB.Ping(); err != nil {
				c.JSON(500, gin.H{
					"error": "Database ping failed",
				})
				return
			}

			c.JSON(200, gin.H{
				"status": "Database connection OK",
			})
		})

		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		}

		// 知识库接口（需登录）
		protected := api.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			// 主题管理
			protected.POST("/topics", topicHandler.CreateTopic)
			protected.GET("/topics", topicHandler.ListTopics)
			protected.GET("/topics/:id", topicHandler.GetTopic)
			protected.PUT("/topics/:id", topicHandler.UpdateTopic)
			protected.DELETE("/topics/:id", topicHandler.DeleteTopic)

			// 知识条目管理
			protected.POST("/entries", entryHandler.CreateEntry)
			protected.GET("/entries", entryHandler.ListEntries)
			protected.GET("/entries/tree", entryHandler.GetEntryTree)
			protected.GET("/entries/:id", entryHandler.GetEntry)
			protected.PUT("/entries/:id", entryHandler.UpdateEntry)
			protected.DELETE("/entries/:id", entryHandler.DeleteEntry)
			protected.GET("/entries/:id/children", entryHandler.GetChildren)
			protected.GET("/entries/:id/siblings", entryHandler.GetSiblings)
			protected.PATCH("/entries/:id/reorder", entryHandler.ReorderEntry)

			// 条目搜索
			protected.GET("/search", entryHandler.SearchEntries)

			// 学习资源管理
			protected.POST("/resources", resourceHandler.CreateResource)
			protected.GET("/resources", resourceHandler.ListResources)
			protected.GET("/resources/:id", resourceHandler.GetResource)
			protected.PUT("/resources/:id", resourceHandler.UpdateResource)
			protected.DELETE("/resources/:id", resourceHandler.DeleteResource)

			// 博客文章管理
			protected.POST("/posts", postHandler.CreatePost)
			protected.GET("/posts", postHandler.ListPosts)
			protected.GET("/posts/:id", postHandler.GetPost)
			protected.PUT("/posts/:id", postHandler.UpdatePost)
			protected.DELETE("/posts/:id", postHandler.DeletePost)

			// 博客分类管理
			protected.POST("/categories", categoryHandler.CreateCategory)
			protected.GET("/categories", categoryHandler.ListCategories)
			protected.GET("/categories/:id", categoryHandler.GetCategory)
			protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
			protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			// 任务管理
			protected.POST("/tasks", taskHandler.CreateTask)
			protected.GET("/tasks", taskHandler.ListTasks)
			protected.GET("/tasks/dashboard", taskHandler.GetDashboard)
			protected.GET("/tasks/:id", taskHandler.GetTask)
			protected.PUT("/tasks/:id", taskHandler.UpdateTask)
			protected.DELETE("/tasks/:id", taskHandler.DeleteTask)

			// 学习记录管理
			protected.POST("/study-sessions", sessionHandler.CreateSession)
			protected.GET("/study-sessions", sessionHandler.ListSessions)
			protected.GET("/study-sessions/:id", sessionHandler.GetSession)
			protected.PUT("/study-sessions/:id", sessionHandler.UpdateSession)
			protected.DELETE("/study-sessions/:id", sessionHandler.DeleteSession)

			// 人生清单管理
			protected.POST("/list100", listHandler.CreateItem)
			protected.GET("/list100", listHandler.ListItems)
			protected.GET("/list100/stats", listHandler.GetStats)
			protected.GET("/list100/:id", listHandler.GetItem)
			protected.PUT("/list100/:id", listHandler.UpdateItem)
			protected.DELETE("/list100/:id", listHandler.DeleteItem)
		}

		// 公开接口（无需登录）
		public := api.Group("/public")
		{
			public.GET("/home", publicHandler.Home)
			public.GET("/posts", publicHandler.ListPosts)
			public.GET("/posts/:slug", publicHandler.GetPost)
			public.GET("/notes", publicHandler.ListNotes)
			public.GET("/notes/:slug", publicHandler.GetNote)
			public.GET("/list-100", publicHandler.List100)
			public.GET("/feed.rss", publicHandler.FeedRSS)
			public.GET("/feed.atom", publicHandler.FeedAtom)
		}
	}

	return &Router{
		engine: engine,
		db:     db,
	}
}

// Engine 获取gin引擎实例
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
