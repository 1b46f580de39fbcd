package routes

import (
	"celebrato-backend/config"
	"celebrato-backend/controllers"
	"celebrato-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Dependencies struct {
	Config    *config.Config
	Greetings controllers.TestMessageSender
	Log       *zap.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	origins := deps.Config.CORSOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.Use(RequestID())
	r.Use(config.PerformanceLogger(deps.Log))

	r.GET("/", controllers.Root)
	r.GET("/health", controllers.Health)

	authMiddleware := utils.AuthMiddleware(deps.Config.Auth.JWTSecret)
	authController := controllers.AuthController{
		Secret:   deps.Config.Auth.JWTSecret,
		TokenTTL: deps.Config.Auth.TokenTTL(),
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware, controllers.Me)
	}

	api := r.Group("/api")
	api.Use(authMiddleware)
	{
		contacts := api.Group("/contacts")
		{
			contacts.POST("", controllers.CreateContact)
			contacts.GET("", controllers.GetContacts)
			contacts.GET("/:id", controllers.GetContact)
			contacts.PUT("/:id", controllers.UpdateContact)
			contacts.DELETE("/:id", controllers.DeleteContact)
		}

		templates := api.Group("/templates")
		{
			templates.POST("", controllers.CreateTemplate)
			templates.GET("", controllers.GetTemplates)
			templates.PUT("/:id", controllers.UpdateTemplate)
			templates.DELETE("/:id", controllers.DeleteTemplate)
		}

		messages := controllers.MessageController{Greetings: deps.Greetings}
		api.POST("/messages/test", messages.SendTestMessage)

		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}

// RequestID tags every request with an X-Request-ID, reusing the caller's.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestId", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
