package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tubelens/domain/repository"
	httpHandler "tubelens/interfaces/http"
	"tubelens/interfaces/middleware"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	videoHandler httpHandler.IVideoHandler,
	analyzeHandler httpHandler.IAnalyzeHandler,
	battleHandler httpHandler.IBattleHandler,
	commerceHandler httpHandler.ICommerceHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:5173", "https://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	api.GET("/me", userHandler.Profile)

	// Video search and collection
	if videoHandler != nil {
		videos := api.Group("/videos")
		{
			videos.POST("/collect", videoHandler.CollectVideos)
			videos.GET("/collect/progress", videoHandler.CollectProgress)
			videos.GET("/search", videoHandler.SearchVideos)
			videos.GET("/cached", videoHandler.ListCachedVideos)
			videos.GET("/export", videoHandler.ExportVideos)
			videos.GET("/categories", videoHandler.GetVideoCategories)
			videos.GET("/:videoId", videoHandler.GetVideoDetails)
			videos.GET("/:videoId/comments", videoHandler.GetVideoComments)
		}
	}

	// AI analysis and content generation
	if analyzeHandler != nil {
		analyze := api.Group("/analyze")
		{
			analyze.POST("/strategy", analyzeHandler.Strategy)
			analyze.POST("/growth", analyzeHandler.Growth)
			analyze.POST("/consulting", analyzeHandler.Consulting)
			analyze.POST("/sentiment", analyzeHandler.Sentiment)
			analyze.POST("/thumbnail", analyzeHandler.Thumbnail)
			analyze.POST("/trend", analyzeHandler.Trend)
			analyze.GET("/history", analyzeHandler.History)
		}
		generate := api.Group("/generate")
		{
			generate.POST("/shorts-script", analyzeHandler.ShortsScript)
			generate.POST("/titles", analyzeHandler.Titles)
			generate.POST("/thumbnail-text", analyzeHandler.ThumbnailText)
		}
	}

	// Channel battle
	if battleHandler != nil {
		api.POST("/battle", battleHandler.Compare)
	}

	// Coupons, plans and checkout
	if commerceHandler != nil {
		api.POST("/coupons", commerceHandler.GenerateCoupons)
		api.GET("/coupons", commerceHandler.ListCoupons)
		api.POST("/coupons/redeem", commerceHandler.RedeemCoupon)
		api.GET("/plans", commerceHandler.ListPlans)
		api.POST("/checkout", commerceHandler.Checkout)
	}

	return router
}
