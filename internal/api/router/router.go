package router

import (
	"playtube/internal/api/handler"
	"playtube/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	tweetHandler *handler.TweetHandler,
	likeHandler *handler.LikeHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	playlistHandler *handler.PlaylistHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.GET("/me", authHandler.Me)
		}
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		// 频道主页公开可读，携带 Token 时返回订阅状态
		users.GET("/c/:username", middleware.OptionalAuth(), userHandler.GetChannelProfile)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.PATCH("/me", userHandler.UpdateProfile)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（携带 Token 时返回点赞/订阅状态）
		videosPublic := videos.Group("", middleware.OptionalAuth())
		{
			videosPublic.GET("", videoHandler.Feed)
			videosPublic.GET("/:id", videoHandler.GetDetail)
			videosPublic.GET("/user/:user_id", videoHandler.GetChannelVideos)
		}

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("", videoHandler.Upload)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)
			videosAuth.DELETE("/:id", videoHandler.Delete)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/video/:video_id", middleware.OptionalAuth(), commentHandler.List)

		commentsAuth := comments.Group("", middleware.AuthRequired())
		{
			commentsAuth.POST("/video/:video_id", commentHandler.Create)
			commentsAuth.PATCH("/:id", commentHandler.Update)
			commentsAuth.DELETE("/:id", commentHandler.Delete)
		}
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:user_id", middleware.OptionalAuth(), tweetHandler.ListByUser)

		tweetsAuth := tweets.Group("", middleware.AuthRequired())
		{
			tweetsAuth.POST("", tweetHandler.Create)
			tweetsAuth.PATCH("/:id", tweetHandler.Update)
			tweetsAuth.DELETE("/:id", tweetHandler.Delete)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", middleware.AuthRequired())
	{
		likes.POST("/toggle/video/:video_id", likeHandler.ToggleVideo)
		likes.POST("/toggle/comment/:comment_id", likeHandler.ToggleComment)
		likes.POST("/toggle/tweet/:tweet_id", likeHandler.ToggleTweet)
		likes.GET("/status/:kind/:target_id", likeHandler.GetStatus)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/channel/:channel_id", subscriptionHandler.GetChannelSubscribers)

		subscriptionsAuth := subscriptions.Group("", middleware.AuthRequired())
		{
			subscriptionsAuth.POST("/channel/:channel_id", subscriptionHandler.Toggle)
			subscriptionsAuth.GET("/channel/:channel_id/status", subscriptionHandler.GetStatus)
			subscriptionsAuth.GET("/my", subscriptionHandler.GetSubscribedChannels)
		}
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlistsPublic := playlists.Group("", middleware.OptionalAuth())
		{
			playlistsPublic.GET("/:id", playlistHandler.GetByID)
			playlistsPublic.GET("/user/:user_id", playlistHandler.ListByUser)
		}

		playlistsAuth := playlists.Group("", middleware.AuthRequired())
		{
			playlistsAuth.POST("", playlistHandler.Create)
			playlistsAuth.PATCH("/:id", playlistHandler.Update)
			playlistsAuth.DELETE("/:id", playlistHandler.Delete)
			playlistsAuth.POST("/:id/videos/:video_id", playlistHandler.AddVideo)
			playlistsAuth.DELETE("/:id/videos/:video_id", playlistHandler.RemoveVideo)
		}
	}

	// --- 创作者后台模块 ---
	dashboard := v1.Group("/dashboard", middleware.AuthRequired())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/videos", dashboardHandler.GetVideos)
	}
}
