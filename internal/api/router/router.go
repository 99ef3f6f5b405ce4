package router

import (
	"github.com/ramdanolii14/nyantube-sub000/internal/api/handler"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup registers all business routes.
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	voteHandler *handler.VoteHandler,
	reportHandler *handler.ReportHandler,
	notificationHandler *handler.NotificationHandler,
	searchHandler *handler.SearchHandler,
	adminHandler *handler.AdminHandler,
	staffMiddleware gin.HandlerFunc,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.GET("/me", authHandler.Me)
			authRequired.PUT("/password", authHandler.UpdatePassword)
		}
	}

	users := v1.Group("/users")
	{
		users.GET("/:id", userHandler.GetUser)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.PUT("/:id", userHandler.UpdateUser)

			admin := usersAuth.Group("", adminMiddleware)
			{
				admin.GET("", userHandler.ListUsers)
				admin.POST("/:id/verify", userHandler.SetVerified)
				admin.POST("/:id/role", userHandler.SetRole)
			}
		}
	}

	videos := v1.Group("/videos")
	{
		videos.GET("/feed", videoHandler.GetFeed)
		videos.GET("/user/:id", videoHandler.GetUserVideos)
		videos.GET("/:id", middleware.OptionalAuth(), videoHandler.GetDetail)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("/upload", videoHandler.Upload)
			videosAuth.GET("/my/list", videoHandler.GetMyVideos)
			videosAuth.PUT("/:id", videoHandler.UpdateVideo)
			videosAuth.DELETE("/:id", videoHandler.DeleteVideo)
		}
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/video/:video_id", commentHandler.ListByVideo)
		comments.GET("/:id/replies", commentHandler.ListReplies)

		commentsAuth := comments.Group("", middleware.AuthRequired())
		{
			commentsAuth.POST("/:video_id", commentHandler.Create)
			commentsAuth.PUT("/:id", commentHandler.Update)
			commentsAuth.DELETE("/:id", commentHandler.Delete)
		}
	}

	votes := v1.Group("/votes", middleware.AuthRequired())
	{
		votes.POST("/:video_id", voteHandler.Vote)
		votes.GET("/:video_id/status", voteHandler.GetStatus)
	}

	reports := v1.Group("/reports", middleware.AuthRequired())
	{
		reports.POST("/:video_id", reportHandler.Create)

		staff := reports.Group("", staffMiddleware)
		{
			staff.GET("", reportHandler.List)
			staff.POST("/:id/review", reportHandler.Review)
		}
	}

	notifications := v1.Group("/notifications", middleware.AuthRequired())
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
	}

	search := v1.Group("/search")
	{
		search.GET("/videos", searchHandler.SearchVideos)
	}

	admin := v1.Group("/admin", middleware.AuthRequired())
	{
		staff := admin.Group("", staffMiddleware)
		{
			staff.DELETE("/videos/:id", adminHandler.PurgeVideo)
		}

		adminOnly := admin.Group("", adminMiddleware)
		{
			adminOnly.POST("/users/:id/ban", adminHandler.BanUser)
			adminOnly.POST("/users/:id/unban", adminHandler.UnbanUser)
		}
	}
}
