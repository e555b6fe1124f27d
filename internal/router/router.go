package router

import (
	"rentvoice/internal/handlers"
	"rentvoice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups the handler instances main constructs so route
// registration stays in one place.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Property     *handlers.PropertyHandler
	Review       *handlers.ReviewHandler
	Vote         *handlers.VoteHandler
	Saved        *handlers.SavedHandler
	Notification *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Public routes
	r.POST("/signup", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/logout", h.Auth.Logout)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/me", h.Auth.Me)

	r.GET("/properties/search", h.Property.Search)
	r.GET("/properties/top", h.Property.TopRated)
	r.GET("/neighborhoods", h.Property.Neighborhoods)
	r.GET("/properties/:id", h.Property.Get)
	r.GET("/properties/:id/reviews", h.Property.Reviews)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/reviews", h.Review.Create)
		authorized.PATCH("/reviews/:id", h.Review.Update)
		authorized.DELETE("/reviews/:id", h.Review.Delete)
		authorized.GET("/my/reviews", h.Review.Mine)

		authorized.POST("/reviews/:id/vote", h.Vote.Vote)
		authorized.POST("/reviews/:id/report", h.Vote.Report)

		authorized.POST("/saved/:propertyID", h.Saved.Toggle)
		authorized.GET("/my/saved", h.Saved.List)

		authorized.GET("/notifications", h.Notification.List)
		authorized.POST("/notifications/:id/read", h.Notification.Read)
		authorized.POST("/notifications/read-all", h.Notification.ReadAll)
		authorized.DELETE("/notifications/:id", h.Notification.Delete)
	}

	// Moderation routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/reviews/pending", h.Admin.ListPending)
		admin.POST("/reviews/:id/moderate", h.Admin.Moderate)
		admin.GET("/reports", h.Admin.ListReports)
		admin.POST("/reports/:id/resolve", h.Admin.ResolveReport)
	}
}
