package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yjym33/travelLog-Backend/internal/handler"
	"github.com/yjym33/travelLog-Backend/internal/httputil"
	authmw "github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	FriendshipHandler   *handler.FriendshipHandler
	TravelLogHandler    *handler.TravelLogHandler
	LikeHandler         *handler.LikeHandler
	CommentHandler      *handler.CommentHandler
	NotificationHandler *handler.NotificationHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// View counting is deliberately unauthenticated.
	r.Post("/travel-logs/{id}/view", cfg.TravelLogHandler.IncrementView)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", cfg.FriendshipHandler.List)
			r.Get("/search", cfg.FriendshipHandler.Search)
			r.Get("/status/{userId}", cfg.FriendshipHandler.Status)
			r.Post("/requests", cfg.FriendshipHandler.SendRequest)
			r.Get("/requests/received", cfg.FriendshipHandler.ListReceived)
			r.Get("/requests/sent", cfg.FriendshipHandler.ListSent)
			r.Patch("/requests/{requestId}/accept", cfg.FriendshipHandler.Accept)
			r.Patch("/requests/{requestId}/reject", cfg.FriendshipHandler.Reject)
			r.Delete("/{friendshipId}", cfg.FriendshipHandler.Remove)
		})

		r.Route("/travel-logs", func(r chi.Router) {
			r.Post("/", cfg.TravelLogHandler.Create)
			r.Get("/", cfg.TravelLogHandler.ListOwn)
			r.Get("/feed", cfg.TravelLogHandler.Feed)
			r.Get("/user/{userId}", cfg.TravelLogHandler.ListByUser)
			r.Get("/shared/received", cfg.TravelLogHandler.SharedWithMe)
			r.Get("/{id}", cfg.TravelLogHandler.Get)
			r.Delete("/{id}", cfg.TravelLogHandler.Delete)
			r.Patch("/{id}/visibility", cfg.TravelLogHandler.UpdateVisibility)
			r.Post("/{id}/share", cfg.TravelLogHandler.Share)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Post("/travel-logs/{id}", cfg.LikeHandler.ToggleTravelLog)
			r.Get("/travel-logs/{id}", cfg.LikeHandler.ListTravelLogLikes)
			r.Post("/comments/{id}", cfg.LikeHandler.ToggleComment)
			r.Get("/my-likes", cfg.LikeHandler.ListMyLikes)
			r.Get("/check/{id}", cfg.LikeHandler.CheckLiked)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Post("/", cfg.CommentHandler.Create)
			r.Get("/travel-logs/{id}", cfg.CommentHandler.ListForTravelLog)
			r.Get("/my-comments", cfg.CommentHandler.ListMyComments)
			r.Get("/{id}/replies", cfg.CommentHandler.ListReplies)
			r.Patch("/{id}", cfg.CommentHandler.Update)
			r.Delete("/{id}", cfg.CommentHandler.Delete)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.NotificationHandler.List)
			r.Patch("/read", cfg.NotificationHandler.MarkRead)
		})
	})

	return r
}
