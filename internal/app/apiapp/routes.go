package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/linkup-app/backend/internal/config"
	authsvc "github.com/linkup-app/backend/internal/services/auth"
	commentssvc "github.com/linkup-app/backend/internal/services/comments"
	likessvc "github.com/linkup-app/backend/internal/services/likes"
	mediasvc "github.com/linkup-app/backend/internal/services/media"
	postssvc "github.com/linkup-app/backend/internal/services/posts"
	userssvc "github.com/linkup-app/backend/internal/services/users"
	"github.com/linkup-app/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	CookieManager  *authsvc.CookieManager
	PostService    *postssvc.Service
	CommentService *commentssvc.Service
	LikeService    *likessvc.Service
	UserService    *userssvc.Service
	MediaService   *mediasvc.Service
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.CookieManager)
	postsHandler := handlers.NewPostsHandler(deps.PostService, deps.MediaService)
	commentsHandler := handlers.NewCommentsHandler(deps.CommentService)
	likesHandler := handlers.NewLikesHandler(deps.LikeService)
	usersHandler := handlers.NewUsersHandler(deps.UserService, deps.MediaService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigin))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postsHandler.List)
				r.Post("/", postsHandler.Create)
				r.Route("/{postId}", func(r chi.Router) {
					r.Get("/", postsHandler.Get)
					r.Put("/", postsHandler.Update)
					r.Delete("/", postsHandler.Delete)
					r.Get("/comments", commentsHandler.ListByPost)
					r.Post("/comments", commentsHandler.Create)
					r.Get("/likes", likesHandler.ListByPost)
					r.Post("/likes", likesHandler.Toggle)
				})
			})

			r.Route("/comments/{commentId}", func(r chi.Router) {
				r.Patch("/", commentsHandler.Update)
				r.Delete("/", commentsHandler.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", usersHandler.List)
				r.Route("/me", func(r chi.Router) {
					r.Get("/", usersHandler.Me)
					r.Patch("/", usersHandler.UpdateProfile)
					r.Put("/", usersHandler.UpdateImage)
					r.Delete("/", usersHandler.ResetImage)
				})
				r.Get("/{username}", usersHandler.ByUsername)
			})
		})
	})
}
