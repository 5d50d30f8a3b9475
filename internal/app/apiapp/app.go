package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/linkup-app/backend/internal/config"
	s3infra "github.com/linkup-app/backend/internal/infra/s3"
	pgrepo "github.com/linkup-app/backend/internal/repo/postgres"
	authsvc "github.com/linkup-app/backend/internal/services/auth"
	commentssvc "github.com/linkup-app/backend/internal/services/comments"
	likessvc "github.com/linkup-app/backend/internal/services/likes"
	mediasvc "github.com/linkup-app/backend/internal/services/media"
	postssvc "github.com/linkup-app/backend/internal/services/posts"
	userssvc "github.com/linkup-app/backend/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	userRepo := pgrepo.NewUserRepo(pool)
	accountRepo := pgrepo.NewAccountRepo(pool)
	postRepo := pgrepo.NewPostRepo(pool)
	commentRepo := pgrepo.NewCommentRepo(pool)
	likeRepo := pgrepo.NewLikeRepo(pool)

	tokenManager := authsvc.NewTokenManager(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
	)
	cookieManager := authsvc.NewCookieManager(cfg.Auth.RefreshTTL, cfg.Env != "dev")
	authService := authsvc.NewService(tokenManager, userRepo)
	postService := postssvc.NewService(postRepo)
	commentService := commentssvc.NewService(commentRepo)
	likeService := likessvc.NewService(likeRepo)
	userService := userssvc.NewService(accountRepo, userssvc.Defaults{
		AvatarURL: cfg.Defaults.AvatarURL,
		CoverURL:  cfg.Defaults.CoverURL,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket, cfg.S3.PublicBaseURL)
	mediaService := mediasvc.NewService(mediaStorage, cfg.S3.Folder)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		CookieManager:  cookieManager,
		PostService:    postService,
		CommentService: commentService,
		LikeService:    likeService,
		UserService:    userService,
		MediaService:   mediaService,
		Logger:         log,
		Config:         cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
