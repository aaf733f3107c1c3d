// Command server runs the publishing API.
//
// @title                       Publishing API
// @version                     1.0
// @description                 Multi-tenant article publishing backend: accounts, articles, categories, comments and images.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/newsroom/publishing-api/internal/api"
	"github.com/newsroom/publishing-api/internal/api/handler"
	"github.com/newsroom/publishing-api/internal/core/ports"
	"github.com/newsroom/publishing-api/internal/core/service"
	mongorepo "github.com/newsroom/publishing-api/internal/infrastructure/db/mongo"
	redisstore "github.com/newsroom/publishing-api/internal/infrastructure/db/redis"
	"github.com/newsroom/publishing-api/internal/infrastructure/mail"
	"github.com/newsroom/publishing-api/internal/infrastructure/queue"
	"github.com/newsroom/publishing-api/internal/infrastructure/storage"
	"github.com/newsroom/publishing-api/internal/pkg/config"
	"github.com/newsroom/publishing-api/internal/pkg/password"
	"github.com/newsroom/publishing-api/internal/pkg/token"
	"github.com/newsroom/publishing-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "publishing-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Infrastructure ---
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	images, err := storage.NewS3Storage(ctx, storage.Config{
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
		Bucket:       cfg.S3.Bucket,
		UsePathStyle: cfg.S3.UsePathStyle,
	})
	if err != nil {
		return err
	}

	users := mongorepo.NewUserRepository(db)
	categories := mongorepo.NewCategoryRepository(db)
	articles := mongorepo.NewArticleRepository(db)
	comments := mongorepo.NewCommentRepository(db)
	if err := mongorepo.EnsureIndexes(ctx, users, categories, articles, comments); err != nil {
		return err
	}

	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}
	dispatcher := queue.NewMailDispatcher(cfg.Mail.Workers, mailer, logger.Component("mail"))
	dispatcher.Start(ctx)

	// --- Core ---
	hasher := password.NewHasher(cfg.Salt)
	issuer := token.NewIssuer(
		token.NewCodec(),
		token.Settings{Secret: cfg.JWT.AccessSecret, TTL: cfg.JWT.AccessTTL()},
		token.Settings{Secret: cfg.JWT.RefreshSecret, TTL: cfg.JWT.RefreshTTL()},
	)

	if cfg.SeedData {
		seeder := service.NewSeedService(users, categories, articles, hasher, logger.Component("seed"))
		if err := seeder.Run(ctx); err != nil {
			return err
		}
	}

	services := api.Services{
		Auth: service.NewAuthService(users, hasher, issuer, redisstore.NewTokenRevoker(rdb), dispatcher,
			cfg.ClientURL, logger.Component("auth")),
		Articles:   service.NewArticleService(articles, categories, comments, logger.Component("articles")),
		Comments:   service.NewCommentService(comments, articles, users, logger.Component("comments")),
		Categories: service.NewCategoryService(categories, logger.Component("categories")),
		Users:      service.NewUserService(users, logger.Component("users")),
		Images:     service.NewImageService(images, cfg.ImageBaseURL(), logger.Component("images")),
	}

	e := api.NewRouter(api.Deps{
		Services: services,
		Verifier: issuer,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error {
				return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
			},
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
			"storage": images.Ping,
		},
		ClientURL: cfg.ClientURL,
		Log:       logger.Component("http"),
		Metrics:   true,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	dispatcher.Wait()
	return nil
}

func newMailer(cfg *config.Config, log zerolog.Logger) (ports.Mailer, error) {
	if cfg.Mail.Host == "" {
		log.Warn().Msg("SMTP_HOST not set, mail will only be logged")
		return mail.NewLogMailer(logger.Component("mail")), nil
	}
	return mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.From,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
}
