package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vncsmyrnk/polls/internal/adapters/handler/http"
	"github.com/vncsmyrnk/polls/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/redis"
	"github.com/vncsmyrnk/polls/internal/core/ports"
	"github.com/vncsmyrnk/polls/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	var resultCache ports.ResultCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis unreachable at %s: %v", addr, err)
		}
		resultCache = redis.NewResultCache(client)
		slog.Info("result cache enabled", "addr", addr)
	}

	questionRepo := postgres.NewQuestionRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	queryService := services.NewPollQueryService(questionRepo, voteRepo, resultCache)
	votingService := services.NewVotingService(questionRepo, voteRepo, resultCache)
	questionService := services.NewQuestionService(questionRepo)
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier())
	userService := services.NewUserService(userRepo)

	pageHandler := http.NewPageHandler(queryService, votingService)
	questionHandler := http.NewQuestionHandler(questionService)
	authHandler := http.NewAuthHandler(
		authService,
		"/polls/",
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("COOKIE_DOMAIN"),
		stdhttp.SameSiteLaxMode,
	)
	userHandler := http.NewUserHandler(userService)

	handler := http.NewHandler(pageHandler, questionHandler, authHandler, userHandler)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
