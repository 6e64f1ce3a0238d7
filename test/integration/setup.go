package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vncsmyrnk/polls/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/polls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
	"github.com/vncsmyrnk/polls/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type mockVerifier struct {
	email string
}

func (v *mockVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	if token == "valid_token" {
		return &ports.TokenPayload{Email: v.email, Name: "Test User"}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	questionRepo := repo.NewQuestionRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)

	queryService := services.NewPollQueryService(questionRepo, voteRepo, nil)
	votingService := services.NewVotingService(questionRepo, voteRepo, nil)
	questionService := services.NewQuestionService(questionRepo)
	authService := services.NewAuthService(userRepo, authRepo, &mockVerifier{email: "test@example.com"})
	userService := services.NewUserService(userRepo)

	pageHandler := handler.NewPageHandler(queryService, votingService)
	questionHandler := handler.NewQuestionHandler(questionService)
	authHandler := handler.NewAuthHandler(authService, "/polls/", "test-client-id", "", http.SameSiteLaxMode)
	userHandler := handler.NewUserHandler(userService)

	router := handler.NewHandler(pageHandler, questionHandler, authHandler, userHandler)
	server := httptest.NewServer(router)

	// Redirects are asserted on directly, never followed.
	client := server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      client,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func createUserAndToken(t *testing.T, db *sql.DB) string {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	name := fmt.Sprintf("User %s", userID)
	_, err := db.Exec("INSERT INTO users (id, email, name) VALUES ($1, $2, $3)", userID, email, name)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signedToken
}

// createQuestion drives the authoring API so the handler path is exercised
// along the way.
func createQuestion(t *testing.T, app *TestApp, text string, publishAt time.Time, closeAt *time.Time, choices ...string) domain.Question {
	t.Helper()

	payload := map[string]interface{}{
		"text":       text,
		"publish_at": publishAt,
		"choices":    choices,
	}
	if closeAt != nil {
		payload["close_at"] = *closeAt
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := app.Client.Post(app.Server.URL+"/api/polls", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var question domain.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&question))
	return question
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return buf.String()
}
