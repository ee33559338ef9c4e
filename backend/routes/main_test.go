package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/database"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

type response struct {
	Status int
	Body   map[string]interface{}
}

func (r response) data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

func (r response) list() []interface{} {
	list, _ := r.Body["data"].([]interface{})
	return list
}

func setup(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		JWTSecret:   "testsecret",
		JWTTTL:      time.Hour,
		FrontendURL: "http://localhost:3000",
		Environment: "test",
	}
	logger := log.New(io.Discard, "", 0)
	return &testServer{app: NewApp(db, cfg, logger), db: db, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{Status: resp.StatusCode}
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(payload) > 0 {
		require.NoError(t, json.Unmarshal(payload, &out.Body), string(payload))
	}
	return out
}

// user inserts an account directly and returns it with a session token.
func (s *testServer) user(t *testing.T, email string, role models.Role) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: email, Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, s.db.Create(u).Error)

	token, err := utils.GenerateJWTToken(u.ID, s.cfg.JWTSecret, s.cfg.JWTTTL)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) course(t *testing.T, token string) uint {
	t.Helper()
	resp := s.do(t, "POST", "/api/courses", token, map[string]interface{}{
		"title":       "Concurrency in Go",
		"description": "Goroutines and channels",
		"category":    "programming",
		"price":       25,
	})
	require.Equal(t, fiber.StatusCreated, resp.Status, resp.Body)
	return uint(resp.data()["id"].(float64))
}

func id(v interface{}) uint {
	return uint(v.(float64))
}
