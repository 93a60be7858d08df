package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	user *dmn.User
}

func (s *stubAuth) Register(username, password string) error {
	if username == s.user.Username {
		return dmn.ErrUsernameConflict
	}
	if len(password) < 8 {
		return dmn.ErrWeakPassword
	}
	return nil
}

func (s *stubAuth) SignIn(username, password string) (*dmn.User, string, error) {
	if username != s.user.Username || password != "secret-password" {
		return nil, "", dmn.ErrInvalidCredential
	}
	return s.user, "signed", nil
}

type stubTokenizer struct {
	id uuid.UUID
}

func (s stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "signed", nil
}

func (s stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "signed" {
		return nil, errors.New("invalid token")
	}
	return map[string]interface{}{"userID": s.id.String()}, nil
}

func newEngine(user *dmn.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/v1")
	NewIdentityServer(&stubAuth{user: user}).RegisterPublic(group)

	protected := engine.Group("/v1")
	protected.Use(Authoriz(stubTokenizer{id: user.ID}))
	protected.GET("/me", func(c *gin.Context) {
		id, err := UserID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return engine
}

func post(engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestIdentityServer(t *testing.T) {
	user := &dmn.User{ID: uuid.New(), Username: "tracker"}
	engine := newEngine(user)

	t.Run("register", func(t *testing.T) {
		rec := post(engine, "/v1/auth/register", AuthRequest{Username: "newcomer", Password: "secret-password"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = post(engine, "/v1/auth/register", AuthRequest{Username: "tracker", Password: "secret-password"})
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = post(engine, "/v1/auth/register", AuthRequest{Username: "newcomer", Password: "short"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = post(engine, "/v1/auth/register", map[string]string{"username": "newcomer"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec := post(engine, "/v1/auth/login", AuthRequest{Username: "tracker", Password: "secret-password"})
		require.Equal(t, http.StatusOK, rec.Code)

		var response AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, user.ID.String(), response.ID)
		assert.Equal(t, "signed", response.Token)

		rec = post(engine, "/v1/auth/login", AuthRequest{Username: "tracker", Password: "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthoriz(t *testing.T) {
	user := &dmn.User{ID: uuid.New(), Username: "tracker"}
	engine := newEngine(user)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "signed", http.StatusUnauthorized},
		{"wrong scheme", "Basic signed", http.StatusUnauthorized},
		{"invalid token", "Bearer forged", http.StatusUnauthorized},
		{"valid token", "Bearer signed", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, user.ID.String(), rec.Body.String())
			}
		})
	}
}
