package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"levelup/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv, err := New(Config{Addr: ":0", JWTSecret: "test-secret", DB: db})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func register(t *testing.T, h http.Handler, name, email, password string) authResponse {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(Config{Addr: ":0"})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginAndStateRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	reg := register(t, h, "Ana", "Ana@Example.com ", "hunter22")
	require.Equal(t, "ana@example.com", reg.User.Email, "email should normalize")

	// Register seeds a state carrying the user's name.
	rec := doJSON(t, h, http.MethodGet, "/api/state/", reg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var getOut struct {
		State struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &getOut))
	require.Equal(t, "Ana", getOut.State.User.Name)

	// Login with the same credentials.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, reg.User.ID, login.User.ID)

	// Save a blob and read it back.
	blob := map[string]any{"schema": 1, "tokens": 3}
	rec = doJSON(t, h, http.MethodPut, "/api/state/", login.Token, map[string]any{"state": blob})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/state/", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var echo struct {
		State struct {
			Tokens int `json:"tokens"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &echo))
	require.Equal(t, 3, echo.State.Tokens)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "", "password": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid_input"}`, rec.Body.String())

	register(t, h, "Ana", "ana@example.com", "hunter22")
	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "ana@example.com", "password": "other"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"email_taken"}`, rec.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	register(t, h, "Ana", "ana@example.com", "hunter22")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid_credentials"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStateRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/state/", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"missing_token"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/state/", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid_token"}`, rec.Body.String())
}

func TestPutStateRejectsNonObject(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	reg := register(t, h, "Ana", "ana@example.com", "hunter22")

	rec := doJSON(t, h, http.MethodPut, "/api/state/", reg.Token, map[string]any{"state": []int{1, 2}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid_input"}`, rec.Body.String())
}

func TestResetStateUsesProvidedName(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	reg := register(t, h, "Ana", "ana@example.com", "hunter22")

	rec := doJSON(t, h, http.MethodPost, "/api/state/reset", reg.Token, map[string]string{"name": "Fresh"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		State struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
			Progress struct {
				Level int `json:"level"`
			} `json:"progress"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Fresh", out.State.User.Name)
	require.Equal(t, 1, out.State.Progress.Level)
}
