package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops-tools/staffdir/internal/audit"
	"github.com/peopleops-tools/staffdir/internal/auth"
	"github.com/peopleops-tools/staffdir/internal/directory"
	"github.com/peopleops-tools/staffdir/internal/records"
	"github.com/peopleops-tools/staffdir/pkg/cache/inmemory"
	"github.com/peopleops-tools/staffdir/pkg/common/structs"
	"github.com/peopleops-tools/staffdir/pkg/store"
)

type apiEnv struct {
	router     *gin.Engine
	auth       *auth.Service
	token      string
	auditRepo  *audit.InMemoryRepository
	recordRepo *records.InMemoryRepository
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recordRepo := records.NewInMemoryRepository()
	auditRepo := audit.NewInMemoryRepository()
	c, err := inmemory.NewCache(&inmemory.Config{DefaultExpiration: -1, CleanupInterval: -1})
	require.NoError(t, err)

	authService := auth.NewService(recordRepo, "test-secret", time.Minute, bcrypt.MinCost)
	directoryService := directory.NewService(recordRepo, store.New(c).Records, auditRepo, authService)

	router := NewRouter(&Handler{
		Directory: directoryService,
		Auth:      authService,
	}, CORSConfig{})

	// Seed the admin account that drives the tests.
	hash, err := authService.HashPassword("adminpass")
	require.NoError(t, err)
	admin := structs.Record{
		Username:  "admin",
		Name:      "Admin",
		Password:  hash,
		Role:      "admin",
		StartDate: "2020-01-01",
	}
	require.NoError(t, recordRepo.Insert(context.Background(), admin))

	token, err := authService.IssueToken(admin)
	require.NoError(t, err)

	return &apiEnv{
		router:     router,
		auth:       authService,
		token:      token.AccessToken,
		auditRepo:  auditRepo,
		recordRepo: recordRepo,
	}
}

func (e *apiEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func newEmployee() structs.Record {
	return structs.Record{
		Username:    "jdoe",
		Name:        "John Doe",
		Password:    "s3cret",
		Department:  "Eng",
		Designation: "Engineer",
		Email:       "jdoe@example.com",
		Phone:       9876543210,
		StartDate:   "2024-03-01",
		Role:        "user",
	}
}

func TestLogin(t *testing.T) {
	env := setupAPI(t)

	form := url.Values{"username": {"admin"}, "password": {"adminpass"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var token structs.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, "admin", token.Username)
	assert.Equal(t, "Admin", token.Name)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := setupAPI(t)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	env := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/tabledata", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/tabledata", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddAndTableData(t *testing.T) {
	env := setupAPI(t)

	// First read misses the cache and backfills the seeded admin.
	w := env.do(t, http.MethodGet, "/tabledata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)

	w = env.do(t, http.MethodPost, "/add", newEmployee())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/tabledata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2) // seeded admin + jdoe

	for _, u := range users {
		_, hasPassword := u["password"]
		assert.False(t, hasPassword, "password must never be serialized")
	}
}

func TestAdd_Duplicate(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/add", newEmployee())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/add", newEmployee())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdd_Validation(t *testing.T) {
	env := setupAPI(t)

	noPassword := newEmployee()
	noPassword.Password = ""
	w := env.do(t, http.MethodPost, "/add", noPassword)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	badDate := newEmployee()
	badDate.StartDate = "03/01/2024"
	w = env.do(t, http.MethodPost, "/add", badDate)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_ActorComesFromToken(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/add", newEmployee())
	require.Equal(t, http.StatusCreated, w.Code)

	// The client-supplied current parameter is ignored when the token
	// carries a subject.
	w = env.do(t, http.MethodPut, "/update/jdoe?current=spoofed", map[string]string{
		"department": "Sales",
	})
	require.Equal(t, http.StatusOK, w.Code)

	history, err := env.auditRepo.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, "admin", history[0].Actor)
	assert.Equal(t, "jdoe", history[0].Subject)
	assert.Contains(t, history[0].Action, "department from 'Eng' to 'Sales'")
}

func TestUpdate_NoChanges(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/add", newEmployee())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPut, "/update/jdoe", map[string]string{"department": "Eng"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No changes detected")
}

func TestUpdate_NotFound(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPut, "/update/ghost", map[string]string{"department": "Sales"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/add", newEmployee())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/delete/jdoe", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/delete/jdoe", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUniqueAndFilter(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/add", newEmployee())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/unique/department", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Eng")

	w = env.do(t, http.MethodGet, "/filter/department/Eng", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jdoe")

	w = env.do(t, http.MethodGet, "/unique/password", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSort(t *testing.T) {
	env := setupAPI(t)

	a := newEmployee()
	a.Username = "adoe"
	a.Department = "Sales"
	b := newEmployee()
	b.Username = "bsmith"
	b.Department = "Eng"
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/add", a).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/add", b).Code)

	w := env.do(t, http.MethodGet, "/sort?column=department&desc=false", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []structs.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "bsmith", users[0].Username)
	assert.Equal(t, "adoe", users[1].Username)
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := setupAPI(t)

	router := NewRouter(&Handler{
		Directory: nil,
		Auth:      env.auth,
	}, CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodGet, "/tabledata", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodOptions, "/tabledata", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
