package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/NagbhushanPai/Incubyte-Project/internal/events"
	"github.com/NagbhushanPai/Incubyte-Project/internal/models"
	"github.com/NagbhushanPai/Incubyte-Project/internal/repo"
	"github.com/NagbhushanPai/Incubyte-Project/internal/service"
	"github.com/NagbhushanPai/Incubyte-Project/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Sweet{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	gormRepo := &repo.GormRepo{DB: db}
	prod := events.NewProducer(nil)

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{
			Svc:      &service.AuthService{Repo: gormRepo, JWTSecret: testSecret, TokenTTL: 7 * 24 * time.Hour},
			Producer: prod,
		},
		SweetHandler: &SweetHTTP{
			Svc:      &service.SweetService{Repo: gormRepo},
			Producer: prod,
		},
		JWTSecret: testSecret,
	})

	return &testEnv{t: t, e: e, db: db}
}

func (env *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) registerUser(email string) string {
	env.t.Helper()

	rec := env.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.t, resp.Token)
	return resp.Token
}

// adminToken signs a token directly: tokens are self-contained, the server
// never looks the user up again.
func (env *testEnv) adminToken() string {
	env.t.Helper()

	token, err := tokens.SignAccessToken(uuid.NewString(), models.RoleAdmin, testSecret, time.Hour)
	require.NoError(env.t, err)
	return token
}

func (env *testEnv) createSweet(token, name, category string, price float64, quantity int64) models.Sweet {
	env.t.Helper()

	rec := env.request(http.MethodPost, "/api/sweets", token, map[string]any{
		"name":     name,
		"category": category,
		"price":    price,
		"quantity": quantity,
	})
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())

	var sweet models.Sweet
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &sweet))
	return sweet
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}
