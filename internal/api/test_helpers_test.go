package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/cyclekeeper/internal/db"
	"github.com/terraincognita07/cyclekeeper/internal/metrics"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	metrics  *metrics.Metrics
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclekeeper-api-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	registry := metrics.New()
	handler, err := NewHandler(database, Options{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		Metrics:   registry,
		Now:       func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return testApp{app: app, database: database, metrics: registry}
}

func signTestToken(t *testing.T, userID uint, expiresAt time.Time) string {
	t.Helper()
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authHeader(t *testing.T, userID uint) string {
	t.Helper()
	return "Bearer " + signTestToken(t, userID, time.Now().Add(time.Hour))
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, authorization string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response, raw
}

func decodeBody(t *testing.T, raw []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode body %s: %v", raw, err)
	}
}

func readAPIError(t *testing.T, raw []byte) string {
	t.Helper()
	payload := map[string]string{}
	decodeBody(t, raw, &payload)
	return payload["error"]
}

func expectStatus(t *testing.T, response *http.Response, raw []byte, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, raw)
	}
}
