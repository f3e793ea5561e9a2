package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/config"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/middleware"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret"

// ── Helpers ──────────────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{
		Env:                 "test",
		JWTSecret:           testSecret,
		DBSerializable:      true,
		DBMaxRetries:        3,
		PrixCacheTTLMinutes: 5,
		DocumentQueue:       "carco:test:documents",
		RateLimitPerMinute:  10000,
		CORSOrigin:          "*",
	}
}

func newServer(t *testing.T, db *gorm.DB, rdb *redis.Client) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(router.New(testConfig(), db, rdb))
	t.Cleanup(srv.Close)
	return srv
}

func token(t *testing.T, companyID uuid.UUID, role string) string {
	t.Helper()
	tok, err := middleware.SignToken(testSecret, uuid.NewString(), companyID.String(), role, time.Hour)
	require.NoError(t, err)
	return tok
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// seedBatiment creates a building with two units through the API and returns
// their ids.
func seedBatiment(t *testing.T, srv *httptest.Server, adminToken string) (batimentID string, ugIDs []string) {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/admin/batiments",
		jsonBody(t, map[string]any{"nom": "Pépinière Nord", "adresse": "1 rue des Ateliers"}), adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var b struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &b)

	for _, nom := range []string{"B101", "B102"} {
		resp := do(t, srv, http.MethodPost, "/admin/batiments/"+b.ID+"/ugs",
			jsonBody(t, map[string]any{"nom": nom, "nature": "bureau", "surface": "18.5"}), adminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var u struct {
			ID string `json:"id"`
		}
		decodeJSON(t, resp, &u)
		ugIDs = append(ugIDs, u.ID)
	}
	return b.ID, ugIDs
}
