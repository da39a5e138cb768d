// Package integration provides end-to-end tests of the credvault API against
// PostgreSQL and MySQL.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/credvault/internal/app"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/config"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
	"github.com/allisson/credvault/internal/testutil"
)

const (
	testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	adminEmail        = "admin@example.com"
	adminPassword     = "Adm1n!pass"
	userEmail         = "user@example.com"
	userPassword      = "Us3r!pass"
)

var drivers = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// integrationTestContext holds the running API and the tokens of both roles.
type integrationTestContext struct {
	container  *app.Container
	db         *sql.DB
	server     *httptest.Server
	cancel     context.CancelFunc
	adminToken string
	userToken  string
	dbDriver   string
}

func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	_ = resp.Body.Close()

	return resp, respBody
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func (ctx *integrationTestContext) login(t *testing.T, email, password string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
		map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	token, ok := decode(t, body)["token"].(string)
	require.True(t, ok)
	return token
}

func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := testutil.SetupDB(t, dbDriver)

	cfg := &config.Config{
		AppEnv:               "test",
		DBDriver:             dbDriver,
		DBConnectionString:   testutil.GetTestDSN(dbDriver),
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		EncryptionKey:        testEncryptionKey,
		JWTSecret:            "integration-test-secret",
		AuthTokenExpiration:  time.Hour,
	}

	container := app.NewContainer(cfg)

	staffUseCase, err := container.StaffUseCase()
	require.NoError(t, err, "failed to get staff use case")

	bg := context.Background()
	_, err = staffUseCase.Provision(bg, &staffDomain.CreateStaffInput{
		Name: "Admin", Email: adminEmail, Password: adminPassword, Role: authDomain.RoleAdmin,
	})
	require.NoError(t, err, "failed to provision admin")
	_, err = staffUseCase.Provision(bg, &staffDomain.CreateStaffInput{
		Name: "User", Email: userEmail, Password: userPassword, Role: authDomain.RoleUser,
	})
	require.NoError(t, err, "failed to provision user")

	srvCtx, cancel := context.WithCancel(bg)
	httpSrv, err := container.HTTPServer(srvCtx)
	require.NoError(t, err, "failed to get HTTP server")

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(httpSrv.GetHandler()),
		cancel:    cancel,
		dbDriver:  dbDriver,
	}
	ctx.adminToken = ctx.login(t, adminEmail, adminPassword)
	ctx.userToken = ctx.login(t, userEmail, userPassword)
	return ctx
}

func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	ctx.server.Close()
	ctx.cancel()
	if err := ctx.container.Shutdown(context.Background()); err != nil {
		t.Logf("Warning: container shutdown error: %v", err)
	}
	testutil.TeardownDB(t, ctx.db)
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "healthy", decode(t, body)["status"])

			resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "ready", decode(t, body)["status"])
		})
	}
}

func TestIntegration_Auth_Flow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_WrongPassword", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
					map[string]string{"email": adminEmail, "password": "Wr0ng!pass"}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("02_UnknownEmailIsIndistinguishable", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
					map[string]string{"email": "ghost@example.com", "password": "Wr0ng!pass"}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				_, wrong := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
					map[string]string{"email": adminEmail, "password": "Wr0ng!pass"}, "")
				assert.JSONEq(t, string(wrong), string(body))
			})

			t.Run("03_MissingToken", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/clients", nil, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("04_Logout", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/logout", nil, ctx.userToken)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			})

			t.Run("05_UserCannotManageStaff", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/staff", nil, ctx.userToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("06_AdminListsStaff", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/staff", nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				staff, ok := decode(t, body)["staff"].([]any)
				require.True(t, ok)
				assert.Len(t, staff, 2)
			})
		})
	}
}

func TestIntegration_Vault_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var clientID, credentialID, storedBlob string

			t.Run("01_UserCreatesClient", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/clients", map[string]string{
					"clientName":    "Acme Corp",
					"contactPerson": "Wile E.",
					"email":         "ops@acme.example",
				}, ctx.userToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				client := decode(t, body)
				clientID = client["id"].(string)
				assert.Equal(t, userEmail, client["createdBy"])
			})

			t.Run("02_UserCreatesCredential", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/credentials", map[string]any{
					"clientId":    clientID,
					"serviceName": "Hosting Panel",
					"username":    "acme-admin",
					"password":    "s3cr3t-value",
					"url":         "https://panel.example.com",
				}, ctx.userToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				credential := decode(t, body)
				credentialID = credential["id"].(string)
				storedBlob = credential["password"].(string)
				assert.NotEqual(t, "s3cr3t-value", storedBlob)
				assert.Equal(t, "general", credential["credentialType"])
			})

			t.Run("03_PlaintextIsNotStored", func(t *testing.T) {
				assert.Equal(t, 1, testutil.CountRows(t, ctx.db, "credentials"))

				var stored string
				query := "SELECT password FROM credentials"
				require.NoError(t, ctx.db.QueryRow(query).Scan(&stored))
				assert.Equal(t, storedBlob, stored)
				assert.NotContains(t, stored, "s3cr3t-value")
			})

			t.Run("04_OwnerDecrypts", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost,
					"/v1/credentials/"+credentialID+"/decrypt", nil, ctx.userToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
				assert.Equal(t, "s3cr3t-value", decode(t, body)["password"])
			})

			t.Run("05_AdminDecryptsThroughBypass", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost,
					"/v1/credentials/"+credentialID+"/decrypt", nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
				assert.Equal(t, "s3cr3t-value", decode(t, body)["password"])
			})

			t.Run("06_UpdateReencryptsPassword", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPatch, "/v1/credentials/"+credentialID,
					map[string]string{"password": "rotated-value"}, ctx.userToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
				assert.NotEqual(t, storedBlob, decode(t, body)["password"])

				_, body = ctx.makeRequest(t, http.MethodPost,
					"/v1/credentials/"+credentialID+"/decrypt", nil, ctx.userToken)
				assert.Equal(t, "rotated-value", decode(t, body)["password"])
			})

			t.Run("07_ListByClient", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					"/v1/credentials?client_id="+clientID, nil, ctx.userToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
				credentials := decode(t, body)["credentials"].([]any)
				assert.Len(t, credentials, 1)
			})

			t.Run("08_ExportDecryptsAll", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					"/v1/clients/"+clientID+"/export", nil, ctx.userToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				export := decode(t, body)
				assert.Equal(t, "Acme Corp", export["clientName"])
				credentials := export["credentials"].([]any)
				require.Len(t, credentials, 1)
				assert.Equal(t, "rotated-value", credentials[0].(map[string]any)["password"])
			})

			t.Run("09_AuditTrailIsRecorded", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					"/v1/audit-logs?action=DECRYPT_CREDENTIAL", nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				logs := decode(t, body)["logs"].([]any)
				require.GreaterOrEqual(t, len(logs), 3)
				for _, raw := range logs {
					assert.Equal(t, "DECRYPT_CREDENTIAL", raw.(map[string]any)["action"])
				}
				assert.NotContains(t, string(body), "rotated-value")
			})

			t.Run("10_DeleteClientCascades", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/clients/"+clientID, nil, ctx.userToken)
				require.Equal(t, http.StatusNoContent, resp.StatusCode)

				assert.Equal(t, 0, testutil.CountRows(t, ctx.db, "credentials"))

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/credentials/"+credentialID, nil, ctx.userToken)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

func TestIntegration_Ownership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/clients",
				map[string]string{"clientName": "Admin Client"}, ctx.adminToken)
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
			clientID := decode(t, body)["id"].(string)

			resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/credentials", map[string]any{
				"clientId":    clientID,
				"serviceName": "Database",
				"username":    "root",
				"password":    "admin-only",
			}, ctx.adminToken)
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
			credentialID := decode(t, body)["id"].(string)

			resp, _ = ctx.makeRequest(t, http.MethodPost,
				"/v1/credentials/"+credentialID+"/decrypt", nil, ctx.userToken)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/clients/"+clientID, nil, ctx.userToken)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)

			resp, body = ctx.makeRequest(t, http.MethodGet,
				"/v1/audit-logs?action=DECRYPT_CREDENTIAL", nil, ctx.adminToken)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			logs := decode(t, body)["logs"].([]any)
			require.Len(t, logs, 1)
			assert.Equal(t, false, logs[0].(map[string]any)["success"])
		})
	}
}
