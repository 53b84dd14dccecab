package router

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"dachioku-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without DATABASE_URL the app still boots and serves /health, reporting
// its dependencies as disabled.
func TestCreateApp_NoDatabase(t *testing.T) {
	app, db, rdb, err := CreateApp(&config.Config{Env: "test", Port: "0"})
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.Nil(t, rdb)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	deps, ok := result["dependencies"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "disabled", deps["database"])
	assert.Equal(t, "disabled", deps["redis"])
}
