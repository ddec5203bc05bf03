package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")
	require.NoError(t, NewHealthHandler(nil).Liveness(c))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
	require.NoError(t, NewHealthHandler(map[string]Pinger{"mongodb": ok, "redis": ok}).Readiness(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newJSONContext(http.MethodGet, "/health/ready", "")
	require.NoError(t, NewHealthHandler(map[string]Pinger{"mongodb": ok, "redis": down}).Readiness(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp readinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "ok", resp.Dependencies["mongodb"].Status)
	assert.Equal(t, dependencyStatus{Status: "unhealthy", Error: "connection refused"}, resp.Dependencies["redis"])
}
