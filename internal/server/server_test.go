package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/congo-pay/pocketbank/internal/config"
	"github.com/congo-pay/pocketbank/internal/infra"
	"github.com/congo-pay/pocketbank/internal/logging"
	"github.com/congo-pay/pocketbank/internal/records"
)

func TestNewServesHealthAndRendersErrors(t *testing.T) {
	logger := logging.Discard()
	res := &infra.Resources{Store: records.NewStore(records.NewMemoryBackend(), "", logger)}
	cfg := config.Config{AppName: "test", Port: "0", JWTSecret: "s", AccessTokenTTL: time.Minute}

	srv, err := New(cfg, res, nil, logger)
	require.NoError(t, err)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(config.Config{}, &infra.Resources{}, nil, logging.Discard())
	assert.Error(t, err)
}
