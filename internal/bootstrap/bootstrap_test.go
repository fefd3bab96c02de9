package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/handler"
	"github.com/osse101/FarmBot_Go/internal/server"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Port:                   0,
		APIKey:                 "bootstrap-key",
		Environment:            "test",
		LogLevel:               "info",
		LogFormat:              "text",
		LogDir:                 dir,
		StorageBackend:         config.StorageBackendMemory,
		ConfirmTimeout:         time.Minute,
		ConfirmCapacity:        16,
		FarmTimezone:           "UTC",
		EventMaxRetries:        1,
		EventRetryDelay:        time.Millisecond,
		EventDeadLetterPath:    filepath.Join(dir, "dl", "deadletter.jsonl"),
		JournalRetention:       time.Hour,
		JournalCleanupInterval: time.Hour,
	}
}

func TestNewApp_MemoryBackend(t *testing.T) {
	cfg := memoryConfig(t)
	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	defer app.Shutdown(ctx)

	assert.Nil(t, app.Storage.DB)
	assert.NotNil(t, app.Scheduler)
	assert.NotNil(t, app.Events)
	assert.DirExists(t, filepath.Join(cfg.LogDir, "dl"))

	h := app.Server.Handler()
	req := httptest.NewRequest(http.MethodPost, server.APIPrefix+"/farm/register", strings.NewReader(`{"uid":"alice"}`))
	req.Header.Set(server.HeaderAPIKey, cfg.APIKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the journal sees events published through the resilient publisher
	req = httptest.NewRequest(http.MethodGet, server.APIPrefix+"/farm/activity?uid=alice", nil)
	req.Header.Set(server.HeaderAPIKey, cfg.APIKey)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var activity handler.ActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activity))
	require.Len(t, activity.Entries, 1)
	assert.Equal(t, domain.EventTypeUserRegistered, activity.Entries[0].EventType)
}

func TestNewApp_BadCatalogPath(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedLoadCatalog)
}

func TestInitializeStorage_UnknownBackend(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.StorageBackend = "sqlite"

	_, err := InitializeStorage(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownStorageBackend)
}

func TestStealCooldown(t *testing.T) {
	c := catalog.MustParse([]byte(`
version: 1
crops:
  - {id: carrot, name: Carrot, growth_seconds: 60, stage_count: 1, yield_amount: 1, buy_price: 1, sell_price: 1}
upgrades:
  - {level: 1}
theft:
  cooldown_seconds: 90
`), catalog.FormatYAML)

	cfg := &config.Config{}
	assert.Equal(t, 90*time.Second, StealCooldown(cfg, c))

	override := time.Duration(0)
	cfg.StealCooldown = &override
	assert.Zero(t, StealCooldown(cfg, c))
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	cleanupLogs(dir, 2)

	assert.NoFileExists(t, filepath.Join(dir, names[0]))
	assert.FileExists(t, filepath.Join(dir, names[1]))
	assert.FileExists(t, filepath.Join(dir, names[2]))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSetupLogger(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.LogDir = filepath.Join(cfg.LogDir, "nested")

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, strings.HasPrefix(filepath.Base(f.Name()), "session_"))
	assert.FileExists(t, f.Name())
}
