package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GardenBot/internal/config"
	"GardenBot/internal/domain"
	"GardenBot/internal/formatter"
	"GardenBot/internal/infrastructure/storage"
	"GardenBot/internal/logging"
	"GardenBot/internal/usecase"
)

func testConfig(t *testing.T, sourceURL string) config.Config {
	t.Helper()
	return config.Config{
		Logging:  config.LoggingConfig{Level: "debug"},
		Telegram: config.TelegramConfig{BotToken: "123:abc", ChannelID: "@garden", ParseMode: "MarkdownV2"},
		Storage:  config.StorageConfig{Backend: config.BackendJSON, Path: filepath.Join(t.TempDir(), "posted.json")},
		Fetch:    config.FetchConfig{UserAgent: "test", TimeoutSeconds: 5},
		Pipeline: config.PipelineConfig{TipEvery: 10, Style: formatter.StyleDigest},
		Sources:  []config.SourceConfig{{URL: sourceURL}},
	}
}

func TestRunWithUnsupportedSourcesFindsNothing(t *testing.T) {
	t.Parallel()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/sad/")
	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer application.Close()

	res, err := application.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeNoCandidates, res.Outcome)
	assert.Zero(t, hits, "hosts without an adapter are never fetched")

	_, statErr := os.Stat(cfg.Storage.Path)
	assert.True(t, os.IsNotExist(statErr), "dry run leaves the store untouched")
}

func TestMigrateStoreRewritesLegacyShape(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "https://supersadovnik.ru/sad")
	legacyPath := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(legacyPath, []byte(`{"https://a/1": true, "https://a/2": true}`), 0o644))

	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer application.Close()

	postLog, shape, err := application.MigrateStore(context.Background(), legacyPath)
	require.NoError(t, err)
	assert.Equal(t, storage.ShapeLegacy, shape)
	assert.Equal(t, 2, postLog.PostsCount)

	data, err := os.ReadFile(cfg.Storage.Path)
	require.NoError(t, err)
	var written domain.PostLog
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, 2, written.PostsCount)
	assert.True(t, written.Has("https://a/1"))
	assert.True(t, written.Has("https://a/2"))
}
