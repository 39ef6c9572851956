package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{ChainName: "test"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "test", cfg.App.ChainName)
}

// TestBuild_EarlierSourceWins verifies that merging keeps a field already set
// by an earlier source.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Engine: Engine{Address: "http://env:9067"}},
		&StructuredConfig{Engine: Engine{Address: "http://json:9067", RequestTimeout: time.Minute}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://env:9067", cfg.Engine.Address)
	assert.Equal(t, time.Minute, cfg.Engine.RequestTimeout)
}

// TestBuild_RejectsUnknownChain verifies structured validation.
func TestBuild_RejectsUnknownChain(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{ChainName: "regtest"}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_CHAIN_NAME", "test")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "test", b.configs[0].App.ChainName)
}

// TestWithEnv_SetsErrorOnBadValue verifies env parse failures land in b.err.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("WORKERS_SYNC_RETRY_BUDGET", "many")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Len(t, b.configs, 1)
}

// TestWithFlags_SetsErrorOnBadFlag verifies flag parse failures land in b.err.
func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-sync-retries", "many"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.ServerURI = "https://lightd-main.zcashfr.io:443"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "https://lightd-main.zcashfr.io:443", b.configs[1].App.ServerURI)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the path from the earliest source
// is used, matching merge precedence.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	second := StructuredJSONConfig{}
	second.App.Version = "second"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "first", b.configs[3].App.Version)
}

// ── client view ───────────────────────────────────────────────────────────────

func TestNewClientConfig_Defaults(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{})

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultChainName, cfg.App.ChainName)
	assert.Equal(t, DefaultServerURI, cfg.App.ServerURI)
	assert.Equal(t, DefaultEngineAddress, cfg.Engine.Address)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultRefreshInterval, cfg.Workers.RefreshInterval)
	assert.Equal(t, DefaultChangeInterval, cfg.Workers.ChangeDetectInterval)
	assert.Equal(t, DefaultSyncRetryBudget, cfg.Workers.SyncRetryBudget)
}

func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{
		App:     App{ChainName: "test", RestoreSeed: "seed words", RestoreBirthday: 10},
		Workers: Workers{SyncRetryBudget: 5, SendPollInterval: time.Second},
	})

	assert.Equal(t, "test", cfg.App.ChainName)
	assert.Equal(t, "seed words", cfg.App.RestoreSeed)
	assert.Equal(t, int64(10), cfg.App.RestoreBirthday)
	assert.Equal(t, 5, cfg.Workers.SyncRetryBudget)
	assert.Equal(t, time.Second, cfg.Workers.SendPollInterval)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{"memory dsn", func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, ErrInvalidStorageConfigs},
		{"engine not http", func(c *ClientConfig) { c.Engine.Address = "127.0.0.1:9067" }, ErrInvalidEngineConfigs},
		{"server address empty", func(c *ClientConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"zero refresh", func(c *ClientConfig) { c.Workers.RefreshInterval = 0 }, ErrInvalidWorkerConfigs},
		{"unknown chain", func(c *ClientConfig) { c.App.ChainName = "regtest" }, ErrInvalidAppConfigs},
		{"bad server uri", func(c *ClientConfig) { c.App.ServerURI = "lightd" }, ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newClientConfig(&StructuredConfig{})
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}
