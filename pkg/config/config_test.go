package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissing)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [unclosed")

	_, err := Load(path)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissing)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `api:
  api_url: "https://x/?limit="
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Archive.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "logs/app.log", cfg.Log.File)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("ARCHIVER_TEST_HOST", "env.example.com")

	path := writeConfig(t, `api:
  api_url: "https://${ARCHIVER_TEST_HOST}/items/?limit="
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/items/?limit=", cfg.API.APIURL)
}

func TestFirstPageURL(t *testing.T) {
	tests := []struct {
		name    string
		apiURL  string
		limit   int
		want    string
		wantErr error
	}{
		{
			name:   "limit appended literally",
			apiURL: "https://x/?limit=",
			limit:  50,
			want:   "https://x/?limit=50",
		},
		{
			name:   "no separator validation",
			apiURL: "https://x/items/",
			limit:  20,
			want:   "https://x/items/20",
		},
		{
			name:    "missing key",
			apiURL:  "",
			limit:   50,
			wantErr: ErrKeyMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{API: APIConfig{APIURL: tt.apiURL}}

			got, err := cfg.FirstPageURL(tt.limit)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstPageURL_FromFile(t *testing.T) {
	path := writeConfig(t, `api:
  api_url: "https://x/?limit="
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	url, err := cfg.FirstPageURL(50)
	require.NoError(t, err)
	assert.Equal(t, "https://x/?limit=50", url)
}

func TestFirstPageURL_KeyMissingFromFile(t *testing.T) {
	path := writeConfig(t, `log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.FirstPageURL(50)
	assert.ErrorIs(t, err, ErrKeyMissing)
}
