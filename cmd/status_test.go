package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/osintex/cli/internal/catalog"
	"github.com/osintex/cli/internal/config"
	"github.com/osintex/cli/internal/favorites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeKV struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, value []byte) error
}

func (f *FakeKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key)
	}
	return nil, false, nil
}

func (f *FakeKV) Set(ctx context.Context, key string, value []byte) error {
	if f.SetFunc != nil {
		return f.SetFunc(ctx, key, value)
	}
	return nil
}

func testStatusCmd(t *testing.T, source catalog.Source, kv favorites.KV) StatusCmd {
	t.Helper()
	return StatusCmd{
		cfg: &config.Config{
			FavoritesBackend: config.BackendMemory,
			FavoritesKey:     favorites.DefaultKey,
			LogLevel:         "warn",
		},
		source:     source,
		kv:         kv,
		configFile: filepath.Join(t.TempDir(), "config.yaml"),
	}
}

func readStatus(t *testing.T, s StatusCmd) (statusResponse, error) {
	t.Helper()
	setupStdoutCapture(t)
	read := captureStdout(t)
	err := s.Status(context.Background(), StatusInput{Output: "json"})

	var resp statusResponse
	require.NoError(t, json.Unmarshal([]byte(read()), &resp))
	return resp, err
}

func TestStatus_Operational(t *testing.T) {
	kv := favorites.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), favorites.DefaultKey, []byte(`["Google::https://google.com"]`)))

	resp, err := readStatus(t, testStatusCmd(t, &FakeSource{LoadFunc: func(ctx context.Context) (*catalog.Catalog, error) {
		return testCatalog(), nil
	}}, kv))
	require.NoError(t, err)

	assert.Equal(t, statusOperational, resp.Status)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "6 tools in 3 categories", resp.Groups[0].Components[1].Detail)
	assert.Equal(t, "1 favorite", resp.Groups[1].Components[1].Detail)
	assert.Equal(t, "not found, using defaults", resp.Groups[2].Components[0].Detail)
}

func TestStatus_Degraded(t *testing.T) {
	tests := []struct {
		name       string
		kv         favorites.KV
		wantDetail string
	}{
		{
			name: "read failure",
			kv: &FakeKV{GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
				return nil, false, errors.New("keychain locked")
			}},
			wantDetail: "keychain locked",
		},
		{
			name: "not a list",
			kv: &FakeKV{GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
				return []byte(`{"a":1}`), true, nil
			}},
			wantDetail: "stored value is not a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := readStatus(t, testStatusCmd(t, &FakeSource{}, tt.kv))
			require.NoError(t, err)
			assert.Equal(t, statusDegraded, resp.Status)
			assert.Equal(t, statusDegraded, resp.Groups[1].Status)
			assert.Contains(t, resp.Groups[1].Components[1].Detail, tt.wantDetail)
		})
	}
}

func TestStatus_CatalogOutage(t *testing.T) {
	resp, err := readStatus(t, testStatusCmd(t, &FakeSource{LoadFunc: func(ctx context.Context) (*catalog.Catalog, error) {
		return nil, catalog.ErrMalformed
	}}, favorites.NewMemoryKV()))
	require.Error(t, err)

	assert.Equal(t, statusOutage, resp.Status)
	assert.Equal(t, statusOutage, resp.Groups[0].Status)
	assert.Equal(t, statusOperational, resp.Groups[1].Status)
}

func TestStatus_Text(t *testing.T) {
	setupStdoutCapture(t)
	s := testStatusCmd(t, &FakeSource{}, favorites.NewMemoryKV())

	require.NoError(t, s.Status(context.Background(), StatusInput{}))
	out := outBuf.String()
	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "Favorites")
	assert.Contains(t, out, "no favorites saved yet")
}
