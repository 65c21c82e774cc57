package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildStack_LayerOrder(t *testing.T) {
	yamlPath := writeFile(t, "app.yaml", "timeout: 10\n")

	cfg, err := buildStack(&stackFlags{
		Defaults: []string{"timeout=30"},
		Sources:  []string{"yaml:" + yamlPath},
		Sets:     []string{"timeout=5"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"args", "yaml:" + yamlPath, "defaults"}, cfg.Layers())

	// Highest layer wins, typed by the defaults.
	v, err := cfg.Get("timeout")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestBuildStack_SourceKinds(t *testing.T) {
	ini := writeFile(t, "a.ini", "k = 1\n")
	jsonPath := writeFile(t, "b.json", `{"k": 2}`)
	yml := writeFile(t, "c.yml", "k: 3\n")

	cfg, err := buildStack(&stackFlags{
		Sources:     []string{"ini:" + ini, "json:" + jsonPath, "yml:" + yml},
		EtcdTimeout: "5s",
	})
	require.NoError(t, err)

	v, err := cfg.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 3, v, "last listed source wins")

	_, err = buildStack(&stackFlags{Sources: []string{"toml:x.toml"}})
	assert.ErrorContains(t, err, "unknown kind")

	_, err = buildStack(&stackFlags{Sources: []string{"no-colon"}})
	assert.ErrorContains(t, err, "want kind:ref")
}

func TestBuildStack_EnvLayer(t *testing.T) {
	t.Setenv("STRATTEST_TIMEOUT", "7")

	cfg, err := buildStack(&stackFlags{
		Defaults:  []string{"timeout=30"},
		EnvPrefix: "STRATTEST",
	})
	require.NoError(t, err)

	v, err := cfg.Get("timeout")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestBuildStack_UnsetFlag(t *testing.T) {
	cfg, err := buildStack(&stackFlags{
		Defaults: []string{"token=abc"},
		Unsets:   []string{"token"},
	})
	require.NoError(t, err)

	assert.False(t, cfg.Has("token"))
}

func TestBuildStack_WriteTo(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "store.yaml")
	spec := "yaml:" + yamlPath

	cfg, err := buildStack(&stackFlags{
		Defaults: []string{"timeout=30"},
		Sources:  []string{spec},
		WriteTo:  spec,
	})
	require.NoError(t, err)
	assert.Equal(t, spec, cfg.WritableLayerName())

	require.NoError(t, cfg.Set("timeout", 60))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 60")

	_, err = buildStack(&stackFlags{
		Defaults: []string{"timeout=30"},
		WriteTo:  "no-such-layer",
	})
	assert.ErrorContains(t, err, "matches no layer")
}

func TestBuildStack_Validation(t *testing.T) {
	_, err := buildStack(&stackFlags{})
	assert.ErrorContains(t, err, "no layers")

	_, err = buildStack(&stackFlags{Defaults: []string{"missing-equals"}})
	assert.ErrorContains(t, err, "want path=value")

	_, err = buildStack(&stackFlags{Sets: []string{"also-missing"}})
	assert.ErrorContains(t, err, "want path=value")
}

func TestGuessType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "Int", raw: "42", want: 42},
		{name: "Float", raw: "2.5", want: 2.5},
		{name: "BoolTrue", raw: "True", want: true},
		{name: "BoolFalse", raw: "false", want: false},
		{name: "String", raw: "localhost", want: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guessType(tt.raw))
		})
	}
}
