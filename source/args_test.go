package source

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_Read(t *testing.T) {
	a := NewArgs(map[string]string{
		"server.port": "9000",
		"debug":       "true",
	})

	lk, err := a.Read(ParsePath("server.port"))
	require.NoError(t, err)
	assert.True(t, lk.Found)
	assert.False(t, lk.Typed, "argument values are raw strings")
	assert.Equal(t, "9000", lk.Value)

	lk, err = a.Read(ParsePath("server.host"))
	require.NoError(t, err)
	assert.False(t, lk.Found)
}

func TestArgs_Unset(t *testing.T) {
	a := NewArgs(nil)
	a.Unset("server.port")

	lk, err := a.Read(ParsePath("server.port"))
	require.NoError(t, err)
	assert.True(t, lk.Found)
	assert.True(t, lk.Tombstone)
}

func TestArgs_Enumerate(t *testing.T) {
	a := NewArgs(map[string]string{
		"debug":          "true",
		"server.port":    "9000",
		"server.host":    "example.com",
		"server.tls.key": "k.pem",
	})
	a.Unset("dropped")

	keys, err := a.Keys(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"debug", "dropped"}, keys, "tombstoned names still enumerate at the adapter level")

	sections, err := a.Sections(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"server"}, sections)

	keys, err = a.Keys(ParsePath("server"))
	require.NoError(t, err)
	assert.Equal(t, []string{"host", "port"}, keys)

	sections, err = a.Sections(ParsePath("server"))
	require.NoError(t, err)
	assert.Equal(t, []string{"tls"}, sections)
}

func TestFromFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("server.port", "8080", "")
	fs.String("server.host", "localhost", "")
	require.NoError(t, fs.Parse([]string{"--server.port=9000"}))

	a := FromFlagSet(fs)

	lk, err := a.Read(ParsePath("server.port"))
	require.NoError(t, err)
	assert.True(t, lk.Found)
	assert.Equal(t, "9000", lk.Value)

	lk, err = a.Read(ParsePath("server.host"))
	require.NoError(t, err)
	assert.False(t, lk.Found, "untouched flag defaults contribute nothing")
}
