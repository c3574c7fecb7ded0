package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/hicalign/cmo"
	"github.com/andrew-torda/hicalign/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, cmo.DefaultOptions(), c.Cmo())
	assert.Equal(t, 100000., c.Reciprocal().MaxDist)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "num_v: 3\nmethod: score\nlong_nw: false\nmax_dist: 50000\n")
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumV)
	assert.Equal(t, cmo.NWScore, c.Method)
	assert.False(t, c.LongNW)
	assert.True(t, c.LongDist, "missing keys keep defaults")
	assert.Equal(t, 50000., c.MaxDist)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "not found")
	_, err = config.Load(writeConfig(t, "num_v: [1, 2\n"))
	assert.ErrorContains(t, err, "parsing")
	_, err = config.Load(writeConfig(t, "method: manhattan\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.Load(writeConfig(t, "workers: -2\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSaveLoad(t *testing.T) {
	c := config.Default()
	c.NumV, c.Workers, c.Penalty = 4, 2, 12.5
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, config.Save(path, c))
	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
