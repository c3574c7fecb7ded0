package tadalign_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/hicalign/hicio"
	"github.com/andrew-torda/hicalign/pkg/common"
	"github.com/andrew-torda/hicalign/pkg/tadalign"
)

func tmpFile(t *testing.T, s string) string {
	t.Helper()
	fname, err := common.WrtTemp(s)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(fname) })
	return fname
}

func TestMymain(t *testing.T) {
	f1 := tmpFile(t, "10000\n30000\n")
	f2 := tmpFile(t, "# second\n10000 20000 30000\n")
	outfile := filepath.Join(t.TempDir(), "out")
	require.NoError(t, tadalign.Mymain(&tadalign.CmdFlag{}, f1, f2, outfile))
	b, err := os.ReadFile(outfile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "10000\t10000\n-\t20000\n30000\t30000\n")
	assert.Contains(t, string(b), "# score 0 penalty 30000\n")
}

func TestFlagsWin(t *testing.T) {
	f1 := tmpFile(t, "0\n")
	f2 := tmpFile(t, "50\n")
	outfile := filepath.Join(t.TempDir(), "out")
	flags := &tadalign.CmdFlag{MaxDist: 10, Penalty: 2, Set: map[string]bool{"d": true, "p": true}}
	require.NoError(t, tadalign.Mymain(flags, f1, f2, outfile))
	b, err := os.ReadFile(outfile)
	require.NoError(t, err)
	assert.Equal(t, "# score 1 penalty 2\n0\t-\n-\t50\n", string(b))
}

func TestErrors(t *testing.T) {
	good := tmpFile(t, "1\n2\n")
	outfile := filepath.Join(t.TempDir(), "out")
	err := tadalign.Mymain(&tadalign.CmdFlag{}, good, tmpFile(t, "3\n1\n"), outfile)
	assert.ErrorIs(t, err, hicio.ErrUnsorted)

	flags := &tadalign.CmdFlag{Penalty: -1, Set: map[string]bool{"p": true}}
	assert.Error(t, tadalign.Mymain(flags, good, good, outfile))
}
