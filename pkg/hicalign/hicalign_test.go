package hicalign

import (
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/hicio"
	"github.com/andrew-torda/hicalign/pkg/config"
	"github.com/andrew-torda/hicalign/pkg/randhic"
)

func init() { logrus.SetLevel(logrus.ErrorLevel) }

// wrtMap puts m in a file in dir.
func wrtMap(t *testing.T, dir, name string, m mat.Matrix) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	fp, err := os.Create(fname)
	require.NoError(t, err)
	require.NoError(t, hicio.WriteMatrix(fp, m))
	require.NoError(t, fp.Close())
	return fname
}

func TestSettings(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "c.yaml")
	c := config.Default()
	c.NumV, c.Method = 5, "score"
	require.NoError(t, config.Save(cfile, c))

	flags := &CmdFlag{Config: cfile, NumV: 2, Short: true}
	got, err := settings(flags)
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumV, "flag not given, file wins")
	assert.True(t, got.LongNW)

	flags.Set = map[string]bool{"n": true, "s": true}
	got, err = settings(flags)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumV)
	assert.False(t, got.LongNW)
	assert.Equal(t, "score", got.Method)

	flags = &CmdFlag{Method: "bad", Set: map[string]bool{"d": true}}
	_, err = settings(flags)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSelf(t *testing.T) {
	dir := t.TempDir()
	rnd := rand.New(rand.NewSource(3))
	m, _ := randhic.Map(24, 3, 0.05, rnd)
	f1 := wrtMap(t, dir, "a", m)
	f2 := wrtMap(t, dir, "b", m)
	outfile := filepath.Join(dir, "out")
	pfile := filepath.Join(dir, "out.png")
	flags := &CmdFlag{NumV: 3, Plot: pfile, Set: map[string]bool{"n": true}}
	require.NoError(t, Mymain(flags, f1, f2, outfile))

	b, err := os.ReadFile(outfile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.True(t, strings.HasPrefix(lines[0], "# dist 0 "), lines[0])
	var body []string
	for _, l := range lines {
		if !strings.HasPrefix(l, "#") {
			body = append(body, l)
		}
	}
	require.Len(t, body, 24)
	assert.Equal(t, "0\t0", body[0])
	assert.Equal(t, "23\t23", body[23])

	fp, err := os.Open(pfile)
	require.NoError(t, err)
	defer fp.Close()
	img, err := png.Decode(fp)
	require.NoError(t, err)
	assert.Equal(t, 24*4, img.Bounds().Dx())
}

func TestGaps(t *testing.T) {
	dir := t.TempDir()
	rnd := rand.New(rand.NewSource(5))
	m, _ := randhic.Map(30, 4, 0.02, rnd)
	small, _ := randhic.DelBins(m, 3, rnd)
	f1 := wrtMap(t, dir, "a", m)
	f2 := wrtMap(t, dir, "b", small)
	outfile := filepath.Join(dir, "out")
	flags := &CmdFlag{NumV: 2, Workers: 2, Set: map[string]bool{"n": true, "w": true}}
	require.NoError(t, Mymain(flags, f1, f2, outfile))

	b, err := os.ReadFile(outfile)
	require.NoError(t, err)
	var n1, n2 int
	for _, l := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if strings.HasPrefix(l, "#") {
			continue
		}
		f := strings.Split(l, "\t")
		require.Len(t, f, 2)
		if f[0] != hicio.GapMark {
			n1++
		}
		if f[1] != hicio.GapMark {
			n2++
		}
	}
	assert.Equal(t, 30, n1, "every bin of the first map appears once")
	assert.Equal(t, 27, n2)
}

func TestBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := wrtMap(t, dir, "a", mat.NewDense(2, 2, []float64{1, 0, 0, 1}))
	flags := &CmdFlag{}
	err := Mymain(flags, good, filepath.Join(dir, "not_there"), filepath.Join(dir, "out"))
	assert.Error(t, err)

	asym := wrtMap(t, dir, "b", mat.NewDense(2, 2, []float64{1, 2, 0, 1}))
	err = Mymain(flags, good, asym, filepath.Join(dir, "out"))
	assert.Error(t, err)
}
