// 8 Oct 2026

// Package aleigen talks to the external aleigen contact map aligner.
// Contact maps go to it as lists of binary contacts. It answers on
// standard output with a score block and then one aligned index pair
// per line.
package aleigen

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/hicalign/matrix"
	"github.com/andrew-torda/hicalign/nw"
)

// Exe is the name of the program, looked for on the PATH.
const Exe = "aleigen"

var (
	ErrNoContacts = errors.New("aleigen: no contacts")
	ErrParse      = errors.New("aleigen: cannot parse output")
)

// Contact is a pair of bins in contact, I <= J.
type Contact struct{ I, J int }

// median of all the elements of m, the mean of the middle two if there
// is an even number.
func median(m mat.Matrix) float64 {
	r, c := m.Dims()
	x := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x = append(x, m.At(i, j))
		}
	}
	if len(x) == 0 {
		return 0
	}
	sort.Float64s(x)
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}
	return (x[n/2-1] + x[n/2]) / 2
}

// BinaryContacts says that two bins are in contact if their value is
// above the median of the whole matrix. Only the upper triangle and the
// diagonal are looked at. The Contact list is in row order and the byte
// matrix has a 1 at each contact.
func BinaryContacts(m mat.Matrix) (*matrix.BMatrix2d, []Contact) {
	cutoff := median(m)
	n, _ := m.Dims()
	bm := matrix.NewBMatrix2d(n, n)
	var contacts []Contact
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if m.At(i, j) > cutoff {
				contacts = append(contacts, Contact{i, j})
				bm.Mat[i][j] = 1
			}
		}
	}
	return bm, contacts
}

// WriteContacts writes the format aleigen reads. The first line is the
// number of nodes, one more than the biggest index, then "i j" lines.
func WriteContacts(w io.Writer, contacts []Contact) error {
	if len(contacts) == 0 {
		return ErrNoContacts
	}
	biggest := 0
	for _, c := range contacts {
		biggest = max(biggest, c.I, c.J)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, biggest+1)
	for _, c := range contacts {
		fmt.Fprintln(bw, c.I, c.J)
	}
	return bw.Flush()
}

// Result is what we get back from aleigen. Score holds whatever numbers
// followed the score header, usually one.
type Result struct {
	Score []float64
	A, B  []int
}

// Alignment gives the pairs as a gap free alignment.
func (r *Result) Alignment() nw.Alignment {
	return nw.Alignment{A: r.A, B: r.B}
}

var (
	scoreRe = regexp.MustCompile(`Score\s+C1\s+C2\s+CMO\n([0-9.]+)\s+[0-9]+\s+.*`)
	pairRe  = regexp.MustCompile(`^[0-9]+\s+[0-9]+`)
)

// Parse reads aleigen's output. Pairs are only looked for from the third
// line on.
func Parse(out []byte) (*Result, error) {
	var res Result
	for _, m := range scoreRe.FindAllSubmatch(out, -1) {
		x, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: score %q: %w", ErrParse, m[1], err)
		}
		res.Score = append(res.Score, x)
	}
	lines := strings.Split(string(out), "\n")
	for n := 2; n < len(lines); n++ {
		line := lines[n]
		if !pairRe.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d %q", ErrParse, n+1, line)
		}
		i, err1 := strconv.Atoi(fields[0])
		j, err2 := strconv.Atoi(fields[1])
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, n+1, err)
		}
		res.A = append(res.A, i)
		res.B = append(res.B, j)
	}
	return &res, nil
}

// wrtContacts puts a contact list in a temporary file and returns its name.
func wrtContacts(dir string, contacts []Contact) (string, error) {
	fp, err := os.CreateTemp(dir, "aleigen_*.txt")
	if err != nil {
		return "", err
	}
	defer fp.Close()
	if err := WriteContacts(fp, contacts); err != nil {
		return "", err
	}
	return fp.Name(), fp.Close()
}

// Run writes both contact lists, runs exe on them with numV eigenvectors
// and parses what comes back. If exe is empty, Exe is used.
func Run(ctx context.Context, exe string, c1, c2 []Contact, numV int) (*Result, error) {
	if exe == "" {
		exe = Exe
	}
	dir, err := os.MkdirTemp("", "aleigen")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	var fnames [2]string
	for k, c := range [][]Contact{c1, c2} {
		if fnames[k], err = wrtContacts(dir, c); err != nil {
			return nil, fmt.Errorf("contact map %d: %w", k+1, err)
		}
	}
	cmd := exec.CommandContext(ctx, exe, fnames[0], fnames[1], strconv.Itoa(numV))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w %s", exe, err, stderr.String())
	}
	return Parse(out)
}
