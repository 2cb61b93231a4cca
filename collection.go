// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package kmkm

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Options configures a parallel sample load. OnSample, if set, is invoked
// once per successfully loaded sample with its source filename and the
// number of non-zero cells in its count vector, serialised across workers
// (callers typically wire it to a logger's Infof).
type Options struct {
	NumWorkers int
	OnSample   func(file string, nnz uint64)
}

// Collection holds a dense top_n x nsamples matrix of the first top_n
// count-vector entries (by index, not by abundance) from a set of samples,
// plus the sample names in column order.
type Collection struct {
	topN   int
	names  []string
	counts *mat.Dense
}

// NewCollection constructs an empty collection retaining the first topN
// count-vector entries of each sample.
func NewCollection(topN int) *Collection {
	return &Collection{topN: topN}
}

// TopN returns the configured row count.
func (c *Collection) TopN() int { return c.topN }

// Names returns the sample names in column order.
func (c *Collection) Names() []string { return c.names }

// Counts returns the top_n x nsamples matrix.
func (c *Collection) Counts() *mat.Dense { return c.counts }

// stem normalises a sample source filename to its identifier: strip any
// directory component, then a trailing ".gz" once, then a trailing ".kmr"
// once.
func stem(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".kmr")
	return name
}

// Load attempts to restore a previously saved collection from
// basename+".counts" and basename+".samples". It returns false on any
// mismatch (missing files, wrong row count, sample list mismatch against
// expected), in which case the caller should rebuild via AddSamples;
// names and counts are only assigned once every check has passed, so a
// false return never exposes a half-loaded Collection.
func (c *Collection) Load(basename string, expected []string) bool {
	names, err := readSampleNames(basename + ".samples")
	if err != nil {
		return false
	}
	counts, err := readMatrix(basename + ".counts")
	if err != nil {
		return false
	}

	rows, cols := counts.Dims()
	if rows != c.topN {
		return false
	}
	if len(names) != cols {
		return false
	}
	if len(expected) > 0 {
		if len(expected) != cols {
			return false
		}
		for i, f := range expected {
			if stem(f) != names[i] {
				return false
			}
		}
	}

	c.names = names
	c.counts = counts
	return true
}

// AddSamples populates the collection from files in parallel: each file
// is loaded as a Counter, and its first min(top_n, counter size) entries
// become one column. Columns are disjoint writes requiring no locking;
// only OnSample callbacks and the recording of the first error are
// serialised.
func (c *Collection) AddSamples(files []string, opt Options) error {
	n := len(files)
	if n == 0 {
		return errors.Wrap(ErrPrecondition, "no sample files to collect")
	}
	c.names = make([]string, n)
	c.counts = mat.NewDense(c.topN, n, nil)

	workers := opt.NumWorkers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	token := make(chan struct{}, workers)
	var logMu sync.Mutex
	var errMu sync.Mutex
	var firstErr error

	for j, file := range files {
		token <- struct{}{}
		wg.Add(1)
		go func(j int, file string) {
			defer func() {
				<-token
				wg.Done()
			}()

			counter, err := LoadCounter(file)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = errors.Wrap(err, file)
				}
				errMu.Unlock()
				return
			}

			cells := counter.Counts().Cells()
			lim := c.topN
			if len(cells) < lim {
				lim = len(cells)
			}
			for i := 0; i < lim; i++ {
				c.counts.Set(i, j, float64(cells[i]))
			}
			c.names[j] = stem(file)

			if opt.OnSample != nil {
				logMu.Lock()
				opt.OnSample(file, counter.NNZ())
				logMu.Unlock()
			}
		}(j, file)
	}
	wg.Wait()

	return firstErr
}

// Save persists the matrix and the sample name list.
func (c *Collection) Save(basename string) error {
	if err := writeMatrix(basename+".counts", c.counts); err != nil {
		return errors.Wrap(err, "writing collection matrix")
	}
	if err := writeSampleNames(basename+".samples", c.names); err != nil {
		return errors.Wrap(err, "writing collection sample names")
	}
	return nil
}

func readSampleNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		names = append(names, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func writeSampleNames(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, name := range names {
		if _, err := w.WriteString(name + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// matrixMagic identifies a kmkm dense-matrix blob (rows, cols, then
// row-major float32 cells).
var matrixMagic = [8]byte{'k', 'm', 'k', 'm', 'm', 'a', 't', '1'}

func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var magic [8]byte
	if err := binary.Read(r, be, &magic); err != nil {
		return nil, err
	}
	if magic != matrixMagic {
		return nil, errors.New("kmkm: bad matrix magic")
	}

	var rows, cols uint64
	if err := binary.Read(r, be, &rows); err != nil {
		return nil, err
	}
	if err := binary.Read(r, be, &cols); err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return nil, errors.New("kmkm: empty matrix dimensions")
	}

	n := rows * cols
	raw := make([]float32, n)
	if err := binary.Read(r, be, raw); err != nil {
		return nil, err
	}

	data := make([]float64, n)
	for i, v := range raw {
		data[i] = float64(v)
	}
	return mat.NewDense(int(rows), int(cols), data), nil
}

func writeMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	rows, cols := m.Dims()
	if err := binary.Write(w, be, matrixMagic); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint64(rows)); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint64(cols)); err != nil {
		return err
	}

	raw := make([]float32, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			raw[i*cols+j] = float32(m.At(i, j))
		}
	}
	if err := binary.Write(w, be, raw); err != nil {
		return err
	}
	return w.Flush()
}
