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
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Statistics derives a scaled count matrix and its covariance and
// correlation across samples (columns) from a raw top_n x nsamples count
// matrix: columns are L1-normalised, then rows are centred and scaled by
// their N-1 sample standard deviation, with any non-finite result (a
// constant row divides by a zero stddev) replaced by 0.
func Statistics(c *mat.Dense) (scaled, covar, corr *mat.Dense, err error) {
	rows, cols := c.Dims()
	if rows == 0 || cols == 0 {
		return nil, nil, nil, errors.Wrap(ErrPrecondition, "statistics on an empty matrix")
	}

	scaled = mat.NewDense(rows, cols, nil)

	colSums := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += math.Abs(c.At(i, j))
		}
		colSums[j] = sum
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := c.At(i, j)
			if colSums[j] != 0 {
				v /= colSums[j]
			}
			scaled.Set(i, j, v)
		}
	}

	rowData := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowData[j] = scaled.At(i, j)
		}
		mean := stat.Mean(rowData, nil)
		sd := stat.StdDev(rowData, nil)
		for j := 0; j < cols; j++ {
			v := (rowData[j] - mean) / sd
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			scaled.Set(i, j, v)
		}
	}

	var covSym mat.SymDense
	stat.CovarianceMatrix(&covSym, scaled, nil)
	covar = denseFromSym(&covSym)

	var corSym mat.SymDense
	stat.CorrelationMatrix(&corSym, scaled, nil)
	corr = denseFromSym(&corSym)

	return scaled, covar, corr, nil
}

func denseFromSym(s *mat.SymDense) *mat.Dense {
	n := s.SymmetricDim()
	d := mat.NewDense(n, n, nil)
	d.Copy(s)
	return d
}

// SaveStatistics persists the outputs of Statistics to basename+".scaledcounts"
// (the shared binary matrix format), basename+".covar" and basename+".cor"
// (ASCII CSV).
func SaveStatistics(basename string, scaled, covar, corr *mat.Dense) error {
	if err := writeMatrix(basename+".scaledcounts", scaled); err != nil {
		return errors.Wrap(err, "writing scaled counts")
	}
	if err := writeCSV(basename+".covar", covar); err != nil {
		return errors.Wrap(err, "writing covariance matrix")
	}
	if err := writeCSV(basename+".cor", corr); err != nil {
		return errors.Wrap(err, "writing correlation matrix")
	}
	return nil
}

func writeCSV(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j > 0 {
				if err := w.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%g", m.At(i, j)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
