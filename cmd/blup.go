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

package cmd

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/kmkm-go/kmkm"
)

func columnNNZ(m *mat.Dense) []uint64 {
	rows, cols := m.Dims()
	nnz := make([]uint64, cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			if m.At(i, j) != 0 {
				nnz[j]++
			}
		}
	}
	return nnz
}

var blupCmd = &cobra.Command{
	Use:   "blup",
	Short: "Collect per-sample counts and derive scaled, covariance and correlation matrices",
	Long: `Collect per-sample counts and derive scaled, covariance and correlation matrices

The first top_n entries (by index) of each input counter record become one
column of a dense matrix. Columns (samples) are L1-normalised, rows (count
vector bins) are then centred and scaled by their N-1 sample standard
deviation; non-finite results (a constant row has zero stddev) become 0.
The scaled matrix, covariance matrix and correlation matrix are all saved
under -o/--out-prefix.

If a collection previously saved under -o/--out-prefix matches the given
count files, it is reused instead of rebuilt.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		topN := getFlagPositiveInt(cmd, "top-n")
		basename := getFlagString(cmd, "out-prefix")

		files := args
		if len(files) == 0 {
			checkError(fmt.Errorf("at least one counter record file is required"))
		}

		coll := kmkm.NewCollection(topN)
		if coll.Load(basename, files) {
			if opt.Verbose {
				log.Infof("reusing saved collection at %s", basename)
				for _, name := range coll.Names() {
					log.Infof("  - %s", name)
				}
			}
		} else {
			if opt.Verbose {
				log.Infof("collecting counts from %s input file(s)", humanize.Comma(int64(len(files))))
			}
			kcOpt := kmkm.Options{NumWorkers: opt.NumCPUs}
			if opt.Verbose {
				kcOpt.OnSample = func(file string, nnz uint64) {
					log.Infof("  - %s (nnz=%s)", file, humanize.Comma(int64(nnz)))
				}
			}
			checkError(coll.AddSamples(files, kcOpt))
			checkError(coll.Save(basename))
		}

		if opt.Verbose {
			log.Info("normalising, scaling and centring counts")
		}
		scaled, covar, corr, err := kmkm.Statistics(coll.Counts())
		checkError(err)

		checkError(kmkm.SaveStatistics(basename, scaled, covar, corr))
		if opt.Verbose {
			log.Infof("scaled counts, covariance and correlation matrices saved under %s", basename)
			printSampleSummary(coll.Names(), columnNNZ(coll.Counts()), uint64(topN))
		}
	},
}

func init() {
	RootCmd.AddCommand(blupCmd)

	blupCmd.Flags().IntP("top-n", "n", 1000000, "number of count vector entries retained per sample")
	blupCmd.Flags().StringP("out-prefix", "o", "kmkm", "output file prefix")
}
