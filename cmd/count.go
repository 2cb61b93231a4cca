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

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"

	"github.com/kmkm-go/kmkm"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Build a k-mer count vector from one or more sequence files",
	Long: `Build a k-mer count vector from one or more sequence files

Every FASTA/FASTQ record of every input file is folded into a single fixed
size count vector of 2^cvlog2 saturating cells, optionally fronted by a
counting Bloom filter (-t/--cbftables) to dampen the effect of hash
collisions on low-abundance k-mers.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

		k := getFlagPositiveInt(cmd, "ksize")
		if k > 32 {
			checkError(fmt.Errorf("-k/--ksize must be <= 32"))
		}
		canonical := !getFlagBool(cmd, "no-canonical")
		cvlog2 := getFlagPositiveInt(cmd, "cvlog2")
		t := getFlagNonNegativeInt(cmd, "cbftables")
		outFile := getFlagString(cmd, "out-file")

		files := args
		if len(files) == 0 {
			checkError(fmt.Errorf("at least one read file is required"))
		}

		m := uint64(1) << uint(cvlog2)
		counter, err := kmkm.NewCounter(k, m, canonical, t)
		checkError(err)

		for i, file := range files {
			if opt.Verbose {
				log.Infof("processing file (%d/%d): %s", i+1, len(files), file)
			}
			src, err := kmkm.NewFastxSource(file)
			checkError(errors.Wrap(err, file))

			n, err := counter.ConsumeFrom(src)
			checkError(errors.Wrap(err, file))
			if opt.Verbose {
				log.Infof("%d records consumed from %s", n, file)
			}
		}

		checkError(counter.Save(outFile))
		if opt.Verbose {
			log.Infof("count vector saved to %s", outFile)
			printSampleSummary([]string{outFile}, []uint64{counter.NNZ()}, counter.Size())
		}
	},
}

func init() {
	RootCmd.AddCommand(countCmd)

	countCmd.Flags().IntP("ksize", "k", 21, "k-mer size")
	countCmd.Flags().BoolP("no-canonical", "C", false, "count strand-specific k-mers instead of canonical ones")
	countCmd.Flags().IntP("cvlog2", "z", 25, "log2 of the count vector size (M = 2^cvlog2)")
	countCmd.Flags().IntP("cbftables", "t", 0, "number of counting Bloom filter banks fronting the count vector (0 disables it)")
	countCmd.Flags().StringP("out-file", "o", "out.kmr", "output counter record file, gzip-compressed when ending in .gz")
}
