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
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/stable"
)

var plainTableStyle = &stable.TableStyle{
	Name:      "plain",
	HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
	DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
	Padding:   "",
}

// printSampleSummary writes an aligned summary table of per-sample
// non-zero cell counts and collision rates to stderr.
func printSampleSummary(names []string, nnz []uint64, m uint64) {
	columns := []stable.Column{
		{Header: "sample"},
		{Header: "nnz", Align: stable.AlignRight},
		{Header: "collision-rate", Align: stable.AlignRight},
	}
	tbl := stable.New()
	tbl.HeaderWithFormat(columns)
	for i, name := range names {
		rate := float64(nnz[i]) / float64(m)
		tbl.AddRow([]interface{}{
			name,
			humanize.Comma(int64(nnz[i])),
			fmt.Sprintf("%.4f", rate),
		})
	}
	os.Stderr.Write(tbl.Render(plainTableStyle))
}
