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
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// SequenceSource yields successive sequence records as raw byte strings.
// NextRecord returns ok=false once the source is exhausted, with err nil.
type SequenceSource interface {
	NextRecord() ([]byte, bool, error)
}

// FastxSource adapts a FASTA/FASTQ file, transparently gzip-or-plain, into
// a SequenceSource.
type FastxSource struct {
	r *fastx.Reader
}

// NewFastxSource opens path (.fa/.fq/.fa.gz/.fq.gz, ...) for reading.
func NewFastxSource(path string) (*FastxSource, error) {
	r, err := fastx.NewDefaultReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sequence file")
	}
	return &FastxSource{r: r}, nil
}

// NextRecord returns the next record's sequence bytes.
func (s *FastxSource) NextRecord() ([]byte, bool, error) {
	record, err := s.r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "reading sequence record")
	}
	return record.Seq.Seq, true, nil
}
