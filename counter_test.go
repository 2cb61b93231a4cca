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
	"os"
	"path/filepath"
	"testing"
)

func TestCounterInitIsZero(t *testing.T) {
	c, err := NewCounter(4, 10000, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.NNZ() != 0 {
		t.Fatalf("NNZ() = %d, want 0", c.NNZ())
	}
}

// A single repeated k-mer hashes to one bin, so re-consuming the same
// sequence leaves nnz unchanged.
func TestCounterSingleBin(t *testing.T) {
	c, err := NewCounter(4, 10000, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Consume([]byte("AAAA")); err != nil {
		t.Fatal(err)
	}
	if err := c.Consume([]byte("AAAA")); err != nil {
		t.Fatal(err)
	}
	if c.NNZ() != 1 {
		t.Fatalf("NNZ() = %d, want 1", c.NNZ())
	}
	want := 1.0 / 10000.0
	if got := c.CollisionRate(); got != want {
		t.Fatalf("CollisionRate() = %v, want %v", got, want)
	}
}

func TestCounterPreconditionOnUninitialised(t *testing.T) {
	c, err := NewCounter(4, 0, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Consume([]byte("ACGT")); err == nil {
		t.Fatal("expected an error consuming into an M=0 counter")
	}
}

func TestCounterInvalidK(t *testing.T) {
	if _, err := NewCounter(0, 1024, false, 0); err == nil {
		t.Fatal("expected an error constructing a counter with k=0")
	}
	if _, err := NewCounter(33, 1024, false, 0); err == nil {
		t.Fatal("expected an error constructing a counter with k=33")
	}
}

func TestCounterSaveLoadRoundtrip(t *testing.T) {
	c, err := NewCounter(5, 4096, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Consume([]byte("ACGTACGTACGT")); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.kmr")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCounter(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.K() != c.K() || loaded.Canonical() != c.Canonical() || loaded.Size() != c.Size() {
		t.Fatalf("metadata mismatch: got k=%d canon=%v m=%d, want k=%d canon=%v m=%d",
			loaded.K(), loaded.Canonical(), loaded.Size(), c.K(), c.Canonical(), c.Size())
	}
	if loaded.NNZ() != c.NNZ() {
		t.Fatalf("NNZ mismatch: got %d, want %d", loaded.NNZ(), c.NNZ())
	}
	for i := uint64(0); i < c.Size(); i++ {
		if loaded.Counts().Get(i) != c.Counts().Get(i) {
			t.Fatalf("cell %d mismatch: got %d, want %d", i, loaded.Counts().Get(i), c.Counts().Get(i))
		}
	}
}

func TestCounterSaveLoadGzipRoundtrip(t *testing.T) {
	c, err := NewCounter(3, 64, false, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Consume([]byte("ACGTACGTACGTACGT")); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.kmr.gz")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCounter(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.NumBanks() != c.NumBanks() {
		t.Fatalf("NumBanks mismatch: got %d, want %d", loaded.NumBanks(), c.NumBanks())
	}
	if loaded.NNZ() != c.NNZ() {
		t.Fatalf("NNZ mismatch: got %d, want %d", loaded.NNZ(), c.NNZ())
	}
}

func TestCounterLoadCorruptMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.kmr")
	if err := os.WriteFile(path, []byte("not a counter record at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCounter(path); err == nil {
		t.Fatal("expected an error loading a corrupt record")
	}
}
