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

import "testing"

func TestMixHashKnownVectors(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 0},
		{1, 6238072747940578789},
		{27, 3622748380379877116},
		{0xFFFFFFFFFFFFFFFF, 13029008266876403067},
	}
	for _, c := range cases {
		if got := MixHash(c.in); got != c.want {
			t.Errorf("MixHash(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMixHashDeterministic(t *testing.T) {
	for x := uint64(0); x < 1000; x++ {
		if MixHash(x) != MixHash(x) {
			t.Fatalf("MixHash(%d) is not deterministic", x)
		}
	}
}

func TestMixHashAvalanche(t *testing.T) {
	a := MixHash(1000)
	b := MixHash(1001)
	diff := a ^ b
	bits := 0
	for diff != 0 {
		bits += int(diff & 1)
		diff >>= 1
	}
	if bits < 20 {
		t.Errorf("MixHash(1000) and MixHash(1001) differ in only %d bits, want a wide avalanche", bits)
	}
}
