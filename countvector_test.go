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

func TestCountVectorIncrement(t *testing.T) {
	v := NewCountVector[uint8](8)
	v.Increment(3)
	v.Increment(3)
	v.Increment(11) // 11 mod 8 == 3
	if got := v.Get(3); got != 3 {
		t.Fatalf("Get(3) = %d, want 3", got)
	}
}

func TestCountVectorSaturates(t *testing.T) {
	v := NewCountVector[uint8](4)
	for i := 0; i < 300; i++ {
		v.Increment(0)
	}
	if got := v.Get(0); got != 255 {
		t.Fatalf("Get(0) = %d, want 255 (saturated)", got)
	}
}

func TestCountVectorSet(t *testing.T) {
	v := NewCountVector[uint8](4)
	v.Set(0, 12)
	if got := v.Get(0); got != 12 {
		t.Fatalf("Get(0) = %d, want 12", got)
	}
	v.Set(0, 9999)
	if got := v.Get(0); got != 255 {
		t.Fatalf("Set clamp: Get(0) = %d, want 255", got)
	}
}

func TestCountVectorNNZAndCollisionRate(t *testing.T) {
	v := NewCountVector[uint8](10000)
	v.Increment(7)
	v.Increment(7)
	if v.NNZ() != 1 {
		t.Fatalf("NNZ() = %d, want 1", v.NNZ())
	}
	want := 1.0 / 10000.0
	if got := v.CollisionRate(); got != want {
		t.Fatalf("CollisionRate() = %v, want %v", got, want)
	}
}

// TestCountVectorUninitialisedCollisionRate checks that a zero-size vector
// (M == 0) reports CollisionRate() == -1.
func TestCountVectorUninitialisedCollisionRate(t *testing.T) {
	v := NewCountVector[uint8](0)
	if got := v.CollisionRate(); got != -1 {
		t.Fatalf("CollisionRate() = %v, want -1", got)
	}
}

func TestCountVectorSize(t *testing.T) {
	v := NewCountVector[uint16](64)
	if v.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", v.Size())
	}
}
