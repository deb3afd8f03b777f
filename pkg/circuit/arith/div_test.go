// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package arith

import (
	"testing"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/util"
)

func Test_DivRemUnsigned_01(t *testing.T) {
	c := divCircuit(8, DivRemUnsigned)
	//
	for num := uint64(0); num < 256; num++ {
		for den := uint64(0); den < 256; den++ {
			var (
				got          = evalBinary(t, c, 8, num, den)
				quot, rem    = got & 0xff, got >> 8
				wantQ, wantR = refDivU(num, den, 8)
			)
			//
			if quot != wantQ || rem != wantR {
				t.Fatalf("%d / %d: expected (%d, %d), got (%d, %d)", num, den, wantQ, wantR, quot, rem)
			}
		}
	}
}

func Test_DivRemUnsigned_02(t *testing.T) {
	var (
		c  = divCircuit(32, DivRemUnsigned)
		xs = util.GenerateRandomWords(32)
		ys = util.GenerateRandomWords(32)
	)
	// Random trials, plus forced zero divisors.
	ys[0], ys[1] = 0, 1
	//
	for i := range xs {
		var (
			got       = evalBinary(t, c, 32, uint64(xs[i]), uint64(ys[i]))
			quot, rem = got & 0xffffffff, got >> 32
		)
		//
		wantQ, wantR := refDivU(uint64(xs[i]), uint64(ys[i]), 32)
		//
		if quot != wantQ || rem != wantR {
			t.Fatalf("%d / %d: expected (%d, %d), got (%d, %d)", xs[i], ys[i], wantQ, wantR, quot, rem)
		}
	}
}

func Test_DivRemSigned_01(t *testing.T) {
	c := divCircuit(8, DivRemSigned)
	//
	for num := uint64(0); num < 256; num++ {
		for den := uint64(0); den < 256; den++ {
			var (
				got       = evalBinary(t, c, 8, num, den)
				quot, rem = got & 0xff, got >> 8
			)
			//
			wantQ, wantR := refDivS(num, den, 8)
			//
			if quot != wantQ || rem != wantR {
				t.Fatalf("%d / %d: expected (%d, %d), got (%d, %d)",
					signExtendTo(num, 8), signExtendTo(den, 8), wantQ, wantR, quot, rem)
			}
		}
	}
}

func Test_DivRemSigned_02(t *testing.T) {
	c := divCircuit(32, DivRemSigned)
	// The architected edge cases at full width.
	cases := [][2]uint64{
		{0x80000000, 0xffffffff}, // overflow wraps
		{0x80000000, 0},
		{123456, 0},
		{0xfffffff5, 3},
		{11, 0xfffffffd},
		{0xfffffff5, 0xfffffffd},
	}
	//
	for _, pair := range cases {
		var (
			got       = evalBinary(t, c, 32, pair[0], pair[1])
			quot, rem = got & 0xffffffff, got >> 32
		)
		//
		wantQ, wantR := refDivS(pair[0], pair[1], 32)
		//
		if quot != wantQ || rem != wantR {
			t.Fatalf("%d / %d: expected (%d, %d), got (%d, %d)",
				int32(pair[0]), int32(pair[1]), wantQ, wantR, quot, rem)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func divCircuit(w uint, gen func(circuit.Builder, []circuit.Wire, []circuit.Wire) ([]circuit.Wire, []circuit.Wire)) *circuit.Circuit {
	return binaryCircuit(w, func(b circuit.Builder, x, y []circuit.Wire) []circuit.Wire {
		quot, rem := gen(b, x, y)
		return append(quot, rem...)
	})
}

// refDivU mirrors the architected unsigned division semantics at width w.
func refDivU(num, den uint64, w uint) (uint64, uint64) {
	if den == 0 {
		return uint64(1)<<w - 1, num
	}
	//
	return num / den, num % den
}

// refDivS mirrors the architected signed division semantics at width w,
// operating on the raw (unsigned) bit patterns.
func refDivS(num, den uint64, w uint) (uint64, uint64) {
	var (
		mask = uint64(1)<<w - 1
		n    = signExtendTo(num, w)
		d    = signExtendTo(den, w)
		most = int64(-1) << (w - 1)
	)
	//
	switch {
	case d == 0:
		return mask, num
	case n == most && d == -1:
		// overflow wraps
		return uint64(n) & mask, 0
	}
	//
	return uint64(n/d) & mask, uint64(n%d) & mask
}
