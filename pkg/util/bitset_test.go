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
package util

import (
	"testing"
)

func Test_BitSet_Insert_01(t *testing.T) {
	check_BitSet_Insert(t, []uint{})
}

func Test_BitSet_Insert_02(t *testing.T) {
	check_BitSet_Insert(t, []uint{0})
}

func Test_BitSet_Insert_03(t *testing.T) {
	check_BitSet_Insert(t, []uint{1, 63, 64, 65})
}

func Test_BitSet_Insert_04(t *testing.T) {
	check_BitSet_Insert(t, []uint{100, 1000, 10000})
}

func Test_BitSet_Intersects_01(t *testing.T) {
	var (
		a = NewBitSet(64)
		b = NewBitSet(64)
	)
	//
	a.InsertAll(1, 5, 9)
	b.InsertAll(2, 6, 10)
	//
	if a.Intersects(b) {
		t.Errorf("disjoint sets reported as intersecting")
	}
	//
	b.Insert(5)
	//
	if !a.Intersects(b) {
		t.Errorf("intersecting sets reported as disjoint")
	}
}

func Test_BitSet_Intersects_02(t *testing.T) {
	var (
		a = NewBitSet(8)
		b = NewBitSet(256)
	)
	// Differing word counts on either side of the receiver.
	a.Insert(3)
	b.Insert(200)
	//
	if a.Intersects(b) || b.Intersects(a) {
		t.Errorf("disjoint sets reported as intersecting")
	}
	//
	b.Insert(3)
	//
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Errorf("intersecting sets reported as disjoint")
	}
}

func Test_BitSet_Union_01(t *testing.T) {
	var (
		a = NewBitSet(8)
		b = NewBitSet(256)
	)
	//
	a.Insert(1)
	b.InsertAll(1, 200)
	// Union grows the receiver as needed.
	if !a.Union(b) {
		t.Errorf("expected change")
	}
	//
	if !a.Contains(1) || !a.Contains(200) {
		t.Errorf("union lost elements")
	}
	// A second identical union changes nothing.
	if a.Union(b) {
		t.Errorf("expected no change")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_BitSet_Insert(t *testing.T, elems []uint) {
	var set = NewBitSet(64)
	//
	set.InsertAll(elems...)
	//
	for _, e := range elems {
		if !set.Contains(e) {
			t.Errorf("missing element %d", e)
		}
	}
	//
	if set.Contains(31) {
		t.Errorf("unexpected element 31")
	}
}
