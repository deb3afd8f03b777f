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

// BitSet provides a straightforward bitset implementation.  That is, a set of
// (unsigned) integer values implemented as an array of bits.  It is used for
// tracking wire liveness during dead-gate elimination, and for register
// read/write sets during dependency analysis.
type BitSet struct {
	words []uint64
}

// NewBitSet creates a BitSet with capacity for (at least) n elements.
func NewBitSet(n uint) BitSet {
	return BitSet{make([]uint64, (n+63)/64)}
}

// Insert a given value into this set.
func (p *BitSet) Insert(val uint) {
	word := val / 64
	bit := val % 64
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	// Set bit
	mask := uint64(1) << bit
	p.words[word] = p.words[word] | mask
}

// InsertAll inserts zero or more elements into this bitset.
func (p *BitSet) InsertAll(vals ...uint) {
	for _, v := range vals {
		p.Insert(v)
	}
}

// Contains checks whether a given value is contained, or not.
func (p *BitSet) Contains(val uint) bool {
	word := val / 64
	bit := val % 64
	//
	if uint(len(p.words)) <= word {
		return false
	}
	// Set mask
	mask := uint64(1) << bit
	//
	return (p.words[word] & mask) != 0
}

// Intersects checks whether this set shares at least one element with the
// other set.
func (p *BitSet) Intersects(other BitSet) bool {
	n := min(len(p.words), len(other.words))
	//
	for w := range n {
		if p.words[w]&other.words[w] != 0 {
			return true
		}
	}
	//
	return false
}

// Union inserts all elements from a given bitset into this bitset, returning
// true if there is some change.
func (p *BitSet) Union(other BitSet) bool {
	changed := false
	//
	for len(p.words) < len(other.words) {
		p.words = append(p.words, 0)
	}
	// Insert all
	for w := range other.words {
		tmp := p.words[w] | other.words[w]
		changed = changed || tmp != p.words[w]
		p.words[w] = tmp
	}
	//
	return changed
}
