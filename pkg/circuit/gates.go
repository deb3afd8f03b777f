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
package circuit

// Helper constructors for the boolean connectives over any Builder.  Each
// helper folds constant operands, so that expressions involving only the
// reserved constant wires cost zero gates (which is what makes, for example,
// an upper-immediate load entirely free).  OR and NOT are synthesized from
// AND/XOR, since those are the only physical gate kinds.

// Xor emits x ^ y.
func Xor(b Builder, x, y Wire) Wire {
	switch {
	case x == ConstFalse:
		return y
	case y == ConstFalse:
		return x
	case x == y:
		return ConstFalse
	case x == ConstTrue && y == ConstTrue:
		return ConstFalse
	}
	//
	return b.AddGate(OpXor, x, y)
}

// And emits x & y.
func And(b Builder, x, y Wire) Wire {
	switch {
	case x == ConstFalse || y == ConstFalse:
		return ConstFalse
	case x == ConstTrue:
		return y
	case y == ConstTrue:
		return x
	case x == y:
		return x
	}
	//
	return b.AddGate(OpAnd, x, y)
}

// Or emits x | y as (x ^ y) ^ (x & y), costing three gates on variable
// operands.
func Or(b Builder, x, y Wire) Wire {
	if x == ConstTrue || y == ConstTrue {
		return ConstTrue
	}
	//
	return Xor(b, Xor(b, x, y), And(b, x, y))
}

// Not emits !x as x ^ true.
func Not(b Builder, x Wire) Wire {
	return Xor(b, x, ConstTrue)
}

// Xnor emits !(x ^ y), i.e. bit equality.
func Xnor(b Builder, x, y Wire) Wire {
	return Not(b, Xor(b, x, y))
}

// Mux selects ifTrue when sel is asserted and ifFalse otherwise, as
// ifFalse ^ (sel & (ifTrue ^ ifFalse)).
func Mux(b Builder, sel, ifTrue, ifFalse Wire) Wire {
	switch {
	case sel == ConstTrue:
		return ifTrue
	case sel == ConstFalse:
		return ifFalse
	case ifTrue == ifFalse:
		return ifTrue
	}
	//
	return Xor(b, ifFalse, And(b, sel, Xor(b, ifTrue, ifFalse)))
}

// MuxWord applies Mux bitwise across two equal-length words.
func MuxWord(b Builder, sel Wire, ifTrue, ifFalse []Wire) []Wire {
	if len(ifTrue) != len(ifFalse) {
		panic("mux operands differ in width")
	}
	//
	out := make([]Wire, len(ifTrue))
	//
	for i := range out {
		out[i] = Mux(b, sel, ifTrue[i], ifFalse[i])
	}
	//
	return out
}

// XorWord applies Xor bitwise across two equal-length words.
func XorWord(b Builder, x, y []Wire) []Wire {
	if len(x) != len(y) {
		panic("xor operands differ in width")
	}
	//
	out := make([]Wire, len(x))
	//
	for i := range out {
		out[i] = Xor(b, x[i], y[i])
	}
	//
	return out
}

// AndWord applies And bitwise across two equal-length words.
func AndWord(b Builder, x, y []Wire) []Wire {
	if len(x) != len(y) {
		panic("and operands differ in width")
	}
	//
	out := make([]Wire, len(x))
	//
	for i := range out {
		out[i] = And(b, x[i], y[i])
	}
	//
	return out
}

// OrWord applies Or bitwise across two equal-length words.
func OrWord(b Builder, x, y []Wire) []Wire {
	if len(x) != len(y) {
		panic("or operands differ in width")
	}
	//
	out := make([]Wire, len(x))
	//
	for i := range out {
		out[i] = Or(b, x[i], y[i])
	}
	//
	return out
}

// NotWord applies Not bitwise across a word.
func NotWord(b Builder, x []Wire) []Wire {
	out := make([]Wire, len(x))
	//
	for i := range out {
		out[i] = Not(b, x[i])
	}
	//
	return out
}

// ConstWord returns an n-bit word of constant wires holding the given value,
// least-significant bit first.  No gates are emitted.
func ConstWord(val uint64, n uint) []Wire {
	out := make([]Wire, n)
	//
	for i := range out {
		if val>>i&1 == 1 {
			out[i] = ConstTrue
		} else {
			out[i] = ConstFalse
		}
	}
	//
	return out
}

// IsZero reduces a word to a single wire asserted iff every bit is zero,
// using a balanced OR tree followed by one negation.
func IsZero(b Builder, x []Wire) Wire {
	return Not(b, reduceOr(b, x))
}

// EqWord reduces two words to a single wire asserted iff they are equal bit
// for bit, using per-bit XOR followed by an OR reduction.
func EqWord(b Builder, x, y []Wire) Wire {
	return IsZero(b, XorWord(b, x, y))
}

// reduceOr folds a word down to one wire via a balanced tree, keeping depth
// logarithmic.
func reduceOr(b Builder, x []Wire) Wire {
	switch len(x) {
	case 0:
		return ConstFalse
	case 1:
		return x[0]
	}
	//
	mid := len(x) / 2
	//
	return Or(b, reduceOr(b, x[:mid]), reduceOr(b, x[mid:]))
}
