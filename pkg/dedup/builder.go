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
package dedup

import (
	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

// Builder is the online hash-consing mode: a circuit.Builder wrapper which
// looks up an equivalent existing gate before emitting a new one.  It is an
// explicit per-compilation context; discarding it discards the memo table
// and nothing else.
type Builder struct {
	inner circuit.Builder
	seen  map[gateKey]circuit.Wire
}

// NewBuilder wraps a builder with hash-consing.
func NewBuilder(inner circuit.Builder) *Builder {
	return &Builder{inner, make(map[gateKey]circuit.Wire)}
}

// AllocWire delegates to the wrapped builder.
func (p *Builder) AllocWire() circuit.Wire {
	return p.inner.AllocWire()
}

// AddGate returns the output wire of a structurally identical earlier gate
// when one exists, and otherwise emits the gate through the wrapped builder.
func (p *Builder) AddGate(op circuit.GateOp, left, right circuit.Wire) circuit.Wire {
	key := keyOf(op, left, right)
	//
	if out, ok := p.seen[key]; ok {
		return out
	}
	//
	out := p.inner.AddGate(op, left, right)
	p.seen[key] = out
	//
	return out
}
