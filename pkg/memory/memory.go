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

// Package memory provides the pluggable, tiered memory subsystem.  Three
// interchangeable backends share one access contract: a pure function from
// the current storage binding plus an access request to the read data and an
// updated storage binding.  The ultra-simple and simple tiers store words as
// inline wire arrays; the authenticated tier stores only a Merkle root and
// verifies per-access hash proofs through an embedded SHA3-256 circuit.
//
// A Memory instance is owned by exactly one compiler state for the lifetime
// of a compilation unit.
package memory

import (
	"fmt"

	"github.com/RhettCreighton/riscv-compiler-sub000/pkg/circuit"
)

// WordBits is the width of one memory word.
const WordBits = 32

// Memory is the common access contract shared by all tiers.
type Memory interface {
	// Access compiles one memory access against the current storage binding:
	// the word at addr is returned, and, when writeEnable is asserted in
	// combination with the backend's own validity condition, the storage
	// binding is updated to hold dataIn at addr.  Both addr and dataIn are
	// 32 wires.
	Access(b circuit.Builder, addr, dataIn []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire
	// Outputs returns the wires encoding the final storage binding, in the
	// order they appear in the flat output vector.
	Outputs() []circuit.Wire
}

// Kind identifies one of the available memory tiers.
type Kind uint8

const (
	// KindNone attaches no memory; memory instructions are rejected.
	KindNone Kind = iota
	// KindUltraSimple is the eight-word inline tier.
	KindUltraSimple
	// KindSimple is the 256-word inline tier.
	KindSimple
	// KindMerkle is the Merkle-authenticated tier.
	KindMerkle
)

// ParseKind parses a memory tier name as accepted by the CLI.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "none":
		return KindNone, nil
	case "ultra":
		return KindUltraSimple, nil
	case "simple":
		return KindSimple, nil
	case "merkle":
		return KindMerkle, nil
	}
	//
	return KindNone, fmt.Errorf("unknown memory tier %q", name)
}
