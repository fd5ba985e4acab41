// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package unlock builds the Unlock list for a signed transaction, walking
// inputs in essence order and coloring repeated addresses with reference
// unlocks instead of duplicate signatures.
package unlock

import (
	"github.com/blinklabs-io/meshledger/ledger"
)

// Signer produces a SignatureUnlock proving ownership of addr over
// essenceHash. Implementations live in package secretmanager.
type Signer func(addr ledger.Address, essenceHash [32]byte) (ledger.SignatureUnlock, error)

// seenKind distinguishes which unlock variant a prior occurrence of an
// address resolves through: a signature (referenced by ReferenceUnlock) or
// a chain input's own unlock (referenced by AliasUnlock/NFTUnlock).
type seenKind int

const (
	seenEd25519 seenKind = iota
	seenAlias
	seenNFT
)

type seenEntry struct {
	kind  seenKind
	index uint16
}

// Assemble walks inputs — already in the essence's canonical order — and
// returns one Unlock per input. An Ed25519 address seen for the first
// time gets a SignatureUnlock; seen again, a ReferenceUnlock pointing at
// its first occurrence. An alias or NFT input gets its own
// SignatureUnlock/AliasUnlock/NFTUnlock the first time its chain address
// is required elsewhere, and afterward any input the chain address
// controls resolves through AliasUnlock/NFTUnlock rather than a generic
// reference.
func Assemble(essenceHash [32]byte, unixTime uint32, inputs []ledger.InputSigningData, outputs ledger.Outputs, sign Signer) ([]ledger.Unlock, error) {
	unlocks := make([]ledger.Unlock, len(inputs))
	seen := make(map[ledger.Address]seenEntry)

	for i, in := range inputs {
		addr, ownAliasID, ownNFTID, err := controllingAddress(in, outputs, unixTime)
		if err != nil {
			return nil, err
		}

		if prior, ok := seen[addr]; ok {
			switch prior.kind {
			case seenAlias:
				unlocks[i] = ledger.AliasUnlock{Reference: prior.index}
			case seenNFT:
				unlocks[i] = ledger.NFTUnlock{Reference: prior.index}
			default:
				unlocks[i] = ledger.ReferenceUnlock{Reference: prior.index}
			}
		} else {
			sig, err := sign(addr, essenceHash)
			if err != nil {
				return nil, err
			}
			unlocks[i] = sig
			seen[addr] = seenEntry{kind: seenEd25519, index: uint16(i)}
		}

		// Whichever unlock this input just got, once it's been emitted,
		// register the chain address it now controls so later inputs
		// owned by that alias/nft resolve through AliasUnlock/NFTUnlock
		// instead of a plain signature reference — even when this input's
		// own controlling address had already been seen.
		if ownAliasID != nil {
			seen[ledger.NewAliasAddress(*ownAliasID)] = seenEntry{kind: seenAlias, index: uint16(i)}
		}
		if ownNFTID != nil {
			seen[ledger.NewNFTAddress(*ownNFTID)] = seenEntry{kind: seenNFT, index: uint16(i)}
		}
	}
	return unlocks, nil
}

// controllingAddress returns the address whose unlock authorizes in, and,
// if in is itself an alias or NFT output, the chain id it mints into the
// seen set once its own unlock is emitted.
func controllingAddress(in ledger.InputSigningData, outputs ledger.Outputs, unixTime uint32) (ledger.Address, *ledger.AliasID, *ledger.NFTID, error) {
	switch out := in.Output.(type) {
	case *ledger.BasicOutput:
		addr, ok := out.UnlockConditions.UnlockAddress(unixTime)
		if !ok {
			return ledger.Address{}, nil, nil, ledger.NewShapeError("basic output has no resolvable unlock address")
		}
		return addr, nil, nil, nil
	case *ledger.AliasOutput:
		id := out.AliasID
		if isAliasStateTransition(out, outputs) {
			return out.UnlockConditions.StateControllerAddress.Address, &id, nil, nil
		}
		return out.UnlockConditions.GovernorAddress.Address, &id, nil, nil
	case *ledger.FoundryOutput:
		return out.UnlockConditions.ImmutableAliasAddress.Address, nil, nil, nil
	case *ledger.NFTOutput:
		addr, ok := out.UnlockConditions.UnlockAddress(unixTime)
		if !ok {
			return ledger.Address{}, nil, nil, ledger.NewShapeError("nft output has no resolvable unlock address")
		}
		id := out.NFTID
		return addr, nil, &id, nil
	}
	return ledger.Address{}, nil, nil, ledger.NewShapeError("unsupported output type %T for unlock", in.Output)
}

// isAliasStateTransition reports whether the alias's matching output
// increases StateIndex over the spent input — a state transition unlocked
// by the state controller — versus an unchanged StateIndex, unlocked by
// the governor. An alias input with no matching output at all (a burn) is
// treated as a governance transition, since burning is a governor right.
func isAliasStateTransition(in *ledger.AliasOutput, outputs ledger.Outputs) bool {
	for _, o := range outputs {
		out, ok := o.(*ledger.AliasOutput)
		if !ok || out.AliasID != in.AliasID {
			continue
		}
		return out.StateIndex > in.StateIndex
	}
	return false
}
