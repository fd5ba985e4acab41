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

package ledger

import "github.com/blinklabs-io/gouroboros/cbor"

// UnlockKind tags the variant of an Unlock.
type UnlockKind byte

const (
	UnlockSignature UnlockKind = iota
	UnlockReference
	UnlockAlias
	UnlockNFT
)

// Unlock authorizes the spend of the input at the matching index of a
// Transaction's input list. Exactly one Unlock exists per input, in input
// order.
type Unlock interface {
	Kind() UnlockKind
}

// SignatureUnlock carries an Ed25519 public key and signature over the
// essence hash, proving ownership of the address that owns the input.
type SignatureUnlock struct {
	PublicKey [32]byte
	Signature [64]byte
}

func (SignatureUnlock) Kind() UnlockKind { return UnlockSignature }

// ReferenceUnlock points at an earlier unlock index whose address is
// identical to this input's required address, avoiding a duplicate
// signature for inputs that share an owner.
type ReferenceUnlock struct{ Reference uint16 }

func (ReferenceUnlock) Kind() UnlockKind { return UnlockReference }

// AliasUnlock points at the unlock index of the alias input whose state
// controller or governor address controls this input.
type AliasUnlock struct{ Reference uint16 }

func (AliasUnlock) Kind() UnlockKind { return UnlockAlias }

// NFTUnlock points at the unlock index of the NFT input whose address
// controls this input.
type NFTUnlock struct{ Reference uint16 }

func (NFTUnlock) Kind() UnlockKind { return UnlockNFT }

// Transaction is a finished, signed essence ready for submission.
type Transaction struct {
	Essence TransactionEssence
	Unlocks []Unlock
}

// Serialize renders the transaction as Constructor-tagged CBOR, the
// essence followed by its unlock list in input order — the bytes
// SubmitBlock takes.
func (t *Transaction) Serialize() ([]byte, error) {
	essenceBytes, err := t.Essence.Serialize()
	if err != nil {
		return nil, err
	}
	unlockList := make(cbor.IndefLengthList, 0, len(t.Unlocks))
	for _, u := range t.Unlocks {
		b, err := serializeUnlock(u)
		if err != nil {
			return nil, err
		}
		unlockList = append(unlockList, b)
	}
	c := cbor.NewConstructor(0, cbor.IndefLengthList{essenceBytes, unlockList})
	return cbor.Encode(&c)
}

func serializeUnlock(u Unlock) ([]byte, error) {
	switch v := u.(type) {
	case SignatureUnlock:
		c := cbor.NewConstructor(uint(UnlockSignature), cbor.IndefLengthList{v.PublicKey[:], v.Signature[:]})
		return cbor.Encode(&c)
	case ReferenceUnlock:
		c := cbor.NewConstructor(uint(UnlockReference), cbor.IndefLengthList{v.Reference})
		return cbor.Encode(&c)
	case AliasUnlock:
		c := cbor.NewConstructor(uint(UnlockAlias), cbor.IndefLengthList{v.Reference})
		return cbor.Encode(&c)
	case NFTUnlock:
		c := cbor.NewConstructor(uint(UnlockNFT), cbor.IndefLengthList{v.Reference})
		return cbor.Encode(&c)
	default:
		return nil, NewShapeError("unsupported unlock type %T", u)
	}
}
