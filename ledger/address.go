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

import (
	"fmt"

	"github.com/blinklabs-io/gouroboros/cbor"
)

// AddressKind tags the variant of an Address.
type AddressKind byte

const (
	AddressEd25519 AddressKind = 0
	AddressAlias   AddressKind = 8
	AddressNFT     AddressKind = 16
)

func (k AddressKind) String() string {
	switch k {
	case AddressEd25519:
		return "Ed25519Address"
	case AddressAlias:
		return "AliasAddress"
	case AddressNFT:
		return "NftAddress"
	default:
		return fmt.Sprintf("AddressKind(%d)", byte(k))
	}
}

// Address is a tagged sum of {Ed25519-20-byte-hash, Alias-id, NFT-id}.
//
// It carries its own 20-byte payload regardless of kind: for Ed25519 it is
// Blake2b-256(pubkey) truncated to 20 bytes (address.AddressFromPublicKeyBytes
// computes it; NewEd25519Address takes the finished payload); for Alias and
// NFT it is the chain's AliasID/NFTID directly.
type Address struct {
	cbor.StructAsArray
	Kind    AddressKind
	Payload [20]byte
}

func NewEd25519Address(payload [20]byte) Address {
	return Address{Kind: AddressEd25519, Payload: payload}
}

func NewAliasAddress(id AliasID) Address {
	return Address{Kind: AddressAlias, Payload: [20]byte(id)}
}

func NewNFTAddress(id NFTID) Address {
	return Address{Kind: AddressNFT, Payload: [20]byte(id)}
}

func (a Address) Equal(other Address) bool {
	return a.Kind == other.Kind && a.Payload == other.Payload
}

// Bytes returns the 21-byte canonical encoding (kind byte ‖ 20-byte payload)
// used both for map keys and as the pre-image for bech32 encoding.
func (a Address) Bytes() []byte {
	buf := make([]byte, 21)
	buf[0] = byte(a.Kind)
	copy(buf[1:], a.Payload[:])
	return buf
}

// MarshalCBOR encodes an Address the way internal/common.AssetClass does:
// as a CBOR constructor wrapping its raw fields.
func (a Address) MarshalCBOR() ([]byte, error) {
	tmpConstr := cbor.NewConstructor(
		uint(a.Kind),
		cbor.IndefLengthList{a.Payload[:]},
	)
	return cbor.Encode(&tmpConstr)
}

func (a *Address) UnmarshalCBOR(cborData []byte) error {
	var tmpConstr cbor.Constructor
	if _, err := cbor.Decode(cborData, &tmpConstr); err != nil {
		return err
	}
	a.Kind = AddressKind(tmpConstr.Constructor())
	var fields [][]byte
	if err := cbor.DecodeGeneric(tmpConstr.FieldsCbor(), &fields); err != nil {
		return err
	}
	if len(fields) != 1 || len(fields[0]) != 20 {
		return fmt.Errorf("ledger: malformed address payload")
	}
	copy(a.Payload[:], fields[0])
	return nil
}

func (a Address) AliasID() (AliasID, bool) {
	if a.Kind != AddressAlias {
		return AliasID{}, false
	}
	return AliasID(a.Payload), true
}

func (a Address) NFTID() (NFTID, bool) {
	if a.Kind != AddressNFT {
		return NFTID{}, false
	}
	return NFTID(a.Payload), true
}

// AddressSet is a set of Addresses keyed by their canonical byte encoding,
// used by the Unlock Assembler to track which addresses have already been
// unlocked.
type AddressSet map[[21]byte]struct{}

func NewAddressSet() AddressSet { return make(AddressSet) }

func addrKey(a Address) [21]byte {
	var k [21]byte
	copy(k[:], a.Bytes())
	return k
}

func (s AddressSet) Add(a Address)      { s[addrKey(a)] = struct{}{} }
func (s AddressSet) Has(a Address) bool { _, ok := s[addrKey(a)]; return ok }

// AddressIndex is a map from Address to the input-list index that first
// unlocked it, the "seen" map of spec.md §4.E.
type AddressIndex map[[21]byte]int

func NewAddressIndex() AddressIndex { return make(AddressIndex) }

func (m AddressIndex) Set(a Address, idx int) { m[addrKey(a)] = idx }

func (m AddressIndex) Get(a Address) (int, bool) {
	idx, ok := m[addrKey(a)]
	return idx, ok
}
