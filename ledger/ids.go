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

// Package ledger is the data model shared by the Input Selection, Essence
// Builder, and Unlock Assembler components: addresses, outputs, unlock
// conditions, features, chain-object identifiers, and the transaction
// essence/unlock-block wire types.
package ledger

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// TransactionIDLength is the byte length of a TransactionID (Blake2b-256).
const TransactionIDLength = blake2b.Size256

// TransactionID identifies a Transaction by the Blake2b-256 hash of its
// serialized essence.
type TransactionID [TransactionIDLength]byte

func (id TransactionID) String() string { return hex.EncodeToString(id[:]) }

// OutputID is (transaction-id, index), identifying an output globally.
type OutputID struct {
	TransactionID TransactionID
	Index         uint16
}

func NewOutputID(txID TransactionID, index uint16) OutputID {
	return OutputID{TransactionID: txID, Index: index}
}

func (o OutputID) String() string {
	return fmt.Sprintf("%s%04x", o.TransactionID, o.Index)
}

// Bytes returns the 34-byte canonical encoding (32-byte tx id, big-endian
// uint16 index) used for sorting and for hashing into chain-object ids.
func (o OutputID) Bytes() []byte {
	buf := make([]byte, TransactionIDLength+2)
	copy(buf, o.TransactionID[:])
	binary.BigEndian.PutUint16(buf[TransactionIDLength:], o.Index)
	return buf
}

// Less orders OutputIDs ascending by their canonical byte encoding, the
// ordering the Essence Builder sorts inputs by.
func (o OutputID) Less(other OutputID) bool {
	ob, tb := o.Bytes(), other.Bytes()
	for i := range ob {
		if ob[i] != tb[i] {
			return ob[i] < tb[i]
		}
	}
	return false
}

const chainIDLength = 20

// AliasID uniquely identifies an Alias chain object across its lifetime.
// It is all-zero before the alias's first inclusion in a transaction.
type AliasID [chainIDLength]byte

func (id AliasID) IsNull() bool { return id == AliasID{} }
func (id AliasID) String() string { return hex.EncodeToString(id[:]) }

// NFTID uniquely identifies an NFT chain object across its lifetime.
type NFTID [chainIDLength]byte

func (id NFTID) IsNull() bool { return id == NFTID{} }
func (id NFTID) String() string { return hex.EncodeToString(id[:]) }

// FoundryID uniquely identifies a Foundry by its controlling alias address,
// serial number, and token-scheme kind: hash(alias-address ‖ serial ‖
// scheme-kind) per spec.md §3.
type FoundryID [chainIDLength]byte

func (id FoundryID) String() string { return hex.EncodeToString(id[:]) }

// NewAliasIDFromOutputID implements the chain-id identity invariant: the id
// of an alias whose on-chain id is null at creation equals a deterministic
// hash of the creating OutputID.
func NewAliasIDFromOutputID(outputID OutputID) AliasID {
	sum := blake2b.Sum256(outputID.Bytes())
	var id AliasID
	copy(id[:], sum[:chainIDLength])
	return id
}

// NewNFTIDFromOutputID mirrors NewAliasIDFromOutputID for NFTs.
func NewNFTIDFromOutputID(outputID OutputID) NFTID {
	sum := blake2b.Sum256(outputID.Bytes())
	var id NFTID
	copy(id[:], sum[:chainIDLength])
	return id
}

// NewFoundryID computes hash(alias-address ‖ serial ‖ scheme-kind).
func NewFoundryID(aliasAddr AliasID, serial uint32, schemeKind byte) FoundryID {
	buf := make([]byte, chainIDLength+4+1)
	copy(buf, aliasAddr[:])
	binary.BigEndian.PutUint32(buf[chainIDLength:], serial)
	buf[chainIDLength+4] = schemeKind
	sum := blake2b.Sum256(buf)
	var id FoundryID
	copy(id[:], sum[:chainIDLength])
	return id
}

// NativeTokenID identifies a fungible token by its controlling foundry.
type NativeTokenID FoundryID

func (id NativeTokenID) String() string { return hex.EncodeToString(id[:]) }
