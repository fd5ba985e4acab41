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

// Package address derives Ed25519 addresses along a BIP-44-style hardened
// path and scans a derivation subtree for a funded or target address.
package address

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/blinklabs-io/meshledger/ledger"
)

// Purpose is the BIP-43 purpose constant for this library's derivation
// paths: m/44'/coin_type'/account'/change'/index'.
const Purpose uint32 = 44

// hardenedOffset marks a BIP-32 hardened child index, ORed onto every
// level of the path since Ed25519 keys support hardened derivation only.
const hardenedOffset uint32 = 1 << 31

// Path is one fully-qualified derivation path.
type Path struct {
	CoinType uint32
	Account  uint32
	Change   bool
	Index    uint32
}

func changeIndex(change bool) uint32 {
	if change {
		return 1
	}
	return 0
}

// Segments returns the five hardened path components in derivation order.
func (p Path) Segments() [5]uint32 {
	return [5]uint32{
		Purpose | hardenedOffset,
		p.CoinType | hardenedOffset,
		p.Account | hardenedOffset,
		changeIndex(p.Change) | hardenedOffset,
		p.Index | hardenedOffset,
	}
}

// masterKey derives the SLIP-0010 Ed25519 master key: HMAC-SHA512 of the
// seed under the fixed key "ed25519 seed", split into (key, chain-code).
func masterKey(seed []byte) (key, chainCode [32]byte) {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	copy(key[:], sum[:32])
	copy(chainCode[:], sum[32:])
	return key, chainCode
}

// deriveChild performs one hardened SLIP-0010 Ed25519 child-key step.
func deriveChild(key, chainCode [32]byte, index uint32) (childKey, childChainCode [32]byte) {
	var data [37]byte
	data[0] = 0x00
	copy(data[1:33], key[:])
	binary.BigEndian.PutUint32(data[33:], index)

	mac := hmac.New(sha512.New, chainCode[:])
	mac.Write(data[:])
	sum := mac.Sum(nil)
	copy(childKey[:], sum[:32])
	copy(childChainCode[:], sum[32:])
	return childKey, childChainCode
}

// derivePrivateKey walks the five hardened segments of path from the
// master key produced by seed, returning the leaf Ed25519 private key.
func derivePrivateKey(seed []byte, path Path) ed25519.PrivateKey {
	key, chainCode := masterKey(seed)
	for _, segment := range path.Segments() {
		key, chainCode = deriveChild(key, chainCode, segment)
	}
	return ed25519.NewKeyFromSeed(key[:])
}

// DerivePublicKey returns the leaf Ed25519 public key for path.
func DerivePublicKey(seed []byte, path Path) ed25519.PublicKey {
	priv := derivePrivateKey(seed, path)
	return priv.Public().(ed25519.PublicKey)
}

// DeriveAddress returns the ledger.Address for path: the Blake2b-256
// digest of the leaf Ed25519 public key, truncated to 20 bytes and tagged
// Ed25519.
func DeriveAddress(seed []byte, path Path) ledger.Address {
	pub := DerivePublicKey(seed, path)
	return addressFromPublicKey(pub)
}

// Sign produces an Ed25519 signature over message using the leaf private
// key at path, without ever returning that key to the caller.
func Sign(seed []byte, path Path, message []byte) [64]byte {
	priv := derivePrivateKey(seed, path)
	var sig [64]byte
	copy(sig[:], ed25519.Sign(priv, message))
	return sig
}
