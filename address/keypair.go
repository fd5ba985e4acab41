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

package address

import (
	"crypto/ed25519"

	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
)

// addressFromPublicKey tags an Ed25519 public key as a ledger.Address: the
// Blake2b-256 digest of the raw public key bytes, truncated to 20 bytes.
func addressFromPublicKey(pub ed25519.PublicKey) ledger.Address {
	return AddressFromPublicKeyBytes(pub)
}

// AddressFromPublicKeyBytes is the same Blake2b-256-truncated-to-20-bytes
// tagging addressFromPublicKey applies, exported for backends that hold a
// raw public key without a derivable private key (a hardware device, an
// enclave snapshot).
func AddressFromPublicKeyBytes(pub []byte) ledger.Address {
	sum := blake2b.Sum256(pub)
	var payload [20]byte
	copy(payload[:], sum[:20])
	return ledger.NewEd25519Address(payload)
}

// SeedFromMnemonic validates and converts a BIP-39 mnemonic into the seed
// bytes DerivePublicKey/DeriveAddress expect, applying no extra passphrase.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ledger.NewShapeError("invalid mnemonic")
	}
	return bip39.NewSeedWithErrorChecking(mnemonic, "")
}

// NewMnemonic returns a freshly generated BIP-39 mnemonic of the given
// entropy size in bits (128, 160, 192, 224, or 256).
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", ledger.NewShapeError("entropy generation failed: %s", err)
	}
	return bip39.NewMnemonic(entropy)
}
