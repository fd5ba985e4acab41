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

package secretmanager

import (
	"github.com/blinklabs-io/meshledger/address"
	"github.com/blinklabs-io/meshledger/ledger"
)

// MnemonicBackend holds a BIP-39 seed in process memory and derives keys
// on demand. It never persists the seed anywhere.
type MnemonicBackend struct {
	seed []byte
}

// NewMnemonicBackend wraps a SecretManager around a mnemonic's derived
// seed.
func NewMnemonicBackend(mnemonic string) (SecretManager, error) {
	seed, err := address.SeedFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	return New(&MnemonicBackend{seed: seed}), nil
}

func (b *MnemonicBackend) GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error) {
	gen := address.Generator{Seed: b.seed, CoinType: opts.CoinType, Account: opts.Account}
	return gen.Range(opts.Change, opts.Start, opts.Count), nil
}

func (b *MnemonicBackend) SignatureUnlock(addr ledger.Address, essenceHash [32]byte, inputs []ledger.InputSigningData) (ledger.SignatureUnlock, error) {
	chain, ok := findOwningChain(b.seed, addr, inputs)
	if !ok {
		return ledger.SignatureUnlock{}, ledger.NewShapeError("mnemonic backend holds no derivation chain for address %s", addr.String())
	}
	path := address.Path{CoinType: chain.CoinType, Account: chain.Account, Change: chain.Change, Index: chain.AddressIndex}
	pub := address.DerivePublicKey(b.seed, path)
	sig := address.Sign(b.seed, path, essenceHash[:])

	var out ledger.SignatureUnlock
	copy(out.PublicKey[:], pub)
	out.Signature = sig
	return out, nil
}

// findOwningChain scans inputs for a DerivationChain that re-derives to
// addr under seed, the last-resort lookup any backend needs since the
// unlock assembler only ever hands it a bare address.
func findOwningChain(seed []byte, addr ledger.Address, inputs []ledger.InputSigningData) (ledger.DerivationChain, bool) {
	for _, in := range inputs {
		if in.Chain == nil {
			continue
		}
		path := address.Path{CoinType: in.Chain.CoinType, Account: in.Chain.Account, Change: in.Chain.Change, Index: in.Chain.AddressIndex}
		if address.DeriveAddress(seed, path).Equal(addr) {
			return *in.Chain, true
		}
	}
	return ledger.DerivationChain{}, false
}
