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

// Package secretmanager holds the key material backends: generating
// addresses along a derivation path and producing the SignatureUnlock for
// one input, with transaction-wide unlock assembly delegated to package
// unlock by a shared default.
package secretmanager

import (
	"github.com/blinklabs-io/meshledger/address"
	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/blinklabs-io/meshledger/unlock"
)

// GenerateAddressesOptions mirrors the coordinates of an address.Generator
// scan.
type GenerateAddressesOptions struct {
	CoinType uint32
	Account  uint32
	Change   bool
	Start    uint32
	Count    uint32
}

// Backend is the minimal surface each key-material implementation
// provides: deriving addresses and producing one signature unlock. A
// SecretManager wraps a Backend with the shared SignTransactionEssence
// default.
type Backend interface {
	GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error)
	// SignatureUnlock produces a signature proving ownership of addr,
	// resolving which derivation chain owns it by scanning inputs'
	// DerivationChain hints.
	SignatureUnlock(addr ledger.Address, essenceHash [32]byte, inputs []ledger.InputSigningData) (ledger.SignatureUnlock, error)
}

// SecretManager is the component-F surface the transaction builder drives:
// address generation plus whole-essence signing.
type SecretManager interface {
	GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error)
	SignTransactionEssence(essenceHash [32]byte, unixTime uint32, inputs []ledger.InputSigningData, outputs ledger.Outputs) ([]ledger.Unlock, error)
}

// manager adapts a Backend into a SecretManager by delegating whole-essence
// signing to the Unlock Assembler, with the backend supplying only the
// per-input signature.
type manager struct {
	backend Backend
}

// New wraps a Backend with the default SignTransactionEssence
// implementation, shared by every backend in this package.
func New(backend Backend) SecretManager {
	return &manager{backend: backend}
}

func (m *manager) GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error) {
	return m.backend.GenerateAddresses(opts)
}

func (m *manager) SignTransactionEssence(essenceHash [32]byte, unixTime uint32, inputs []ledger.InputSigningData, outputs ledger.Outputs) ([]ledger.Unlock, error) {
	sign := func(addr ledger.Address, hash [32]byte) (ledger.SignatureUnlock, error) {
		return m.backend.SignatureUnlock(addr, hash, inputs)
	}
	return unlock.Assemble(essenceHash, unixTime, inputs, outputs, sign)
}
