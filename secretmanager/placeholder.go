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

// PlaceholderBackend stands in for an address the caller already knows but
// holds no key material for at all — a watch-only address supplied by
// another party. It refuses every address-generation and signing call, so
// a transaction can reference the address without this library ever
// pretending it could produce a valid unlock for it.
type PlaceholderBackend struct{}

// NewPlaceholderBackend returns a SecretManager that can never generate
// addresses or sign; its only legitimate use is as a dummy Backend.
func NewPlaceholderBackend() SecretManager {
	return New(&PlaceholderBackend{})
}

func (PlaceholderBackend) GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error) {
	return nil, ledger.NewSecretBackendError("placeholder backend cannot generate addresses")
}

func (PlaceholderBackend) SignatureUnlock(addr ledger.Address, essenceHash [32]byte, inputs []ledger.InputSigningData) (ledger.SignatureUnlock, error) {
	return ledger.SignatureUnlock{}, ledger.NewSecretBackendError("placeholder backend cannot sign for address %s", addr.String())
}
