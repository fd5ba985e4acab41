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

// DeviceTransport is the narrow wire the hardware-device backend speaks
// over: public-key export and signing, both addressed by derivation path,
// both capable of failing for reasons outside this library's control (a
// locked device, a denied prompt, a disconnected cable).
type DeviceTransport interface {
	PublicKey(path address.Path) ([32]byte, error)
	Sign(path address.Path, message []byte) ([64]byte, error)
}

// DeviceBackend drives an external signer over a DeviceTransport, never
// holding key material itself. GenerateAddresses walks the transport's
// public-key export one index at a time, which is slower than the
// in-memory backend by design: every address costs a device round trip.
type DeviceBackend struct {
	transport DeviceTransport
	coinType  uint32
}

// NewDeviceBackend wraps a SecretManager around a hardware/device
// transport.
func NewDeviceBackend(transport DeviceTransport) SecretManager {
	return New(&DeviceBackend{transport: transport})
}

func (b *DeviceBackend) GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error) {
	out := make([]address.Generated, 0, opts.Count)
	for i := uint32(0); i < opts.Count; i++ {
		path := address.Path{CoinType: opts.CoinType, Account: opts.Account, Change: opts.Change, Index: opts.Start + i}
		pub, err := b.transport.PublicKey(path)
		if err != nil {
			return nil, ledger.NewSecretBackendError("device public key export failed at index %d: %s", path.Index, err)
		}
		out = append(out, address.Generated{Address: address.AddressFromPublicKeyBytes(pub[:]), Path: path})
	}
	return out, nil
}

func (b *DeviceBackend) SignatureUnlock(addr ledger.Address, essenceHash [32]byte, inputs []ledger.InputSigningData) (ledger.SignatureUnlock, error) {
	chain, ok := findChainForAddress(b.transport, addr, inputs)
	if !ok {
		return ledger.SignatureUnlock{}, ledger.NewSecretBackendError("device holds no derivation chain for address %s", addr.String())
	}
	path := address.Path{CoinType: chain.CoinType, Account: chain.Account, Change: chain.Change, Index: chain.AddressIndex}
	pub, err := b.transport.PublicKey(path)
	if err != nil {
		return ledger.SignatureUnlock{}, ledger.NewSecretBackendError("device public key export failed: %s", err)
	}
	sig, err := b.transport.Sign(path, essenceHash[:])
	if err != nil {
		return ledger.SignatureUnlock{}, ledger.NewSecretBackendError("device denied signing request: %s", err)
	}
	return ledger.SignatureUnlock{PublicKey: pub, Signature: sig}, nil
}

func findChainForAddress(t DeviceTransport, addr ledger.Address, inputs []ledger.InputSigningData) (ledger.DerivationChain, bool) {
	for _, in := range inputs {
		if in.Chain == nil {
			continue
		}
		path := address.Path{CoinType: in.Chain.CoinType, Account: in.Chain.Account, Change: in.Chain.Change, Index: in.Chain.AddressIndex}
		pub, err := t.PublicKey(path)
		if err != nil {
			continue
		}
		if address.AddressFromPublicKeyBytes(pub[:]).Equal(addr) {
			return *in.Chain, true
		}
	}
	return ledger.DerivationChain{}, false
}
