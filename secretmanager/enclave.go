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
	"sync"

	"github.com/blinklabs-io/meshledger/address"
	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/dgraph-io/badger/v4"
)

const enclaveSeedKey = "secretmanager/enclave/seed"

// EnclaveBackend keeps its seed in memory only while unlocked, persisting
// a snapshot to a badger store on Flush so the unlocked state survives a
// process restart without writing the seed to disk unencrypted at every
// derivation. Lock clears the in-memory copy; any signing or address
// generation call afterward fails with ledger.ErrKeyCleared until Unlock
// re-opens the snapshot.
type EnclaveBackend struct {
	db *badger.DB

	mu   sync.RWMutex
	seed []byte
}

// OpenEnclaveBackend opens (creating if absent) a badger store at dir and
// returns an EnclaveBackend (wrap it with New for a SecretManager) whose
// key material starts locked; call Unlock or Seed before the first
// GenerateAddresses/SignatureUnlock call.
func OpenEnclaveBackend(dir string) (*EnclaveBackend, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, ledger.NewSecretBackendError("opening enclave store: %s", err)
	}
	return &EnclaveBackend{db: db}, nil
}

// Seed sets the in-memory seed and immediately snapshots it to the
// backing store.
func (b *EnclaveBackend) Seed(seed []byte) error {
	b.mu.Lock()
	b.seed = append([]byte{}, seed...)
	b.mu.Unlock()
	return b.Flush()
}

// Flush persists the current in-memory seed to the badger store. It is
// the only way this backend's key material reaches disk.
func (b *EnclaveBackend) Flush() error {
	b.mu.RLock()
	seed := append([]byte{}, b.seed...)
	b.mu.RUnlock()
	if seed == nil {
		return nil
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(enclaveSeedKey), seed)
	})
}

// Unlock loads the seed snapshot from the badger store back into memory.
func (b *EnclaveBackend) Unlock() error {
	var seed []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(enclaveSeedKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			seed = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return ledger.NewSecretBackendError("enclave snapshot unavailable: %s", err)
	}
	b.mu.Lock()
	b.seed = seed
	b.mu.Unlock()
	return nil
}

// Lock clears the in-memory seed. The badger snapshot on disk is
// untouched, so a later Unlock recovers it.
func (b *EnclaveBackend) Lock() {
	b.mu.Lock()
	b.seed = nil
	b.mu.Unlock()
}

func (b *EnclaveBackend) currentSeed() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.seed == nil {
		return nil, ledger.ErrKeyCleared
	}
	return b.seed, nil
}

func (b *EnclaveBackend) GenerateAddresses(opts GenerateAddressesOptions) ([]address.Generated, error) {
	seed, err := b.currentSeed()
	if err != nil {
		return nil, err
	}
	gen := address.Generator{Seed: seed, CoinType: opts.CoinType, Account: opts.Account}
	return gen.Range(opts.Change, opts.Start, opts.Count), nil
}

func (b *EnclaveBackend) SignatureUnlock(addr ledger.Address, essenceHash [32]byte, inputs []ledger.InputSigningData) (ledger.SignatureUnlock, error) {
	seed, err := b.currentSeed()
	if err != nil {
		return ledger.SignatureUnlock{}, err
	}
	chain, ok := findOwningChain(seed, addr, inputs)
	if !ok {
		return ledger.SignatureUnlock{}, ledger.NewSecretBackendError("enclave holds no derivation chain for address %s", addr.String())
	}
	path := address.Path{CoinType: chain.CoinType, Account: chain.Account, Change: chain.Change, Index: chain.AddressIndex}
	pub := address.DerivePublicKey(seed, path)
	sig := address.Sign(seed, path, essenceHash[:])

	var out ledger.SignatureUnlock
	copy(out.PublicKey[:], pub)
	out.Signature = sig
	return out, nil
}
