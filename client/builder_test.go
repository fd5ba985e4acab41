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

package client

import (
	"context"
	"testing"

	"github.com/blinklabs-io/meshledger/address"
	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/blinklabs-io/meshledger/nodeview"
	"github.com/blinklabs-io/meshledger/secretmanager"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// fakeNodeView answers every funded-address lookup from a fixed set of
// outputs keyed by the owning address, and otherwise reports no results.
type fakeNodeView struct {
	params  ledger.ProtocolParameters
	now     uint32
	funded  map[ledger.Address]nodeview.OutputWithMetadata
	nextTx  byte
}

func (f *fakeNodeView) BasicOutputIDs(ctx context.Context, q nodeview.BasicOutputQuery) (nodeview.OutputIDPage, error) {
	if q.Address == nil {
		return nodeview.OutputIDPage{}, nil
	}
	owm, ok := f.funded[*q.Address]
	if !ok {
		return nodeview.OutputIDPage{}, nil
	}
	return nodeview.OutputIDPage{Items: []ledger.OutputID{owm.OutputMetadata.OutputID}}, nil
}

func (f *fakeNodeView) AliasOutputID(ctx context.Context, id ledger.AliasID) (ledger.OutputID, bool, error) {
	return ledger.OutputID{}, false, nil
}

func (f *fakeNodeView) NFTOutputID(ctx context.Context, id ledger.NFTID) (ledger.OutputID, bool, error) {
	return ledger.OutputID{}, false, nil
}

func (f *fakeNodeView) FoundryOutputID(ctx context.Context, id ledger.FoundryID) (ledger.OutputID, bool, error) {
	return ledger.OutputID{}, false, nil
}

func (f *fakeNodeView) GetOutputs(ctx context.Context, ids []ledger.OutputID) ([]nodeview.OutputWithMetadata, error) {
	var out []nodeview.OutputWithMetadata
	for _, id := range ids {
		for _, owm := range f.funded {
			if owm.OutputMetadata.OutputID == id {
				out = append(out, owm)
			}
		}
	}
	return out, nil
}

func (f *fakeNodeView) ProtocolParameters(ctx context.Context) (ledger.ProtocolParameters, error) {
	return f.params, nil
}

func (f *fakeNodeView) TimeChecked(ctx context.Context) (uint32, error) {
	return f.now, nil
}

func (f *fakeNodeView) SubmitBlock(ctx context.Context, blockBytes []byte) ([32]byte, error) {
	return [32]byte{}, nil
}

func (f *fakeNodeView) fund(addr ledger.Address, amount uint64) {
	var txID ledger.TransactionID
	txID[0] = f.nextTx
	f.nextTx++
	out := &ledger.BasicOutput{
		Amount:           amount,
		UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}},
	}
	id := ledger.NewOutputID(txID, 0)
	f.funded[addr] = nodeview.OutputWithMetadata{
		Output:         out,
		OutputMetadata: ledger.OutputMetadata{OutputID: id},
	}
}

func TestTransactionBuilderFinishDiscoversFundsAndSigns(t *testing.T) {
	sm, err := secretmanager.NewMnemonicBackend(testMnemonic)
	if err != nil {
		t.Fatalf("NewMnemonicBackend: %v", err)
	}
	gen := address.Generator{Seed: mustSeed(t), CoinType: 4218}
	funded := gen.Range(false, 0, 1)[0]

	nv := &fakeNodeView{
		params: ledger.DefaultProtocolParameters(),
		now:    1000,
		funded: map[ledger.Address]nodeview.OutputWithMetadata{},
	}
	nv.fund(funded.Address, 5_000_000)

	recipient := gen.Range(true, 0, 1)[0].Address
	recipientBech32, err := recipient.Bech32("smr")
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}

	c := New(nv, "smr", nil)
	block, err := c.NewTransactionBuilder().
		WithSecretManager(sm).
		WithCoinType(4218).
		WithOutput(recipientBech32, 1_000_000).
		Finish(context.Background())
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if len(block.Transaction.Essence.Inputs) == 0 {
		t.Fatalf("expected at least one input in the finished essence")
	}
	if len(block.Transaction.Unlocks) != len(block.Transaction.Essence.Inputs) {
		t.Fatalf("expected one unlock per input, got %d unlocks for %d inputs",
			len(block.Transaction.Unlocks), len(block.Transaction.Essence.Inputs))
	}
}

func TestTransactionBuilderFinishRequiresSecretManager(t *testing.T) {
	nv := &fakeNodeView{params: ledger.DefaultProtocolParameters(), funded: map[ledger.Address]nodeview.OutputWithMetadata{}}
	c := New(nv, "smr", nil)
	_, err := c.NewTransactionBuilder().Finish(context.Background())
	if err == nil {
		t.Errorf("expected an error when no secret manager is configured")
	}
}

func mustSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := address.SeedFromMnemonic(testMnemonic)
	if err != nil {
		t.Fatalf("SeedFromMnemonic: %v", err)
	}
	return seed
}
