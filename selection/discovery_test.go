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

package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/blinklabs-io/meshledger/nodeview"
)

// fakeDiscoveryNodeView answers BasicOutputIDs/GetOutputs from a fixed
// address-to-output map and otherwise returns empty results.
type fakeDiscoveryNodeView struct {
	nodeview.NodeView
	funded map[ledger.Address]*ledger.BasicOutput
}

func (f *fakeDiscoveryNodeView) BasicOutputIDs(ctx context.Context, q nodeview.BasicOutputQuery) (nodeview.OutputIDPage, error) {
	if q.Address == nil {
		return nodeview.OutputIDPage{}, nil
	}
	if _, ok := f.funded[*q.Address]; !ok {
		return nodeview.OutputIDPage{}, nil
	}
	var txID ledger.TransactionID
	txID[0] = q.Address.Payload[0]
	return nodeview.OutputIDPage{Items: []ledger.OutputID{ledger.NewOutputID(txID, 0)}}, nil
}

func (f *fakeDiscoveryNodeView) GetOutputs(ctx context.Context, ids []ledger.OutputID) ([]nodeview.OutputWithMetadata, error) {
	var out []nodeview.OutputWithMetadata
	for addr, output := range f.funded {
		for _, id := range ids {
			if id.TransactionID[0] == addr.Payload[0] {
				out = append(out, nodeview.OutputWithMetadata{Output: output, OutputMetadata: ledger.OutputMetadata{OutputID: id}})
			}
		}
	}
	return out, nil
}

func TestSelectWithDiscoveryFindsFundedAddressInFirstWindow(t *testing.T) {
	funded := ed25519Addr(5)
	nv := &fakeDiscoveryNodeView{funded: map[ledger.Address]*ledger.BasicOutput{funded: basicOutput(funded, 2_000_000)}}

	addresses := func(change bool, start, count uint32) ([]AddressCandidate, error) {
		out := make([]AddressCandidate, 0, count)
		for i := uint32(0); i < count; i++ {
			addr := ed25519Addr(byte(5 + i))
			if !change && start+i == 0 {
				addr = funded
			}
			out = append(out, AddressCandidate{Address: addr, Chain: ledger.DerivationChain{AddressIndex: start + i}})
		}
		return out, nil
	}

	req := Request{
		RequiredOutputs: ledger.Outputs{basicOutput(ed25519Addr(9), 1_000_000)},
		ProtocolParams:  defaultParams(),
	}
	selected, err := SelectWithDiscovery(context.Background(), DiscoveryRequest{Request: req, NodeView: nv, Addresses: addresses})
	if err != nil {
		t.Fatalf("SelectWithDiscovery: %v", err)
	}
	if len(selected.Inputs) == 0 {
		t.Fatalf("expected the funded address to be discovered and selected")
	}
}

func TestSelectWithDiscoveryReturnsErrNoInputsWhenNothingFunded(t *testing.T) {
	nv := &fakeDiscoveryNodeView{funded: map[ledger.Address]*ledger.BasicOutput{}}
	addresses := func(change bool, start, count uint32) ([]AddressCandidate, error) {
		out := make([]AddressCandidate, 0, count)
		for i := uint32(0); i < count; i++ {
			out = append(out, AddressCandidate{Address: ed25519Addr(byte(start + i + 1)), Chain: ledger.DerivationChain{AddressIndex: start + i}})
		}
		return out, nil
	}

	req := Request{
		RequiredOutputs: ledger.Outputs{basicOutput(ed25519Addr(9), 1_000_000)},
		ProtocolParams:  defaultParams(),
	}
	_, err := SelectWithDiscovery(context.Background(), DiscoveryRequest{Request: req, NodeView: nv, Addresses: addresses})
	if !errors.Is(err, ledger.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got %v", err)
	}
}
