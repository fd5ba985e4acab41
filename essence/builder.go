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

// Package essence turns a Selected input/output/remainder set into a
// signable TransactionEssence: canonical input ordering, the inputs
// commitment over spent outputs, and the optional tagged-data payload.
package essence

import (
	"github.com/blinklabs-io/meshledger/ledger"
)

// Options carries the pieces of an essence that Selection doesn't decide:
// the network id to stamp it with and an optional tagged-data payload.
type Options struct {
	NetworkID uint64
	Tag       []byte
	Data      []byte
}

// Build assembles a TransactionEssence from a Selected result, sorting
// inputs canonically, computing the inputs commitment over the spent
// outputs in that order, and enforcing the protocol's maximum essence
// length.
func Build(selected *ledger.Selected, params ledger.ProtocolParameters, opts Options) (*ledger.TransactionEssence, error) {
	ids := make([]ledger.OutputID, len(selected.Inputs))
	spent := make([]ledger.Output, len(selected.Inputs))
	byID := make(map[ledger.OutputID]ledger.Output, len(selected.Inputs))
	for _, in := range selected.Inputs {
		byID[in.OutputMetadata.OutputID] = in.Output
	}
	for i, in := range selected.Inputs {
		ids[i] = in.OutputMetadata.OutputID
	}
	ledger.SortInputs(ids)
	for i, id := range ids {
		spent[i] = byID[id]
	}

	commitment, err := ledger.ComputeInputsCommitment(spent)
	if err != nil {
		return nil, err
	}

	var payload *ledger.TaggedDataPayload
	if len(opts.Tag) > 0 || len(opts.Data) > 0 {
		payload = &ledger.TaggedDataPayload{Tag: opts.Tag, Data: opts.Data}
	}

	networkID := opts.NetworkID
	if networkID == 0 {
		networkID = params.NetworkID
	}

	outputs := append(ledger.Outputs{}, selected.Outputs...)
	if err := ledger.SortOutputs(outputs); err != nil {
		return nil, err
	}

	e := &ledger.TransactionEssence{
		NetworkID:        networkID,
		Inputs:           ids,
		InputsCommitment: commitment,
		Outputs:          outputs,
		Payload:          payload,
	}
	if err := e.CheckSize(params.MaxEssenceLength); err != nil {
		return nil, err
	}
	return e, nil
}
