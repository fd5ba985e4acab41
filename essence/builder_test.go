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

package essence

import (
	"testing"

	"github.com/blinklabs-io/meshledger/ledger"
)

func TestBuildSortsInputsAndComputesCommitment(t *testing.T) {
	var addrRaw [20]byte
	addrRaw[0] = 1
	addr := ledger.NewEd25519Address(addrRaw)

	var txA, txB [32]byte
	txA[0], txB[0] = 2, 1 // txB sorts first
	idA := ledger.NewOutputID(txA, 0)
	idB := ledger.NewOutputID(txB, 0)

	outA := &ledger.BasicOutput{Amount: 10, UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}}}
	outB := &ledger.BasicOutput{Amount: 20, UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}}}

	selected := &ledger.Selected{
		Inputs: []ledger.InputSigningData{
			{Output: outA, OutputMetadata: ledger.OutputMetadata{OutputID: idA}},
			{Output: outB, OutputMetadata: ledger.OutputMetadata{OutputID: idB}},
		},
		Outputs: ledger.Outputs{&ledger.BasicOutput{Amount: 30, UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}}}},
	}

	params := ledger.DefaultProtocolParameters()
	e, err := Build(selected, params, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !e.Inputs[0].Less(e.Inputs[1]) {
		t.Errorf("expected inputs sorted ascending by OutputID")
	}
	if e.NetworkID != params.NetworkID {
		t.Errorf("got network id %d, want %d", e.NetworkID, params.NetworkID)
	}

	expected, err := ledger.ComputeInputsCommitment([]ledger.Output{outB, outA})
	if err != nil {
		t.Fatalf("ComputeInputsCommitment: %v", err)
	}
	if e.InputsCommitment != expected {
		t.Errorf("inputs commitment mismatch")
	}
}

func TestBuildAttachesTaggedDataPayload(t *testing.T) {
	var addrRaw [20]byte
	addr := ledger.NewEd25519Address(addrRaw)
	out := &ledger.BasicOutput{Amount: 10, UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}}}
	var txID [32]byte
	selected := &ledger.Selected{
		Inputs:  []ledger.InputSigningData{{Output: out, OutputMetadata: ledger.OutputMetadata{OutputID: ledger.NewOutputID(txID, 0)}}},
		Outputs: ledger.Outputs{out},
	}
	e, err := Build(selected, ledger.DefaultProtocolParameters(), Options{Tag: []byte("note"), Data: []byte("hello")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e.Payload == nil || string(e.Payload.Tag) != "note" || string(e.Payload.Data) != "hello" {
		t.Errorf("expected tagged data payload to round trip, got %+v", e.Payload)
	}
}

func TestBuildRejectsEssenceOverMaxLength(t *testing.T) {
	var addrRaw [20]byte
	addr := ledger.NewEd25519Address(addrRaw)
	out := &ledger.BasicOutput{Amount: 10, UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}}}
	var txID [32]byte
	selected := &ledger.Selected{
		Inputs:  []ledger.InputSigningData{{Output: out, OutputMetadata: ledger.OutputMetadata{OutputID: ledger.NewOutputID(txID, 0)}}},
		Outputs: ledger.Outputs{out},
	}
	params := ledger.DefaultProtocolParameters()
	params.MaxEssenceLength = 4
	if _, err := Build(selected, params, Options{}); err == nil {
		t.Errorf("expected an oversized essence to be rejected")
	}
}
