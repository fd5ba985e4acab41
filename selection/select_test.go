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
	"errors"
	"testing"

	"github.com/blinklabs-io/meshledger/ledger"
)

func ed25519Addr(b byte) ledger.Address {
	var raw [20]byte
	raw[0] = b
	return ledger.NewEd25519Address(raw)
}

func basicInput(id byte, addr ledger.Address, amount uint64) ledger.InputSigningData {
	var txID [32]byte
	txID[0] = id
	return ledger.InputSigningData{
		Output: &ledger.BasicOutput{
			Amount: amount,
			UnlockConditions: ledger.UnlockConditionSet{
				Address: &ledger.AddressUnlockCondition{Address: addr},
			},
		},
		OutputMetadata: ledger.OutputMetadata{OutputID: ledger.NewOutputID(txID, 0)},
	}
}

func basicOutput(addr ledger.Address, amount uint64) *ledger.BasicOutput {
	return &ledger.BasicOutput{
		Amount: amount,
		UnlockConditions: ledger.UnlockConditionSet{
			Address: &ledger.AddressUnlockCondition{Address: addr},
		},
	}
}

func defaultParams() ledger.ProtocolParameters {
	return ledger.DefaultProtocolParameters()
}

func TestSelectPureValueSendExactAmountNoRemainder(t *testing.T) {
	sender := ed25519Addr(1)
	recipient := ed25519Addr(2)
	in := basicInput(1, sender, 1_000_000)

	req := Request{
		RequiredOutputs: ledger.Outputs{basicOutput(recipient, 1_000_000)},
		AvailableInputs: []ledger.InputSigningData{in},
		ProtocolParams:  defaultParams(),
	}
	sel, err := Select(req)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(sel.Inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(sel.Inputs))
	}
	if sel.Remainder != nil {
		t.Errorf("expected no remainder for an exact-amount send, got %+v", sel.Remainder)
	}
}

func TestSelectPureValueSendWithRemainder(t *testing.T) {
	sender := ed25519Addr(1)
	recipient := ed25519Addr(2)
	in := basicInput(1, sender, 2_000_000)

	req := Request{
		RequiredOutputs: ledger.Outputs{basicOutput(recipient, 1_000_000)},
		AvailableInputs: []ledger.InputSigningData{in},
		RemainderAddress: &sender,
		ProtocolParams:  defaultParams(),
	}
	sel, err := Select(req)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Remainder == nil {
		t.Fatalf("expected a remainder output")
	}
	if sel.Remainder.Deposit() != 1_000_000 {
		t.Errorf("got remainder %d, want 1000000", sel.Remainder.Deposit())
	}
}

func TestSelectSenderFeatureMissingInputReportsEd25519Address(t *testing.T) {
	sender := ed25519Addr(9)
	recipient := ed25519Addr(2)
	out := basicOutput(recipient, 1_000_000)
	out.Features.Sender = &sender

	req := Request{
		RequiredOutputs: ledger.Outputs{out},
		ProtocolParams:  defaultParams(),
	}
	_, err := Select(req)
	var missing *ledger.MissingInputWithEd25519AddressError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingInputWithEd25519AddressError, got %v", err)
	}
	if !missing.Address.Equal(sender) {
		t.Errorf("got address %v, want %v", missing.Address, sender)
	}
}

func TestSelectBurnAliasOmitsContinuation(t *testing.T) {
	owner := ed25519Addr(1)
	var aliasID ledger.AliasID
	aliasID[0] = 0x7

	var txID [32]byte
	txID[1] = 1
	aliasIn := ledger.InputSigningData{
		Output: &ledger.AliasOutput{
			Amount:  500_000,
			AliasID: aliasID,
			UnlockConditions: ledger.UnlockConditionSet{
				StateControllerAddress: &ledger.StateControllerAddressUnlockCondition{Address: owner},
				GovernorAddress:        &ledger.GovernorAddressUnlockCondition{Address: owner},
			},
		},
		OutputMetadata: ledger.OutputMetadata{OutputID: ledger.NewOutputID(txID, 0)},
	}
	funding := basicInput(2, owner, 500_000)

	burn := ledger.NewBurn().AddAlias(aliasID)
	req := Request{
		RequiredInputs:  []ledger.InputSigningData{aliasIn},
		AvailableInputs: []ledger.InputSigningData{funding},
		RemainderAddress: &owner,
		Burn:            burn,
		ProtocolParams:  defaultParams(),
	}
	sel, err := Select(req)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	for _, o := range sel.Outputs {
		if a, ok := o.(*ledger.AliasOutput); ok && a.AliasID == aliasID {
			t.Fatalf("expected the burned alias to have no continuation output")
		}
	}
}

func TestSelectConsolidationRequiredAboveInputCap(t *testing.T) {
	sender := ed25519Addr(3)
	recipient := ed25519Addr(4)

	var ins []ledger.InputSigningData
	for i := 0; i < 130; i++ {
		ins = append(ins, basicInput(byte(i%256), sender, 1000))
	}
	req := Request{
		RequiredInputs:  ins,
		RequiredOutputs: ledger.Outputs{basicOutput(recipient, 1000)},
		ProtocolParams:  defaultParams(),
	}
	_, err := Select(req)
	var consolidation *ledger.ConsolidationRequiredError
	if !errors.As(err, &consolidation) {
		t.Fatalf("expected ConsolidationRequiredError, got %v", err)
	}
}
