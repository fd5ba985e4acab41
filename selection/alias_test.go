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

func aliasInputAt(id byte, aliasID ledger.AliasID, stateIndex uint32, state, governor ledger.Address) ledger.InputSigningData {
	var txID [32]byte
	txID[2] = id
	return ledger.InputSigningData{
		Output: &ledger.AliasOutput{
			Amount:     500_000,
			AliasID:    aliasID,
			StateIndex: stateIndex,
			UnlockConditions: ledger.UnlockConditionSet{
				StateControllerAddress: &ledger.StateControllerAddressUnlockCondition{Address: state},
				GovernorAddress:        &ledger.GovernorAddressUnlockCondition{Address: governor},
			},
		},
		OutputMetadata: ledger.OutputMetadata{OutputID: ledger.NewOutputID(txID, 0)},
	}
}

func aliasOutputAt(aliasID ledger.AliasID, stateIndex uint32, state, governor ledger.Address) *ledger.AliasOutput {
	return &ledger.AliasOutput{
		Amount:     500_000,
		AliasID:    aliasID,
		StateIndex: stateIndex,
		UnlockConditions: ledger.UnlockConditionSet{
			StateControllerAddress: &ledger.StateControllerAddressUnlockCondition{Address: state},
			GovernorAddress:        &ledger.GovernorAddressUnlockCondition{Address: governor},
		},
	}
}

// TestSelectAliasStateTransitionSucceedsWithAdvancedStateIndex covers the
// happy path end to end through Select: a caller who bumps StateIndex on
// the continuation output gets a state transition with no complaint.
func TestSelectAliasStateTransitionSucceedsWithAdvancedStateIndex(t *testing.T) {
	state := ed25519Addr(1)
	governor := ed25519Addr(2)
	var aliasID ledger.AliasID
	aliasID[0] = 0x4

	in := aliasInputAt(1, aliasID, 1, state, governor)
	out := aliasOutputAt(aliasID, 2, state, governor)
	funding := basicInput(2, state, 500_000)

	req := Request{
		RequiredInputs:   []ledger.InputSigningData{in},
		RequiredOutputs:  ledger.Outputs{out},
		AvailableInputs:  []ledger.InputSigningData{funding},
		RemainderAddress: &state,
		ProtocolParams:   defaultParams(),
	}
	if _, err := Select(req); err != nil {
		t.Fatalf("Select: %v", err)
	}
}

// TestCheckAliasTransitionRejectsUnchangedStateIndex exercises
// checkAliasTransition directly: a requirement explicitly asking for a
// state transition must fail when the only output on offer for the alias
// carries an unchanged StateIndex (a governance-shaped continuation).
func TestCheckAliasTransitionRejectsUnchangedStateIndex(t *testing.T) {
	state := ed25519Addr(1)
	governor := ed25519Addr(2)
	var aliasID ledger.AliasID
	aliasID[0] = 0x4

	in := aliasInputAt(1, aliasID, 1, state, governor)
	out := aliasOutputAt(aliasID, 1, state, governor)

	r := ChainObjectRequirement(&aliasID, nil, nil, TransitionState)
	err := checkAliasTransition(r, in, ledger.Outputs{out}, ledger.NewBurn())
	var unfulfillable *ledger.UnfulfillableRequirementError
	if !errors.As(err, &unfulfillable) {
		t.Fatalf("expected UnfulfillableRequirementError, got %v", err)
	}
}

// TestCheckAliasTransitionRejectsBurnedAlias covers the other shape of the
// same conflict: a state transition required for an alias that the
// caller's Burn hint says should be destroyed instead.
func TestCheckAliasTransitionRejectsBurnedAlias(t *testing.T) {
	state := ed25519Addr(1)
	governor := ed25519Addr(2)
	var aliasID ledger.AliasID
	aliasID[0] = 0x4

	in := aliasInputAt(1, aliasID, 1, state, governor)
	burn := ledger.NewBurn().AddAlias(aliasID)

	r := ChainObjectRequirement(&aliasID, nil, nil, TransitionState)
	err := checkAliasTransition(r, in, nil, burn)
	var unfulfillable *ledger.UnfulfillableRequirementError
	if !errors.As(err, &unfulfillable) {
		t.Fatalf("expected UnfulfillableRequirementError, got %v", err)
	}
}

func TestAliasTransitionReportsGovernanceWhenStateIndexUnchanged(t *testing.T) {
	state := ed25519Addr(1)
	governor := ed25519Addr(2)
	var aliasID ledger.AliasID
	aliasID[0] = 0x4

	in := aliasInputAt(1, aliasID, 1, state, governor).Output.(*ledger.AliasOutput)
	out := aliasOutputAt(aliasID, 1, state, governor)

	stateTransition, found := aliasTransition(aliasID, in, ledger.Outputs{out})
	if !found {
		t.Fatalf("expected to find the matching output")
	}
	if stateTransition {
		t.Errorf("expected a governance transition for an unchanged StateIndex")
	}
}

func TestAliasTransitionReportsStateWhenStateIndexAdvances(t *testing.T) {
	state := ed25519Addr(1)
	governor := ed25519Addr(2)
	var aliasID ledger.AliasID
	aliasID[0] = 0x4

	in := aliasInputAt(1, aliasID, 1, state, governor).Output.(*ledger.AliasOutput)
	out := aliasOutputAt(aliasID, 2, state, governor)

	stateTransition, found := aliasTransition(aliasID, in, ledger.Outputs{out})
	if !found {
		t.Fatalf("expected to find the matching output")
	}
	if !stateTransition {
		t.Errorf("expected a state transition for an advanced StateIndex")
	}
}
