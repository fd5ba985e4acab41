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
	"math/big"
	"testing"

	"github.com/blinklabs-io/meshledger/ledger"
)

func foundryInput(id byte, aliasID ledger.AliasID, serial uint32, minted, melted int64) (ledger.InputSigningData, ledger.FoundryID) {
	out := &ledger.FoundryOutput{
		Amount:       500_000,
		SerialNumber: serial,
		TokenScheme: ledger.TokenScheme{
			Kind:          ledger.TokenSchemeSimple,
			MintedTokens:  big.NewInt(minted),
			MeltedTokens:  big.NewInt(melted),
			MaximumSupply: big.NewInt(minted),
		},
		UnlockConditions: ledger.UnlockConditionSet{
			ImmutableAliasAddress: &ledger.ImmutableAliasAddressUnlockCondition{Address: ledger.NewAliasAddress(aliasID)},
		},
	}
	foundryID, ok := out.FoundryID()
	if !ok {
		panic("foundry id computation failed in test setup")
	}
	var txID [32]byte
	txID[1] = id
	return ledger.InputSigningData{
		Output:         out,
		OutputMetadata: ledger.OutputMetadata{OutputID: ledger.NewOutputID(txID, 0)},
	}, foundryID
}

func TestSelectDestroyFoundryRequiresExactBurnAccounting(t *testing.T) {
	owner := ed25519Addr(1)
	var aliasID ledger.AliasID
	aliasID[0] = 0x9

	in, foundryID := foundryInput(2, aliasID, 1, 1000, 0)
	funding := basicInput(3, owner, 500_000)

	burn := ledger.NewBurn().AddFoundry(foundryID).AddNativeToken(ledger.NativeTokenID(foundryID), big.NewInt(1000))
	req := Request{
		RequiredInputs:   []ledger.InputSigningData{in},
		AvailableInputs:  []ledger.InputSigningData{funding},
		RemainderAddress: &owner,
		Burn:             burn,
		ProtocolParams:   defaultParams(),
	}
	if _, err := Select(req); err != nil {
		t.Fatalf("Select: %v", err)
	}
}

func TestSelectDestroyFoundryRejectsMismatchedBurnHint(t *testing.T) {
	owner := ed25519Addr(1)
	var aliasID ledger.AliasID
	aliasID[0] = 0x9

	in, foundryID := foundryInput(2, aliasID, 1, 1000, 0)
	funding := basicInput(3, owner, 500_000)

	burn := ledger.NewBurn().AddFoundry(foundryID).AddNativeToken(ledger.NativeTokenID(foundryID), big.NewInt(400))
	req := Request{
		RequiredInputs:   []ledger.InputSigningData{in},
		AvailableInputs:  []ledger.InputSigningData{funding},
		RemainderAddress: &owner,
		Burn:             burn,
		ProtocolParams:   defaultParams(),
	}
	_, err := Select(req)
	var mismatch *ledger.NativeTokenBurnMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected NativeTokenBurnMismatchError, got %v", err)
	}
}

func TestSelectKeptFoundryCarriesContinuation(t *testing.T) {
	owner := ed25519Addr(1)
	var aliasID ledger.AliasID
	aliasID[0] = 0x9

	in, foundryID := foundryInput(2, aliasID, 1, 1000, 0)
	funding := basicInput(3, owner, 500_000)

	req := Request{
		RequiredInputs:   []ledger.InputSigningData{in},
		AvailableInputs:  []ledger.InputSigningData{funding},
		RemainderAddress: &owner,
		ProtocolParams:   defaultParams(),
	}
	sel, err := Select(req)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	found := false
	for _, o := range sel.Outputs {
		if f, ok := o.(*ledger.FoundryOutput); ok {
			if id, ok := f.FoundryID(); ok && id == foundryID {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a continuation output for the non-burned foundry")
	}
}
