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

package nodeview

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/meshledger/ledger"
)

func TestDecodeOutputRoundTripsBasicOutput(t *testing.T) {
	var raw [20]byte
	raw[0] = 0x42
	original := &ledger.BasicOutput{
		Amount: 12345,
		UnlockConditions: ledger.UnlockConditionSet{
			Address: &ledger.AddressUnlockCondition{Address: ledger.NewEd25519Address(raw)},
		},
	}
	data, err := original.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	decoded, err := DecodeOutput(hex.EncodeToString(data))
	if err != nil {
		t.Fatalf("DecodeOutput: %v", err)
	}
	basic, ok := decoded.(*ledger.BasicOutput)
	if !ok {
		t.Fatalf("expected *ledger.BasicOutput, got %T", decoded)
	}
	if basic.Amount != original.Amount {
		t.Errorf("got amount %d, want %d", basic.Amount, original.Amount)
	}
	if basic.UnlockConditions.Address == nil || !basic.UnlockConditions.Address.Address.Equal(raw2Address(raw)) {
		t.Errorf("expected matching address unlock condition")
	}
}

func raw2Address(raw [20]byte) ledger.Address {
	return ledger.NewEd25519Address(raw)
}

func TestDecodeOutputRejectsMalformedHex(t *testing.T) {
	if _, err := DecodeOutput("not-hex"); err == nil {
		t.Errorf("expected malformed hex to fail")
	}
}

func TestDecodeOutputRoundTripsTreasuryOutput(t *testing.T) {
	original := &ledger.TreasuryOutput{Amount: 99}
	data, err := original.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	decoded, err := DecodeOutput(hex.EncodeToString(data))
	if err != nil {
		t.Fatalf("DecodeOutput: %v", err)
	}
	treasury, ok := decoded.(*ledger.TreasuryOutput)
	if !ok {
		t.Fatalf("expected *ledger.TreasuryOutput, got %T", decoded)
	}
	if treasury.Amount != 99 {
		t.Errorf("got %d, want 99", treasury.Amount)
	}
}
