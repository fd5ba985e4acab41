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

package ledger

import (
	"bytes"
	"math/big"
	"testing"
)

func basicOutputFixture(amount uint64) *BasicOutput {
	var raw [20]byte
	raw[0] = 0x1
	return &BasicOutput{
		Amount: amount,
		UnlockConditions: UnlockConditionSet{
			Address: &AddressUnlockCondition{Address: NewEd25519Address(raw)},
		},
	}
}

func TestBasicOutputSerializeDeterministic(t *testing.T) {
	o := basicOutputFixture(1_000_000)
	a, err := o.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b, err := o.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("expected repeated serialization of the same output to be identical")
	}
}

func TestBasicOutputSerializeDiffersByAmount(t *testing.T) {
	a, err := basicOutputFixture(1).Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b, err := basicOutputFixture(2).Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Errorf("expected different amounts to serialize differently")
	}
}

func TestTokenSchemeCirculatingSupply(t *testing.T) {
	ts := TokenScheme{
		Kind:         TokenSchemeSimple,
		MintedTokens: big.NewInt(100),
		MeltedTokens: big.NewInt(40),
	}
	got := ts.CirculatingSupply()
	if got.Cmp(big.NewInt(60)) != 0 {
		t.Errorf("got %s, want 60", got)
	}
}

func TestFoundryIDDerivedFromImmutableAliasAddress(t *testing.T) {
	var aliasID AliasID
	aliasID[0] = 0x3
	f := &FoundryOutput{
		SerialNumber: 1,
		TokenScheme:  TokenScheme{Kind: TokenSchemeSimple},
		UnlockConditions: UnlockConditionSet{
			ImmutableAliasAddress: &ImmutableAliasAddressUnlockCondition{
				Address: NewAliasAddress(aliasID),
			},
		},
	}
	id, ok := f.FoundryID()
	if !ok {
		t.Fatalf("expected FoundryID to resolve")
	}
	want := NewFoundryID(aliasID, 1, byte(TokenSchemeSimple))
	if id != want {
		t.Errorf("got %s, want %s", id, want)
	}
}

func TestFoundryIDMissingCondition(t *testing.T) {
	f := &FoundryOutput{SerialNumber: 1}
	if _, ok := f.FoundryID(); ok {
		t.Errorf("expected FoundryID to fail without an ImmutableAliasAddress condition")
	}
}

func TestOutputKindString(t *testing.T) {
	cases := map[OutputKind]string{
		OutputBasic:    "BasicOutput",
		OutputAlias:    "AliasOutput",
		OutputFoundry:  "FoundryOutput",
		OutputNFT:      "NftOutput",
		OutputTreasury: "TreasuryOutput",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("kind %d: got %q, want %q", kind, got, want)
		}
	}
}
