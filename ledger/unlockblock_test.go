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

import "testing"

func TestTransactionSerializeEncodesDistinctUnlockKinds(t *testing.T) {
	essence := TransactionEssence{
		NetworkID: 1,
		Outputs: Outputs{
			&BasicOutput{
				Amount:           1,
				UnlockConditions: UnlockConditionSet{Address: &AddressUnlockCondition{Address: NewEd25519Address([20]byte{1})}},
			},
		},
	}
	tx := Transaction{
		Essence: essence,
		Unlocks: []Unlock{
			SignatureUnlock{PublicKey: [32]byte{1}, Signature: [64]byte{2}},
			ReferenceUnlock{Reference: 0},
		},
	}
	data, err := tx.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty serialized transaction")
	}
}

func TestTransactionSerializeRejectsUnsupportedUnlockType(t *testing.T) {
	tx := Transaction{Unlocks: []Unlock{unsupportedUnlock{}}}
	if _, err := tx.Serialize(); err == nil {
		t.Errorf("expected an error for an unsupported unlock type")
	}
}

type unsupportedUnlock struct{}

func (unsupportedUnlock) Kind() UnlockKind { return UnlockKind(255) }
