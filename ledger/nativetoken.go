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

import "math/big"

// NativeToken is an amount of a fungible token identified by its
// controlling foundry, the way internal/common.AssetAmount pairs a class
// with an amount for Cardano native assets.
type NativeToken struct {
	ID     NativeTokenID
	Amount *big.Int
}

// NativeTokenSum accumulates per-token amounts across an input or output
// set, keyed by the token's NativeTokenID.
type NativeTokenSum map[NativeTokenID]*big.Int

func NewNativeTokenSum() NativeTokenSum { return make(NativeTokenSum) }

func (s NativeTokenSum) Add(id NativeTokenID, amount *big.Int) {
	if amount == nil {
		return
	}
	cur, ok := s[id]
	if !ok {
		cur = new(big.Int)
		s[id] = cur
	}
	cur.Add(cur, amount)
}

// Sub is the Add counterpart for balancing out-going amounts (melted,
// burned, spent-side balances).
func (s NativeTokenSum) Sub(id NativeTokenID, amount *big.Int) {
	if amount == nil {
		return
	}
	cur, ok := s[id]
	if !ok {
		cur = new(big.Int)
		s[id] = cur
	}
	cur.Sub(cur, amount)
}

// Clone returns a deep copy so callers can mutate the result without
// aliasing the receiver.
func (s NativeTokenSum) Clone() NativeTokenSum {
	out := NewNativeTokenSum()
	for id, amt := range s {
		out[id] = new(big.Int).Set(amt)
	}
	return out
}
