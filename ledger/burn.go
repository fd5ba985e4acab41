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

// Burn records the caller's explicit intent to destroy chain objects and
// native tokens rather than carry them forward into a remainder or
// state-transition output. Selection treats an object named here as
// optional to preserve: the alias/nft/foundry may be dropped from the
// output set instead of forcing a transition, and the named native token
// amounts are excluded from the required-remainder calculation.
type Burn struct {
	Aliases      map[AliasID]struct{}
	NFTs         map[NFTID]struct{}
	Foundries    map[FoundryID]struct{}
	NativeTokens map[NativeTokenID]*big.Int
}

// NewBurn returns an empty Burn ready for incremental population.
func NewBurn() *Burn {
	return &Burn{
		Aliases:      make(map[AliasID]struct{}),
		NFTs:         make(map[NFTID]struct{}),
		Foundries:    make(map[FoundryID]struct{}),
		NativeTokens: make(map[NativeTokenID]*big.Int),
	}
}

func (b *Burn) AddAlias(id AliasID) *Burn       { b.Aliases[id] = struct{}{}; return b }
func (b *Burn) AddNFT(id NFTID) *Burn           { b.NFTs[id] = struct{}{}; return b }
func (b *Burn) AddFoundry(id FoundryID) *Burn   { b.Foundries[id] = struct{}{}; return b }

// AddNativeToken accumulates amount onto any previously hinted amount for
// id, since the caller may call this more than once for the same token.
func (b *Burn) AddNativeToken(id NativeTokenID, amount *big.Int) *Burn {
	if cur, ok := b.NativeTokens[id]; ok {
		b.NativeTokens[id] = new(big.Int).Add(cur, amount)
	} else {
		b.NativeTokens[id] = new(big.Int).Set(amount)
	}
	return b
}

func (b *Burn) HasAlias(id AliasID) bool     { _, ok := b.Aliases[id]; return ok }
func (b *Burn) HasNFT(id NFTID) bool         { _, ok := b.NFTs[id]; return ok }
func (b *Burn) HasFoundry(id FoundryID) bool { _, ok := b.Foundries[id]; return ok }
