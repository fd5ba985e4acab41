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

// OutputKind tags the variant of an Output.
type OutputKind byte

const (
	OutputBasic OutputKind = iota
	OutputAlias
	OutputFoundry
	OutputNFT
	OutputTreasury
)

func (k OutputKind) String() string {
	switch k {
	case OutputBasic:
		return "BasicOutput"
	case OutputAlias:
		return "AliasOutput"
	case OutputFoundry:
		return "FoundryOutput"
	case OutputNFT:
		return "NftOutput"
	case OutputTreasury:
		return "TreasuryOutput"
	default:
		return "UnknownOutput"
	}
}

// Output is the common interface satisfied by all five output variants.
// Selection, the Essence Builder, and the Unlock Assembler only ever
// operate through this interface plus type switches on Kind().
type Output interface {
	Kind() OutputKind
	Deposit() uint64
	NativeTokens() []NativeToken
	// Serialize returns the canonical binary encoding used both for
	// byte-cost (storage deposit) calculation and for the Essence
	// Builder's canonical output ordering.
	Serialize() ([]byte, error)
}

// Outputs is an ordered list of Output, used for both the caller's desired
// outputs and a Selected result's final output list.
type Outputs []Output

// TokenSchemeKind tags a Foundry's token scheme. Only the simple variant is
// modeled; others are Non-goals per spec.md.
type TokenSchemeKind byte

const TokenSchemeSimple TokenSchemeKind = 0

// TokenScheme tracks a Foundry's minted/melted/maximum counters. The
// invariant minted−melted ≤ max must hold after every transition.
type TokenScheme struct {
	Kind         TokenSchemeKind
	MintedTokens *big.Int
	MeltedTokens *big.Int
	MaximumSupply *big.Int
}

// CirculatingSupply returns minted − melted.
func (t TokenScheme) CirculatingSupply() *big.Int {
	return new(big.Int).Sub(t.MintedTokens, t.MeltedTokens)
}

// BasicOutput is the common value-transfer output: amount, optional native
// tokens, an unlock-condition set, and optional features.
type BasicOutput struct {
	Amount            uint64
	Tokens            []NativeToken
	UnlockConditions  UnlockConditionSet
	Features          FeatureSet
}

func (o *BasicOutput) Kind() OutputKind          { return OutputBasic }
func (o *BasicOutput) Deposit() uint64           { return o.Amount }
func (o *BasicOutput) NativeTokens() []NativeToken { return o.Tokens }

// AliasOutput is a persistent on-chain state object controlled by a
// state-controller and a governor, and owning a foundry-counter used to
// mint Foundries.
type AliasOutput struct {
	Amount           uint64
	Tokens           []NativeToken
	AliasID          AliasID
	StateIndex       uint32
	FoundryCounter   uint32
	StateMetadata    []byte
	UnlockConditions UnlockConditionSet // StateControllerAddress + GovernorAddress
	Features         FeatureSet
	ImmutableFeatures ImmutableFeatureSet
}

func (o *AliasOutput) Kind() OutputKind          { return OutputAlias }
func (o *AliasOutput) Deposit() uint64           { return o.Amount }
func (o *AliasOutput) NativeTokens() []NativeToken { return o.Tokens }

// FoundryOutput defines and controls exactly one native token id. It is
// permanently bound to one alias via ImmutableAliasAddress.
type FoundryOutput struct {
	Amount           uint64
	Tokens           []NativeToken
	SerialNumber     uint32
	TokenScheme      TokenScheme
	UnlockConditions UnlockConditionSet // ImmutableAliasAddress only
	Features         FeatureSet
}

func (o *FoundryOutput) Kind() OutputKind          { return OutputFoundry }
func (o *FoundryOutput) Deposit() uint64           { return o.Amount }
func (o *FoundryOutput) NativeTokens() []NativeToken { return o.Tokens }

// FoundryID computes this foundry's chain id given its controlling alias.
func (o *FoundryOutput) FoundryID() (FoundryID, bool) {
	if o.UnlockConditions.ImmutableAliasAddress == nil {
		return FoundryID{}, false
	}
	aliasID, ok := o.UnlockConditions.ImmutableAliasAddress.Address.AliasID()
	if !ok {
		return FoundryID{}, false
	}
	return NewFoundryID(aliasID, o.SerialNumber, byte(o.TokenScheme.Kind)), true
}

// NFTOutput is a chain object whose address can own outputs and whose id
// is immutable after creation.
type NFTOutput struct {
	Amount           uint64
	Tokens           []NativeToken
	NFTID            NFTID
	UnlockConditions UnlockConditionSet // Address + optional SDR/Timelock/Expiration
	Features         FeatureSet
	ImmutableFeatures ImmutableFeatureSet
}

func (o *NFTOutput) Kind() OutputKind          { return OutputNFT }
func (o *NFTOutput) Deposit() uint64           { return o.Amount }
func (o *NFTOutput) NativeTokens() []NativeToken { return o.Tokens }

// TreasuryOutput carries only an amount and is never selectable as an
// input by this library.
type TreasuryOutput struct{ Amount uint64 }

func (o *TreasuryOutput) Kind() OutputKind            { return OutputTreasury }
func (o *TreasuryOutput) Deposit() uint64             { return o.Amount }
func (o *TreasuryOutput) NativeTokens() []NativeToken { return nil }
