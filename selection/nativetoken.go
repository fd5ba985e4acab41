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
	"math/big"

	"github.com/blinklabs-io/meshledger/ledger"
)

// seedNativeTokenRequirements pushes one NativeTokens requirement per
// distinct token id carried by outputs, so Select balances every native
// token the caller's requested outputs ask for, not just the base amount.
func seedNativeTokenRequirements(q *Queue, outputs ledger.Outputs) {
	seen := make(map[ledger.NativeTokenID]bool)
	for _, o := range outputs {
		for _, t := range o.NativeTokens() {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			q.Push(NativeTokensRequirement(t.ID))
		}
	}
}

// tokenAmount sums the amount of token id carried across outs.
func tokenAmount(outs []ledger.Output, id ledger.NativeTokenID) *big.Int {
	sum := big.NewInt(0)
	for _, o := range outs {
		for _, t := range o.NativeTokens() {
			if t.ID == id {
				sum.Add(sum, t.Amount)
			}
		}
	}
	return sum
}

// findFoundryOutput returns the output set's foundry output for id, if
// any — either the caller's own requested output or an auto-continued
// one synthesized earlier in the same Select call.
func findFoundryOutput(outs ledger.Outputs, id ledger.FoundryID) (*ledger.FoundryOutput, bool) {
	for _, o := range outs {
		f, ok := o.(*ledger.FoundryOutput)
		if !ok {
			continue
		}
		if fid, ok := f.FoundryID(); ok && fid == id {
			return f, true
		}
	}
	return nil, false
}

// findFoundryInput returns the foundry input for id among already-chosen
// and still-available inputs, without taking it.
func (s *state) findFoundryInput(id ledger.FoundryID) (*ledger.FoundryOutput, bool) {
	for _, in := range s.chosen {
		if f, ok := in.Output.(*ledger.FoundryOutput); ok {
			if fid, ok := f.FoundryID(); ok && fid == id {
				return f, true
			}
		}
	}
	for _, in := range s.req.AvailableInputs {
		if f, ok := in.Output.(*ledger.FoundryOutput); ok {
			if fid, ok := f.FoundryID(); ok && fid == id {
				return f, true
			}
		}
	}
	return nil, false
}

// satisfyNativeTokens balances one native token id per spec.md §4.C's
// input/output/mint/melt/burn invariant:
//
//	Σ inputs[id] + mintedDelta == Σ outputs[id] + meltedDelta + burned[id]
//
// mintedDelta/meltedDelta come from comparing id's controlling foundry's
// token scheme across its input and output state, when that foundry
// participates in this selection and isn't being destroyed (destroy
// accounting is checkFoundryBurnAccounting's job). Once the required
// input-side total is known, additional token-bearing available inputs
// are pulled, in AvailableInputs order, until it's met or exhausted.
func (s *state) satisfyNativeTokens(id ledger.NativeTokenID, burn *ledger.Burn) error {
	required := tokenAmount(s.outputs, id)

	burned := big.NewInt(0)
	if amt, ok := burn.NativeTokens[id]; ok {
		burned = amt
	}

	mintedDelta := big.NewInt(0)
	meltedDelta := big.NewInt(0)
	foundryID := ledger.FoundryID(id)
	if oldFoundry, ok := s.findFoundryInput(foundryID); ok && !burn.HasFoundry(foundryID) {
		if newFoundry, ok := findFoundryOutput(s.outputs, foundryID); ok {
			mintedDelta = new(big.Int).Sub(newFoundry.TokenScheme.MintedTokens, oldFoundry.TokenScheme.MintedTokens)
			meltedDelta = new(big.Int).Sub(newFoundry.TokenScheme.MeltedTokens, oldFoundry.TokenScheme.MeltedTokens)
		}
	}

	// requiredInputs is the Σ inputs[id] side of the invariant, solved for.
	requiredInputs := new(big.Int).Add(required, meltedDelta)
	requiredInputs.Add(requiredInputs, burned)
	requiredInputs.Sub(requiredInputs, mintedDelta)
	if requiredInputs.Sign() < 0 {
		requiredInputs = big.NewInt(0)
	}

	have := tokenAmount(outputsFromInputs(s.chosen), id)
	if have.Cmp(requiredInputs) >= 0 {
		return nil
	}

	for _, in := range s.req.AvailableInputs {
		if have.Cmp(requiredInputs) >= 0 {
			break
		}
		if _, taken := s.chosenIDs[in.OutputMetadata.OutputID]; taken {
			continue
		}
		amt := tokenAmount([]ledger.Output{in.Output}, id)
		if amt.Sign() == 0 {
			continue
		}
		s.take(in)
		have.Add(have, amt)
	}

	if have.Cmp(requiredInputs) < 0 {
		return &ledger.InsufficientNativeTokenAmountError{Token: id, Found: have, Required: requiredInputs}
	}
	return nil
}
