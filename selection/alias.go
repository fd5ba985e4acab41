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

import "github.com/blinklabs-io/meshledger/ledger"

// aliasTransition reports whether spending aliasIn amounts to a state
// transition (StateIndex advanced on a matching output), a governance
// transition (a matching output with StateIndex unchanged), or neither
// (no matching output at all — the alias is implicitly burned, which
// counts as governance-shaped since only the state controller's consent
// is what a missing state transition would otherwise have needed).
func aliasTransition(aliasID ledger.AliasID, aliasIn *ledger.AliasOutput, outputs ledger.Outputs) (stateTransition, foundOutput bool) {
	for _, o := range outputs {
		out, ok := o.(*ledger.AliasOutput)
		if !ok || out.AliasID != aliasID {
			continue
		}
		return out.StateIndex > aliasIn.StateIndex, true
	}
	return false, false
}

// checkAliasTransition enforces r.Transition == TransitionState against
// what's actually on offer for the alias: burning it, or carrying it
// forward with an unchanged StateIndex, both fail a required state
// transition with UnfulfillableRequirementError rather than silently
// downgrading to a governance transition.
func checkAliasTransition(r Requirement, in ledger.InputSigningData, outputs ledger.Outputs, burn *ledger.Burn) error {
	if r.Alias == nil || r.Transition != TransitionState {
		return nil
	}
	if burn.HasAlias(*r.Alias) {
		return &ledger.UnfulfillableRequirementError{
			Kind: "alias " + r.Alias.String() + " requires a state transition but is named in Burn",
		}
	}
	aliasIn, ok := in.Output.(*ledger.AliasOutput)
	if !ok {
		return nil
	}
	stateTransition, foundOutput := aliasTransition(*r.Alias, aliasIn, outputs)
	if !foundOutput || !stateTransition {
		return &ledger.UnfulfillableRequirementError{
			Kind: "alias " + r.Alias.String() + " requires a state transition but only a governance-transition output was supplied",
		}
	}
	return nil
}
