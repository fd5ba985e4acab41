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

// Package selection computes a Selected input/output/remainder set from a
// caller's requested outputs, available inputs, and burn hints.
package selection

import (
	"github.com/blinklabs-io/meshledger/ledger"
)

// RequirementKind tags the variant of a Requirement.
type RequirementKind int

const (
	RequirementChainObject RequirementKind = iota
	RequirementSender
	RequirementIssuer
	RequirementAmount
	RequirementNativeTokens
)

// TransitionKind distinguishes the two ways an alias input may be
// consumed; Foundry and NFT state changes carry no transition kind of
// their own since only aliases have a governance/state split.
type TransitionKind int

const (
	TransitionAny TransitionKind = iota
	TransitionGovernance
	TransitionState
)

// Requirement is one unit of the Selection work-list.
type Requirement struct {
	Kind       RequirementKind
	Alias      *ledger.AliasID
	NFT        *ledger.NFTID
	Foundry    *ledger.FoundryID
	Transition TransitionKind
	Address    *ledger.Address
	Token      *ledger.NativeTokenID
}

func ChainObjectRequirement(alias *ledger.AliasID, nft *ledger.NFTID, foundry *ledger.FoundryID, transition TransitionKind) Requirement {
	return Requirement{Kind: RequirementChainObject, Alias: alias, NFT: nft, Foundry: foundry, Transition: transition}
}

func SenderRequirement(addr ledger.Address) Requirement {
	return Requirement{Kind: RequirementSender, Address: &addr}
}

func IssuerRequirement(addr ledger.Address) Requirement {
	return Requirement{Kind: RequirementIssuer, Address: &addr}
}

func AmountRequirement() Requirement { return Requirement{Kind: RequirementAmount} }

func NativeTokensRequirement(id ledger.NativeTokenID) Requirement {
	return Requirement{Kind: RequirementNativeTokens, Token: &id}
}

// Queue is a FIFO work-list of requirements, appended to as satisfying one
// requirement discovers another.
type Queue struct {
	items []Requirement
}

func NewQueue(initial ...Requirement) *Queue {
	return &Queue{items: append([]Requirement{}, initial...)}
}

func (q *Queue) Push(r Requirement) { q.items = append(q.items, r) }

func (q *Queue) Pop() (Requirement, bool) {
	if len(q.items) == 0 {
		return Requirement{}, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

func (q *Queue) Len() int { return len(q.items) }

// amountClass buckets a basic output's spendability for the priority
// resolution order spec.md §4.C defines: Ed25519-no-SDR, Ed25519-live-SDR,
// non-Ed25519-unlockable, and finally any other non-basic output.
type amountClass int

const (
	classEd25519NoSDR amountClass = iota
	classEd25519LiveSDR
	classNonEd25519Unlockable
	classOther
)

// classify determines which amount-resolution priority class an available
// input falls into at the given evaluation time.
func classify(in ledger.InputSigningData, unixTime uint32) (amountClass, bool) {
	basic, ok := in.Output.(*ledger.BasicOutput)
	if !ok {
		return classOther, true
	}
	addr, ok := basic.UnlockConditions.UnlockAddress(unixTime)
	if !ok {
		return classOther, false
	}
	if addr.Kind == ledger.AddressEd25519 {
		if basic.UnlockConditions.HasLiveSDR(unixTime) {
			return classEd25519LiveSDR, true
		}
		return classEd25519NoSDR, true
	}
	return classNonEd25519Unlockable, true
}

// sumNativeTokens accumulates every native token carried by outs into a
// running sum.
func sumNativeTokens(outs []ledger.Output) ledger.NativeTokenSum {
	sum := ledger.NewNativeTokenSum()
	for _, o := range outs {
		for _, t := range o.NativeTokens() {
			sum.Add(t.ID, t.Amount)
		}
	}
	return sum
}

