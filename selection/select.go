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
	"sort"

	"github.com/blinklabs-io/meshledger/ledger"
)

// Request bundles everything one (non-discovery) Select call needs: the
// caller's desired outputs, the inputs already committed to the build,
// the pool of additional inputs Selection may draw from, and the
// context needed to evaluate time-sensitive unlock conditions.
type Request struct {
	RequiredOutputs  ledger.Outputs
	RequiredInputs   []ledger.InputSigningData
	AvailableInputs  []ledger.InputSigningData
	Burn             *ledger.Burn
	RemainderAddress *ledger.Address
	ProtocolParams   ledger.ProtocolParameters
	CurrentTime      uint32
}

// state is the mutable working set threaded through one Select call.
type state struct {
	req            Request
	chosen         []ledger.InputSigningData
	chosenIDs      map[ledger.OutputID]struct{}
	outputs        ledger.Outputs
	autoContinued  map[ledger.OutputID]bool
}

// Select computes a Selected result for req, or fails with one of the
// Requirement/Consistency errors from package ledger.
func Select(req Request) (*ledger.Selected, error) {
	burn := req.Burn
	if burn == nil {
		burn = ledger.NewBurn()
	}
	s := &state{
		req:           req,
		chosen:        append([]ledger.InputSigningData{}, req.RequiredInputs...),
		chosenIDs:     make(map[ledger.OutputID]struct{}),
		outputs:       append(ledger.Outputs{}, req.RequiredOutputs...),
		autoContinued: make(map[ledger.OutputID]bool),
	}
	for _, in := range s.chosen {
		s.chosenIDs[in.OutputMetadata.OutputID] = struct{}{}
	}

	queue := NewQueue()
	seedRequirements(queue, s.outputs)
	seedChainObjectRequirementsFromInputs(queue, s.chosen, s.outputs)
	seedNativeTokenRequirements(queue, s.outputs)

	for {
		r, ok := queue.Pop()
		if !ok {
			break
		}
		if err := s.satisfy(r, queue, burn); err != nil {
			return nil, err
		}
	}

	if err := s.resolveSDR(); err != nil {
		return nil, err
	}
	if err := s.resolveAmount(); err != nil {
		return nil, err
	}
	remainder, err := s.resolveRemainder()
	if err != nil {
		return nil, err
	}

	if len(s.chosen) > s.maxInputs() {
		return nil, &ledger.ConsolidationRequiredError{Count: len(s.chosen)}
	}
	finalOutputs := append(ledger.Outputs{}, s.outputs...)
	if remainder != nil {
		finalOutputs = append(finalOutputs, remainder)
	}
	if len(finalOutputs) > s.maxOutputs() {
		return nil, ledger.ErrInvalidOutputCount
	}

	sort.Slice(s.chosen, func(i, j int) bool {
		return s.chosen[i].OutputMetadata.OutputID.Less(s.chosen[j].OutputMetadata.OutputID)
	})
	if err := ledger.SortOutputs(finalOutputs); err != nil {
		return nil, err
	}

	return &ledger.Selected{
		Inputs:    s.chosen,
		Outputs:   finalOutputs,
		Remainder: remainder,
	}, nil
}

func (s *state) maxInputs() int {
	if s.req.ProtocolParams.MaxInputCount > 0 {
		return s.req.ProtocolParams.MaxInputCount
	}
	return 128
}

func (s *state) maxOutputs() int {
	if s.req.ProtocolParams.MaxOutputCount > 0 {
		return s.req.ProtocolParams.MaxOutputCount
	}
	return 128
}

// seedRequirements derives the initial work-list from the caller's
// requested outputs: a ChainObject requirement for every alias/foundry/nft
// output, and a Sender/Issuer requirement for every populated feature.
func seedRequirements(q *Queue, outputs ledger.Outputs) {
	for _, o := range outputs {
		switch out := o.(type) {
		case *ledger.AliasOutput:
			if !out.AliasID.IsNull() {
				id := out.AliasID
				q.Push(ChainObjectRequirement(&id, nil, nil, TransitionAny))
			}
			if out.Features.Sender != nil {
				q.Push(SenderRequirement(*out.Features.Sender))
			}
		case *ledger.NFTOutput:
			if !out.NFTID.IsNull() {
				id := out.NFTID
				q.Push(ChainObjectRequirement(nil, &id, nil, TransitionAny))
			}
			if out.Features.Sender != nil {
				q.Push(SenderRequirement(*out.Features.Sender))
			}
		case *ledger.FoundryOutput:
			if id, ok := out.FoundryID(); ok {
				q.Push(ChainObjectRequirement(nil, nil, &id, TransitionAny))
			}
			if out.Features.Sender != nil {
				q.Push(SenderRequirement(*out.Features.Sender))
			}
		case *ledger.BasicOutput:
			if out.Features.Sender != nil {
				q.Push(SenderRequirement(*out.Features.Sender))
			}
		}
	}
	q.Push(AmountRequirement())
}

// seedChainObjectRequirementsFromInputs adds a ChainObject requirement for
// every alias/nft/foundry id already committed as a RequiredInput, so a
// caller-supplied chain-object input always resolves to either an explicit
// continuation output or a burn hint, never silently vanishing. An alias
// input's Transition is set from what outputs actually offers it
// (unchanged StateIndex is a governance transition, an advanced one is a
// state transition), so a caller who bumped StateIndex is held to having
// asked for a state transition.
func seedChainObjectRequirementsFromInputs(q *Queue, inputs []ledger.InputSigningData, outputs ledger.Outputs) {
	for _, in := range inputs {
		switch out := in.Output.(type) {
		case *ledger.AliasOutput:
			if !out.AliasID.IsNull() {
				id := out.AliasID
				transition := TransitionGovernance
				if stateTransition, found := aliasTransition(id, out, outputs); found && stateTransition {
					transition = TransitionState
				}
				q.Push(ChainObjectRequirement(&id, nil, nil, transition))
			}
		case *ledger.NFTOutput:
			if !out.NFTID.IsNull() {
				id := out.NFTID
				q.Push(ChainObjectRequirement(nil, &id, nil, TransitionAny))
			}
		case *ledger.FoundryOutput:
			if id, ok := out.FoundryID(); ok {
				q.Push(ChainObjectRequirement(nil, nil, &id, TransitionAny))
			}
		}
	}
}

func (s *state) satisfy(r Requirement, q *Queue, burn *ledger.Burn) error {
	switch r.Kind {
	case RequirementChainObject:
		return s.satisfyChainObject(r, burn)
	case RequirementSender:
		return s.satisfySenderOrIssuer(*r.Address)
	case RequirementIssuer:
		return s.satisfySenderOrIssuer(*r.Address)
	case RequirementNativeTokens:
		return s.satisfyNativeTokens(*r.Token, burn)
	case RequirementAmount:
		// Handled once, after the work-list drains, by resolveAmount.
		return nil
	}
	return nil
}

// findAvailableByAddress returns the first not-yet-chosen available input
// whose owning address equals addr.
func (s *state) findAvailableByAddress(addr ledger.Address) (ledger.InputSigningData, bool) {
	for _, in := range s.req.AvailableInputs {
		if _, taken := s.chosenIDs[in.OutputMetadata.OutputID]; taken {
			continue
		}
		basic, ok := in.Output.(*ledger.BasicOutput)
		if !ok {
			continue
		}
		if a, ok := basic.UnlockConditions.UnlockAddress(s.req.CurrentTime); ok && a.Equal(addr) {
			return in, true
		}
	}
	return ledger.InputSigningData{}, false
}

func (s *state) take(in ledger.InputSigningData) {
	s.chosen = append(s.chosen, in)
	s.chosenIDs[in.OutputMetadata.OutputID] = struct{}{}
}

func (s *state) ownsAddress(addr ledger.Address) bool {
	for _, in := range s.chosen {
		basic, ok := in.Output.(*ledger.BasicOutput)
		if !ok {
			continue
		}
		if a, ok := basic.UnlockConditions.UnlockAddress(s.req.CurrentTime); ok && a.Equal(addr) {
			return true
		}
	}
	return false
}

func (s *state) satisfySenderOrIssuer(addr ledger.Address) error {
	if s.ownsAddress(addr) {
		return nil
	}
	if addr.Kind != ledger.AddressEd25519 {
		// Alias/NFT sender addresses are satisfied by their ChainObject
		// requirement instead, seeded separately by the caller's outputs.
		return nil
	}
	in, ok := s.findAvailableByAddress(addr)
	if !ok {
		return &ledger.MissingInputWithEd25519AddressError{Address: addr}
	}
	s.take(in)
	return nil
}

// findChainInput locates an already-available input holding the given
// alias/nft/foundry id, among either already-chosen or available inputs.
func (s *state) findChainInput(alias *ledger.AliasID, nft *ledger.NFTID, foundry *ledger.FoundryID) (ledger.InputSigningData, bool, bool) {
	match := func(o ledger.Output) bool {
		switch out := o.(type) {
		case *ledger.AliasOutput:
			return alias != nil && out.AliasID == *alias
		case *ledger.NFTOutput:
			return nft != nil && out.NFTID == *nft
		case *ledger.FoundryOutput:
			if foundry == nil {
				return false
			}
			id, ok := out.FoundryID()
			return ok && id == *foundry
		}
		return false
	}
	for _, in := range s.chosen {
		if match(in.Output) {
			return in, true, true
		}
	}
	for _, in := range s.req.AvailableInputs {
		if _, taken := s.chosenIDs[in.OutputMetadata.OutputID]; taken {
			continue
		}
		if match(in.Output) {
			return in, false, true
		}
	}
	return ledger.InputSigningData{}, false, false
}

func (s *state) satisfyChainObject(r Requirement, burn *ledger.Burn) error {
	if r.Alias != nil && r.Transition == TransitionState && burn.HasAlias(*r.Alias) {
		return &ledger.UnfulfillableRequirementError{
			Kind: "alias " + r.Alias.String() + " requires a state transition but is named in Burn",
		}
	}

	in, alreadyChosen, found := s.findChainInput(r.Alias, r.NFT, r.Foundry)
	if !found {
		if r.Alias != nil && burn.HasAlias(*r.Alias) {
			return nil
		}
		if r.NFT != nil && burn.HasNFT(*r.NFT) {
			return nil
		}
		if r.Foundry != nil && burn.HasFoundry(*r.Foundry) {
			return nil
		}
		kind := "chain object"
		switch {
		case r.Alias != nil:
			kind = "alias " + r.Alias.String()
		case r.NFT != nil:
			kind = "nft " + r.NFT.String()
		case r.Foundry != nil:
			kind = "foundry " + r.Foundry.String()
		}
		return &ledger.MissingInputError{Descriptor: kind}
	}
	if !alreadyChosen {
		s.take(in)
	}

	if err := checkAliasTransition(r, in, s.outputs, burn); err != nil {
		return err
	}

	if r.Foundry != nil {
		if err := checkFoundryBurnAccounting(in, *r.Foundry, burn); err != nil {
			return err
		}
	}

	// If the transaction's output list doesn't already carry a
	// continuation for this chain object and it wasn't burned, synthesize
	// the minimal auto-transitioned continuation output so the object's
	// identity survives.
	if r.Alias != nil && !s.hasAliasOutput(*r.Alias) && !burn.HasAlias(*r.Alias) {
		s.synthesizeAliasContinuation(in)
	}
	if r.NFT != nil && !s.hasNFTOutput(*r.NFT) && !burn.HasNFT(*r.NFT) {
		s.synthesizeNFTContinuation(in)
	}
	if r.Foundry != nil && !s.hasFoundryOutput(*r.Foundry) && !burn.HasFoundry(*r.Foundry) {
		s.synthesizeFoundryContinuation(in)
	}
	return nil
}

// checkFoundryBurnAccounting enforces that destroying a foundry (naming it
// in burn.Foundries) accounts for its full circulating native-token
// supply: the caller's burn hint for that token must exactly match what's
// outstanding. A foundry kept alive (not named in burn.Foundries) isn't
// checked here; its supply carries forward on the continuation output.
func checkFoundryBurnAccounting(in ledger.InputSigningData, id ledger.FoundryID, burn *ledger.Burn) error {
	if !burn.HasFoundry(id) {
		return nil
	}
	foundry, ok := in.Output.(*ledger.FoundryOutput)
	if !ok {
		return nil
	}
	circulating := foundry.TokenScheme.CirculatingSupply()
	hinted, ok := burn.NativeTokens[ledger.NativeTokenID(id)]
	if !ok {
		hinted = big.NewInt(0)
	}
	if hinted.Cmp(circulating) != 0 {
		return &ledger.NativeTokenBurnMismatchError{Foundry: id, Circulating: circulating, Hinted: hinted}
	}
	return nil
}

func (s *state) hasAliasOutput(id ledger.AliasID) bool {
	for _, o := range s.outputs {
		if a, ok := o.(*ledger.AliasOutput); ok && a.AliasID == id {
			return true
		}
	}
	return false
}

func (s *state) hasNFTOutput(id ledger.NFTID) bool {
	for _, o := range s.outputs {
		if n, ok := o.(*ledger.NFTOutput); ok && n.NFTID == id {
			return true
		}
	}
	return false
}

func (s *state) hasFoundryOutput(id ledger.FoundryID) bool {
	for _, o := range s.outputs {
		if f, ok := o.(*ledger.FoundryOutput); ok {
			if fid, ok := f.FoundryID(); ok && fid == id {
				return true
			}
		}
	}
	return false
}

func (s *state) synthesizeAliasContinuation(in ledger.InputSigningData) {
	inAlias, ok := in.Output.(*ledger.AliasOutput)
	if !ok {
		return
	}
	cont := *inAlias
	deposit := ledger.MinStorageDeposit(&cont, s.req.ProtocolParams.RentStructure)
	cont.Amount = deposit
	cont.Tokens = nil
	s.outputs = append(s.outputs, &cont)
	s.autoContinued[in.OutputMetadata.OutputID] = true
}

func (s *state) synthesizeNFTContinuation(in ledger.InputSigningData) {
	inNFT, ok := in.Output.(*ledger.NFTOutput)
	if !ok {
		return
	}
	cont := *inNFT
	deposit := ledger.MinStorageDeposit(&cont, s.req.ProtocolParams.RentStructure)
	cont.Amount = deposit
	cont.Tokens = nil
	s.outputs = append(s.outputs, &cont)
	s.autoContinued[in.OutputMetadata.OutputID] = true
}

// synthesizeFoundryContinuation carries a kept foundry's mint/melt state
// forward unchanged; unlike alias/nft, a foundry's native tokens already
// in circulation aren't cleared, since they aren't held by this output.
func (s *state) synthesizeFoundryContinuation(in ledger.InputSigningData) {
	inFoundry, ok := in.Output.(*ledger.FoundryOutput)
	if !ok {
		return
	}
	cont := *inFoundry
	deposit := ledger.MinStorageDeposit(&cont, s.req.ProtocolParams.RentStructure)
	cont.Amount = deposit
	s.outputs = append(s.outputs, &cont)
	s.autoContinued[in.OutputMetadata.OutputID] = true
}
