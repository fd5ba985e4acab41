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
	"github.com/blinklabs-io/meshledger/ledger"
)

func addressKey(a ledger.Address) [21]byte {
	var k [21]byte
	copy(k[:], a.Bytes())
	return k
}

// resolveSDR walks every chosen basic input's live storage-deposit-return
// condition, tallies what is owed per return address, and appends an
// echo basic output for any amount not already covered by the caller's
// requested outputs.
func (s *state) resolveSDR() error {
	owed := make(map[[21]byte]uint64)
	addrByKey := make(map[[21]byte]ledger.Address)
	for _, in := range s.chosen {
		basic, ok := in.Output.(*ledger.BasicOutput)
		if !ok {
			continue
		}
		if !basic.UnlockConditions.HasLiveSDR(s.req.CurrentTime) {
			continue
		}
		sdr := basic.UnlockConditions.StorageDepositReturn
		if sdr.Amount == basic.Amount {
			// Contributes nothing net: the whole input value returns.
			continue
		}
		k := addressKey(sdr.ReturnAddress)
		owed[k] += sdr.Amount
		addrByKey[k] = sdr.ReturnAddress
	}
	for k, amount := range owed {
		addr := addrByKey[k]
		if s.hasPlainBasicOutputTo(addr, amount) {
			continue
		}
		s.outputs = append(s.outputs, &ledger.BasicOutput{
			Amount: amount,
			UnlockConditions: ledger.UnlockConditionSet{
				Address: &ledger.AddressUnlockCondition{Address: addr},
			},
		})
	}
	return nil
}

// hasPlainBasicOutputTo reports whether the output set already carries a
// basic output to addr, holding at least amount, with no other unlock
// conditions — the shape the SDR invariant requires.
func (s *state) hasPlainBasicOutputTo(addr ledger.Address, amount uint64) bool {
	for _, o := range s.outputs {
		basic, ok := o.(*ledger.BasicOutput)
		if !ok {
			continue
		}
		uc := basic.UnlockConditions
		if uc.Address == nil || !uc.Address.Address.Equal(addr) {
			continue
		}
		if uc.StorageDepositReturn != nil || uc.Timelock != nil || uc.Expiration != nil {
			continue
		}
		if basic.Amount >= amount {
			return true
		}
	}
	return false
}

func totalAmount(outs []ledger.Output) uint64 {
	var sum uint64
	for _, o := range outs {
		sum += o.Deposit()
	}
	return sum
}

func totalInputAmount(ins []ledger.InputSigningData) uint64 {
	var sum uint64
	for _, in := range ins {
		sum += in.Output.Deposit()
	}
	return sum
}

// resolveAmount pulls additional available inputs, smallest-first within
// each priority class, until chosen inputs cover the requested output sum.
func (s *state) resolveAmount() error {
	required := totalAmount(s.outputs)
	have := totalInputAmount(s.chosen)
	if have >= required {
		return nil
	}

	candidates := s.remainingCandidates()
	for class := classEd25519NoSDR; class <= classOther && have < required; class++ {
		bucket := candidates[class]
		sortSmallestFirst(bucket)
		for _, in := range bucket {
			if have >= required {
				break
			}
			s.take(in)
			have += in.Output.Deposit()
			if basic, ok := in.Output.(*ledger.BasicOutput); ok && basic.UnlockConditions.HasLiveSDR(s.req.CurrentTime) {
				required += basic.UnlockConditions.StorageDepositReturn.Amount
				if err := s.resolveSDR(); err != nil {
					return err
				}
				required = totalAmount(s.outputs)
			}
		}
	}

	if have >= required {
		return nil
	}

	// Last resort: shrink auto-transitioned continuation outputs down to
	// their storage-deposit floor to close the remaining gap.
	have = s.shrinkAutoContinuedOutputs(required - have, have)
	if have < required {
		if len(s.req.AvailableInputs) == 0 && len(s.chosen) == 0 {
			return ledger.ErrNoAvailableInputs
		}
		return &ledger.InsufficientAmountError{Found: have, Required: required}
	}
	return nil
}

// shrinkAutoContinuedOutputs reduces every auto-transitioned output's
// amount toward its storage-deposit floor, recovering up to `need` extra
// value, and returns the new total input/output balance point.
func (s *state) shrinkAutoContinuedOutputs(need, have uint64) uint64 {
	autoAliases := make(map[ledger.AliasID]bool)
	autoNFTs := make(map[ledger.NFTID]bool)
	for _, in := range s.chosen {
		if !s.autoContinued[in.OutputMetadata.OutputID] {
			continue
		}
		switch chainIn := in.Output.(type) {
		case *ledger.AliasOutput:
			autoAliases[chainIn.AliasID] = true
		case *ledger.NFTOutput:
			autoNFTs[chainIn.NFTID] = true
		}
	}
	recovered := uint64(0)
	for _, o := range s.outputs {
		if recovered >= need {
			break
		}
		floor := ledger.MinStorageDeposit(o, s.req.ProtocolParams.RentStructure)
		switch out := o.(type) {
		case *ledger.AliasOutput:
			if autoAliases[out.AliasID] && out.Amount > floor {
				delta := out.Amount - floor
				if delta > need-recovered {
					delta = need - recovered
				}
				out.Amount -= delta
				recovered += delta
			}
		case *ledger.NFTOutput:
			if autoNFTs[out.NFTID] && out.Amount > floor {
				delta := out.Amount - floor
				if delta > need-recovered {
					delta = need - recovered
				}
				out.Amount -= delta
				recovered += delta
			}
		}
	}
	return have + recovered
}

// remainingCandidates buckets every not-yet-chosen available input by its
// amount-resolution priority class.
func (s *state) remainingCandidates() map[amountClass][]ledger.InputSigningData {
	buckets := map[amountClass][]ledger.InputSigningData{}
	for _, in := range s.req.AvailableInputs {
		if _, taken := s.chosenIDs[in.OutputMetadata.OutputID]; taken {
			continue
		}
		class, unlockable := classify(in, s.req.CurrentTime)
		if !unlockable {
			continue
		}
		buckets[class] = append(buckets[class], in)
	}
	return buckets
}

func sortSmallestFirst(ins []ledger.InputSigningData) {
	for i := 1; i < len(ins); i++ {
		for j := i; j > 0 && ins[j].Output.Deposit() < ins[j-1].Output.Deposit(); j-- {
			ins[j], ins[j-1] = ins[j-1], ins[j]
		}
	}
}

// resolveRemainder computes the leftover value after covering every
// requested (plus SDR-echo) output, and, if positive, builds a remainder
// basic output — pulling one more input to clear the storage-deposit
// floor when the leftover alone would not meet it.
func (s *state) resolveRemainder() (ledger.Output, error) {
	required := totalAmount(s.outputs)
	have := totalInputAmount(s.chosen)
	leftoverTokens := s.leftoverNativeTokens()

	if have == required {
		if len(leftoverTokens) > 0 {
			return s.buildTokenOnlyRemainder(leftoverTokens)
		}
		return nil, nil
	}
	if have < required {
		return nil, &ledger.InsufficientAmountError{Found: have, Required: required}
	}

	delta := have - required
	addr := s.remainderAddress()
	remainder := &ledger.BasicOutput{
		Amount: delta,
		UnlockConditions: ledger.UnlockConditionSet{
			Address: &ledger.AddressUnlockCondition{Address: addr},
		},
	}
	for id, amt := range leftoverTokens {
		remainder.Tokens = append(remainder.Tokens, ledger.NativeToken{ID: id, Amount: amt})
	}

	floor := ledger.MinStorageDeposit(remainder, s.req.ProtocolParams.RentStructure)
	if delta >= floor {
		return remainder, nil
	}

	// Grow delta by pulling the smallest candidate of each priority
	// class in turn, stopping as soon as delta clears the floor.
	candidates := s.remainingCandidates()
	for class := classEd25519NoSDR; class <= classOther; class++ {
		bucket := candidates[class]
		sortSmallestFirst(bucket)
		if len(bucket) == 0 {
			continue
		}
		in := bucket[0]
		s.take(in)
		delta += in.Output.Deposit()
		remainder.Amount = delta
		if delta >= floor {
			return remainder, nil
		}
	}
	return nil, &ledger.InsufficientStorageDepositAmountError{Amount: delta, Required: floor}
}

func (s *state) remainderAddress() ledger.Address {
	if s.req.RemainderAddress != nil {
		return *s.req.RemainderAddress
	}
	for _, in := range s.chosen {
		if basic, ok := in.Output.(*ledger.BasicOutput); ok {
			if addr, ok := basic.UnlockConditions.UnlockAddress(s.req.CurrentTime); ok {
				return addr
			}
		}
	}
	return ledger.Address{}
}

func (s *state) leftoverNativeTokens() ledger.NativeTokenSum {
	in := sumNativeTokens(outputsFromInputs(s.chosen))
	out := sumNativeTokens(s.outputs)
	leftover := ledger.NewNativeTokenSum()
	for id, have := range in {
		spent := out[id]
		if spent == nil {
			leftover.Add(id, have)
		} else if have.Cmp(spent) > 0 {
			leftover.Add(id, have)
			leftover.Sub(id, spent)
		}
	}
	if s.req.Burn != nil {
		for id, amt := range s.req.Burn.NativeTokens {
			leftover.Sub(id, amt)
		}
	}
	for id, amt := range leftover {
		if amt.Sign() <= 0 {
			delete(leftover, id)
		}
	}
	return leftover
}

func outputsFromInputs(ins []ledger.InputSigningData) []ledger.Output {
	out := make([]ledger.Output, len(ins))
	for i, in := range ins {
		out[i] = in.Output
	}
	return out
}

func (s *state) buildTokenOnlyRemainder(tokens ledger.NativeTokenSum) (ledger.Output, error) {
	addr := s.remainderAddress()
	remainder := &ledger.BasicOutput{
		UnlockConditions: ledger.UnlockConditionSet{
			Address: &ledger.AddressUnlockCondition{Address: addr},
		},
	}
	for id, amt := range tokens {
		remainder.Tokens = append(remainder.Tokens, ledger.NativeToken{ID: id, Amount: amt})
	}
	floor := ledger.MinStorageDeposit(remainder, s.req.ProtocolParams.RentStructure)
	remainder.Amount = floor
	have := totalInputAmount(s.chosen)
	required := totalAmount(s.outputs)
	if have < required+floor {
		return nil, ledger.ErrNoBalanceForNativeTokenRemainder
	}
	return remainder, nil
}
