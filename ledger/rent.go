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

// RentStructure parameterizes the storage-deposit (dust) calculation: the
// minimum amount an output must carry is proportional to its serialized
// byte cost, with extra weight given to "key" fields (unlock conditions,
// chain ids) that must be kept around even when the rest of the output is
// pruned.
type RentStructure struct {
	ByteCost         uint64
	ByteFactorData   uint64
	ByteFactorKey    uint64
	// VByteOffset is a fixed overhead applied to every output, covering
	// the OutputID it will occupy once included.
	VByteOffset uint64
}

// DefaultRentStructure mirrors the values shipped by the reference ledger's
// mainnet protocol parameters.
var DefaultRentStructure = RentStructure{
	ByteCost:       500,
	ByteFactorData: 1,
	ByteFactorKey:  10,
	VByteOffset:    44,
}

// keyFieldWeight counts the "key" bytes of an output: its unlock
// conditions' addresses/chain references, since those must remain
// retrievable even under future state pruning.
func keyFieldWeight(o Output) uint64 {
	switch out := o.(type) {
	case *BasicOutput:
		return unlockConditionKeyWeight(out.UnlockConditions)
	case *AliasOutput:
		return 20 + unlockConditionKeyWeight(out.UnlockConditions)
	case *FoundryOutput:
		return 20 + unlockConditionKeyWeight(out.UnlockConditions)
	case *NFTOutput:
		return 20 + unlockConditionKeyWeight(out.UnlockConditions)
	default:
		return 0
	}
}

func unlockConditionKeyWeight(s UnlockConditionSet) uint64 {
	var w uint64
	if s.Address != nil {
		w += 21
	}
	if s.StorageDepositReturn != nil {
		w += 21
	}
	if s.Expiration != nil {
		w += 21
	}
	if s.StateControllerAddress != nil {
		w += 21
	}
	if s.GovernorAddress != nil {
		w += 21
	}
	if s.ImmutableAliasAddress != nil {
		w += 21
	}
	return w
}

// MinStorageDeposit computes the minimum amount Output o must carry under
// RentStructure rs: a fixed offset plus the output's data bytes weighted by
// ByteFactorData plus its key bytes weighted by ByteFactorKey, all times
// ByteCost.
func MinStorageDeposit(o Output, rs RentStructure) uint64 {
	data, err := o.Serialize()
	if err != nil {
		// Serialization failures here indicate a malformed output; treat
		// it as maximally expensive so Selection rejects it rather than
		// under-fund it.
		return ^uint64(0)
	}
	dataBytes := uint64(len(data))
	keyBytes := keyFieldWeight(o)
	vBytes := rs.VByteOffset + dataBytes*rs.ByteFactorData + keyBytes*rs.ByteFactorKey
	return vBytes * rs.ByteCost
}
