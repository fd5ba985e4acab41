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

// UnlockConditionKind tags the variant of an UnlockCondition.
type UnlockConditionKind byte

const (
	UnlockConditionAddress UnlockConditionKind = iota
	UnlockConditionStorageDepositReturn
	UnlockConditionTimelock
	UnlockConditionExpiration
	UnlockConditionStateControllerAddress
	UnlockConditionGovernorAddress
	UnlockConditionImmutableAliasAddress
)

// AddressUnlockCondition makes an output spendable only by whoever can
// unlock Address.
type AddressUnlockCondition struct{ Address Address }

// StorageDepositReturnUnlockCondition requires the spender to create, in
// the same transaction, a basic output to ReturnAddress holding at least
// Amount tokens with no other unlock conditions.
type StorageDepositReturnUnlockCondition struct {
	ReturnAddress Address
	Amount        uint64
}

// TimelockUnlockCondition makes an output unspendable until the
// transaction timestamp reaches UnixTime.
type TimelockUnlockCondition struct{ UnixTime uint32 }

// ExpirationUnlockCondition swaps the eligible spender from the output's
// AddressUnlockCondition to ReturnAddress once the transaction timestamp
// reaches UnixTime.
type ExpirationUnlockCondition struct {
	ReturnAddress Address
	UnixTime      uint32
}

// StateControllerAddressUnlockCondition is the alias-specific controller
// that may perform a state transition.
type StateControllerAddressUnlockCondition struct{ Address Address }

// GovernorAddressUnlockCondition is the alias-specific controller that may
// perform a governance transition.
type GovernorAddressUnlockCondition struct{ Address Address }

// ImmutableAliasAddressUnlockCondition binds a Foundry to exactly one
// controlling alias for its entire lifetime.
type ImmutableAliasAddressUnlockCondition struct{ Address Address }

// UnlockConditionSet bundles the unlock conditions present on one output.
// At most one of each kind may be present; Basic/NFT outputs use Address,
// StorageDepositReturn, Timelock, Expiration, while Alias uses
// StateController/Governor and Foundry uses ImmutableAliasAddress.
type UnlockConditionSet struct {
	Address                 *AddressUnlockCondition
	StorageDepositReturn    *StorageDepositReturnUnlockCondition
	Timelock                *TimelockUnlockCondition
	Expiration              *ExpirationUnlockCondition
	StateControllerAddress  *StateControllerAddressUnlockCondition
	GovernorAddress         *GovernorAddressUnlockCondition
	ImmutableAliasAddress   *ImmutableAliasAddressUnlockCondition
}

// HasExpired reports whether an Expiration condition has passed by the
// given unix timestamp — at or after the expiration time, only the return
// address may spend.
func (s UnlockConditionSet) HasExpired(unixTime uint32) bool {
	return s.Expiration != nil && unixTime >= s.Expiration.UnixTime
}

// IsTimelocked reports whether a Timelock condition still blocks spending
// at the given timestamp.
func (s UnlockConditionSet) IsTimelocked(unixTime uint32) bool {
	return s.Timelock != nil && unixTime < s.Timelock.UnixTime
}

// UnlockAddress returns the address that must unlock this output at the
// given transaction timestamp, applying Expiration semantics: before the
// expiration time the Address condition applies, at or after it only the
// Expiration's ReturnAddress may spend.
func (s UnlockConditionSet) UnlockAddress(unixTime uint32) (Address, bool) {
	if s.HasExpired(unixTime) {
		return s.Expiration.ReturnAddress, true
	}
	if s.Address != nil {
		return s.Address.Address, true
	}
	return Address{}, false
}

// HasLiveSDR reports whether this output carries a StorageDepositReturn
// condition that has not yet expired at the given timestamp.
func (s UnlockConditionSet) HasLiveSDR(unixTime uint32) bool {
	return s.StorageDepositReturn != nil && !s.HasExpired(unixTime)
}
