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

import "testing"

func TestUnlockAddressBeforeExpiration(t *testing.T) {
	var ownerRaw, returnRaw [20]byte
	ownerRaw[0] = 0x1
	returnRaw[0] = 0x2
	owner := NewEd25519Address(ownerRaw)
	ret := NewEd25519Address(returnRaw)

	s := UnlockConditionSet{
		Address:    &AddressUnlockCondition{Address: owner},
		Expiration: &ExpirationUnlockCondition{ReturnAddress: ret, UnixTime: 1000},
	}
	got, ok := s.UnlockAddress(500)
	if !ok || !got.Equal(owner) {
		t.Errorf("expected owner address before expiration, got %+v, ok=%v", got, ok)
	}
}

func TestUnlockAddressAfterExpiration(t *testing.T) {
	var ownerRaw, returnRaw [20]byte
	ownerRaw[0] = 0x1
	returnRaw[0] = 0x2
	owner := NewEd25519Address(ownerRaw)
	ret := NewEd25519Address(returnRaw)

	s := UnlockConditionSet{
		Address:    &AddressUnlockCondition{Address: owner},
		Expiration: &ExpirationUnlockCondition{ReturnAddress: ret, UnixTime: 1000},
	}
	got, ok := s.UnlockAddress(1000)
	if !ok || !got.Equal(ret) {
		t.Errorf("expected return address at expiration, got %+v, ok=%v", got, ok)
	}
}

func TestIsTimelocked(t *testing.T) {
	s := UnlockConditionSet{Timelock: &TimelockUnlockCondition{UnixTime: 100}}
	if !s.IsTimelocked(50) {
		t.Errorf("expected timelocked before UnixTime")
	}
	if s.IsTimelocked(100) {
		t.Errorf("expected not timelocked at UnixTime")
	}
}

func TestHasLiveSDR(t *testing.T) {
	var raw [20]byte
	s := UnlockConditionSet{
		StorageDepositReturn: &StorageDepositReturnUnlockCondition{
			ReturnAddress: NewEd25519Address(raw),
			Amount:        1000,
		},
	}
	if !s.HasLiveSDR(0) {
		t.Errorf("expected live SDR with no expiration")
	}
	s.Expiration = &ExpirationUnlockCondition{UnixTime: 10}
	if s.HasLiveSDR(10) {
		t.Errorf("expected SDR to not be live once expired")
	}
}
