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

package address

import "testing"

var testSeed = []byte("0123456789abcdef0123456789abcdef")

func TestDeriveAddressDeterministic(t *testing.T) {
	p := Path{CoinType: 4218, Account: 0, Change: false, Index: 0}
	a1 := DeriveAddress(testSeed, p)
	a2 := DeriveAddress(testSeed, p)
	if !a1.Equal(a2) {
		t.Errorf("expected deterministic derivation for the same path")
	}
}

func TestDeriveAddressDiffersByIndex(t *testing.T) {
	a := DeriveAddress(testSeed, Path{CoinType: 4218, Index: 0})
	b := DeriveAddress(testSeed, Path{CoinType: 4218, Index: 1})
	if a.Equal(b) {
		t.Errorf("expected different indices to derive different addresses")
	}
}

func TestDeriveAddressDiffersByChange(t *testing.T) {
	a := DeriveAddress(testSeed, Path{CoinType: 4218, Index: 3, Change: false})
	b := DeriveAddress(testSeed, Path{CoinType: 4218, Index: 3, Change: true})
	if a.Equal(b) {
		t.Errorf("expected the change flag to change the derived address")
	}
}

func TestDeriveAddressDiffersBySeed(t *testing.T) {
	p := Path{CoinType: 4218, Index: 0}
	a := DeriveAddress(testSeed, p)
	b := DeriveAddress([]byte("different seed material 01234567"), p)
	if a.Equal(b) {
		t.Errorf("expected different seeds to derive different addresses")
	}
}

func TestPathSegmentsAllHardened(t *testing.T) {
	p := Path{CoinType: 1, Account: 2, Change: true, Index: 3}
	for _, s := range p.Segments() {
		if s&hardenedOffset == 0 {
			t.Errorf("expected every path segment to be hardened, got %d", s)
		}
	}
}
