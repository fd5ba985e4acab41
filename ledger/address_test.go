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

func TestAddressEqual(t *testing.T) {
	var p [20]byte
	p[0] = 0x1
	a := NewEd25519Address(p)
	b := NewEd25519Address(p)
	if !a.Equal(b) {
		t.Errorf("expected equal addresses built from the same payload")
	}
	p[1] = 0x2
	c := NewEd25519Address(p)
	if a.Equal(c) {
		t.Errorf("expected different payloads to compare unequal")
	}
}

func TestAddressKindDistinguishesEqualPayloads(t *testing.T) {
	var raw [20]byte
	raw[0] = 0x7
	ed := NewEd25519Address(raw)
	alias := NewAliasAddress(AliasID(raw))
	if ed.Equal(alias) {
		t.Errorf("expected Ed25519 and Alias addresses with the same payload to differ")
	}
}

func TestAddressRoundTripCBOR(t *testing.T) {
	var id NFTID
	id[3] = 0x99
	original := NewNFTAddress(id)
	data, err := original.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	var decoded Address
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestAddressAliasIDAccessor(t *testing.T) {
	var id AliasID
	id[0] = 0x5
	addr := NewAliasAddress(id)
	got, ok := addr.AliasID()
	if !ok {
		t.Fatalf("expected AliasID() to succeed for an alias address")
	}
	if got != id {
		t.Errorf("got %s, want %s", got, id)
	}
	if _, ok := addr.NFTID(); ok {
		t.Errorf("expected NFTID() to fail for an alias address")
	}
}

func TestAddressSetAndIndex(t *testing.T) {
	var raw [20]byte
	raw[0] = 0x11
	a := NewEd25519Address(raw)

	set := NewAddressSet()
	if set.Has(a) {
		t.Errorf("expected empty set to not contain address")
	}
	set.Add(a)
	if !set.Has(a) {
		t.Errorf("expected set to contain address after Add")
	}

	idx := NewAddressIndex()
	if _, ok := idx.Get(a); ok {
		t.Errorf("expected empty index to miss")
	}
	idx.Set(a, 4)
	got, ok := idx.Get(a)
	if !ok || got != 4 {
		t.Errorf("got (%d, %v), want (4, true)", got, ok)
	}
}

func TestBech32RoundTrip(t *testing.T) {
	var raw [20]byte
	raw[0] = 0xab
	raw[19] = 0xcd
	original := NewEd25519Address(raw)

	encoded, err := original.Bech32("smr")
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	decoded, err := ParseBech32Address("smr", encoded)
	if err != nil {
		t.Fatalf("ParseBech32Address: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestParseBech32AddressWrongHRP(t *testing.T) {
	var raw [20]byte
	encoded, err := NewEd25519Address(raw).Bech32("smr")
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if _, err := ParseBech32Address("rms", encoded); err == nil {
		t.Errorf("expected hrp mismatch to fail")
	}
}
