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

import (
	"errors"

	"github.com/blinklabs-io/meshledger/ledger"
)

// Gap is the number of consecutive indices scanned per side (public or
// internal) before the funded-address state machine reports a window as
// empty. The scan gives up after 2*Gap consecutive empty addresses.
const Gap = 20

// ErrAddressNotFound reports that a target address never appeared within
// the requested search range.
var ErrAddressNotFound = errors.New("address: not found in derivation subtree")

// Generator derives addresses from one seed under a fixed coin type and
// account index, interleaving public and internal (change) streams.
type Generator struct {
	Seed     []byte
	CoinType uint32
	Account  uint32
}

// Generated pairs a derived address with the path that produced it.
type Generated struct {
	Address ledger.Address
	Path    Path
}

// Range returns the addresses for indices [start, start+count) on one
// side (public when change is false, internal when true), in ascending
// index order.
func (g Generator) Range(change bool, start, count uint32) []Generated {
	out := make([]Generated, 0, count)
	for i := uint32(0); i < count; i++ {
		p := Path{CoinType: g.CoinType, Account: g.Account, Change: change, Index: start + i}
		out = append(out, Generated{Address: DeriveAddress(g.Seed, p), Path: p})
	}
	return out
}

// Interleaved returns count addresses per side for indices
// [start, start+count), alternating public then internal per index so
// callers observe an ascending interleaved stream as spec'd.
func (g Generator) Interleaved(start, count uint32) []Generated {
	out := make([]Generated, 0, count*2)
	for i := uint32(0); i < count; i++ {
		idx := start + i
		pubPath := Path{CoinType: g.CoinType, Account: g.Account, Change: false, Index: idx}
		chgPath := Path{CoinType: g.CoinType, Account: g.Account, Change: true, Index: idx}
		out = append(out,
			Generated{Address: DeriveAddress(g.Seed, pubPath), Path: pubPath},
			Generated{Address: DeriveAddress(g.Seed, chgPath), Path: chgPath},
		)
	}
	return out
}

// SearchAddress scans indices [0, maxIndex) on both the public and
// internal branches for target, returning its (index, change) on a hit or
// ErrAddressNotFound if it never appears in range.
func (g Generator) SearchAddress(target ledger.Address, maxIndex uint32) (index uint32, change bool, err error) {
	for i := uint32(0); i < maxIndex; i++ {
		for _, flag := range [2]bool{false, true} {
			p := Path{CoinType: g.CoinType, Account: g.Account, Change: flag, Index: i}
			if DeriveAddress(g.Seed, p).Equal(target) {
				return i, flag, nil
			}
		}
	}
	return 0, false, ErrAddressNotFound
}

// FundedLookup resolves whether a derived address has any outputs, the
// one piece of external state the gap-scan loop needs per address; it is
// implemented against a Node View by callers in package selection.
type FundedLookup func(ledger.Address) (bool, error)

// GapScanResult accumulates every address the scan produced evidence for.
type GapScanResult struct {
	Funded []Generated
}

// GapScan walks both the public and internal branches of Generator in
// Gap-sized windows, starting at startIndex, calling isFunded for each
// candidate address, public then internal at each index. Every unfunded
// address increments a consecutive-empty counter and every funded one
// resets it; the scan stops once 2*Gap consecutive addresses, counted
// across both sides, come back unfunded.
func (g Generator) GapScan(startIndex uint32, isFunded FundedLookup) (GapScanResult, error) {
	var result GapScanResult
	consecutiveEmpty := 0
	idx := startIndex
	for consecutiveEmpty < 2*Gap {
		for i := uint32(0); i < Gap; i++ {
			for _, flag := range [2]bool{false, true} {
				p := Path{CoinType: g.CoinType, Account: g.Account, Change: flag, Index: idx + i}
				addr := DeriveAddress(g.Seed, p)
				funded, err := isFunded(addr)
				if err != nil {
					return result, err
				}
				if funded {
					result.Funded = append(result.Funded, Generated{Address: addr, Path: p})
					consecutiveEmpty = 0
				} else {
					consecutiveEmpty++
				}
				if consecutiveEmpty >= 2*Gap {
					return result, nil
				}
			}
		}
		idx += Gap
	}
	return result, nil
}
