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

// Package nodeview is the narrow read interface Selection uses to resolve
// addresses and chain objects to live outputs, without ever mutating
// ledger state.
package nodeview

import (
	"net/url"
	"strconv"

	"github.com/blinklabs-io/meshledger/ledger"
)

// BasicOutputQuery is the closed set of indexer filters Selection ever
// needs against basic outputs. Zero-value fields are omitted from the
// request.
type BasicOutputQuery struct {
	Address         *ledger.Address
	HasStorageDepositReturn *bool
	HasExpiration   *bool
	ExpiresBefore   *uint32
	HasNativeTokens *bool
	HasTimelock     *bool
	TimelockedBefore *uint32
	Cursor          string
	PageSize        int
}

// Values renders the query as URL query parameters for a REST indexer
// request.
func (q BasicOutputQuery) Values() url.Values {
	v := url.Values{}
	if q.Address != nil {
		addr, err := q.Address.Bech32("smr")
		if err == nil {
			v.Set("address", addr)
		}
	}
	if q.HasStorageDepositReturn != nil {
		v.Set("hasStorageDepositReturn", strconv.FormatBool(*q.HasStorageDepositReturn))
	}
	if q.HasExpiration != nil {
		v.Set("hasExpiration", strconv.FormatBool(*q.HasExpiration))
	}
	if q.ExpiresBefore != nil {
		v.Set("expiresBefore", strconv.FormatUint(uint64(*q.ExpiresBefore), 10))
	}
	if q.HasNativeTokens != nil {
		v.Set("hasNativeTokens", strconv.FormatBool(*q.HasNativeTokens))
	}
	if q.HasTimelock != nil {
		v.Set("hasTimelock", strconv.FormatBool(*q.HasTimelock))
	}
	if q.TimelockedBefore != nil {
		v.Set("timelockedBefore", strconv.FormatUint(uint64(*q.TimelockedBefore), 10))
	}
	if q.Cursor != "" {
		v.Set("cursor", q.Cursor)
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

// OutputIDPage is one page of an indexer query result.
type OutputIDPage struct {
	Items      []ledger.OutputID
	NextCursor string
}
