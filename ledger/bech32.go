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

import (
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// Bech32 encodes an Address into its human-readable form under the given
// network-specific human-readable prefix (hrp), e.g. "smr" or "rms".
func (a Address) Bech32(hrp string) (string, error) {
	converted, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("ledger: bech32 conversion failed: %w", err)
	}
	encoded, err := bech32.Encode(hrp, converted)
	if err != nil {
		return "", fmt.Errorf("ledger: bech32 encoding failed: %w", err)
	}
	return encoded, nil
}

// ParseBech32Address decodes a bech32 address string, validating that its
// prefix matches the expected network hrp. It returns a ShapeError (per
// spec.md §7) on malformed input.
func ParseBech32Address(hrp, s string) (Address, error) {
	gotHRP, data, err := bech32.Decode(s)
	if err != nil {
		return Address{}, NewShapeError("malformed bech32 address: %s", err)
	}
	if gotHRP != hrp {
		return Address{}, NewShapeError(
			"address hrp %q does not match network hrp %q", gotHRP, hrp,
		)
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, NewShapeError("malformed bech32 payload: %s", err)
	}
	if len(converted) != 21 {
		return Address{}, NewShapeError(
			"address payload has wrong length %d, want 21", len(converted),
		)
	}
	return Address{
		Kind:    AddressKind(converted[0]),
		Payload: [20]byte(converted[1:21]),
	}, nil
}
