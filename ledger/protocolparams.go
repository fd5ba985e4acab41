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

// ProtocolParameters is the subset of node-reported network parameters
// that Selection and the Essence Builder need: the rent structure for
// storage-deposit calculation and the hard input/output/essence caps.
type ProtocolParameters struct {
	RentStructure      RentStructure
	TokenSupply        uint64
	MaxInputCount      int
	MaxOutputCount     int
	MaxEssenceLength   int
	NetworkID          uint64
}

// DefaultProtocolParameters returns parameters matching the reference
// ledger's published caps, for use by callers that have not yet fetched
// live parameters from a NodeView.
func DefaultProtocolParameters() ProtocolParameters {
	return ProtocolParameters{
		RentStructure:    DefaultRentStructure,
		TokenSupply:      2_779_530_283_277_761,
		MaxInputCount:    128,
		MaxOutputCount:   128,
		MaxEssenceLength: 32768,
		NetworkID:        1,
	}
}
