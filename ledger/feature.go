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

// FeatureSet bundles the optional mutable features an output may carry.
// Alias outputs additionally carry an ImmutableFeatureSet, of which only
// Issuer is ever populated, fixed at creation.
type FeatureSet struct {
	Sender   *Address
	Metadata []byte
	Tag      []byte
}

// ImmutableFeatureSet bundles features fixed at an output's creation that
// can never change across the chain object's lifetime.
type ImmutableFeatureSet struct {
	Issuer *Address
}
