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

// OutputMetadata is the NodeView-reported provenance of a UTXO: the id it
// was created under plus the milestone/transaction context needed to
// reason about confirmation.
type OutputMetadata struct {
	OutputID        OutputID
	BlockID         [32]byte
	MilestoneIndex  uint32
	MilestoneTimestamp uint32
}

// DerivationChain records the BIP-44 path an address was produced from, so
// a SecretManager backend can re-derive the matching private key without
// the caller tracking indices separately.
type DerivationChain struct {
	CoinType     uint32
	Account      uint32
	Change       bool
	AddressIndex uint32
}

// InputSigningData pairs a candidate or chosen UTXO with everything the
// Unlock Assembler and a SecretManager need to sign for it: the output
// itself, its on-ledger metadata, and, when it was sourced from a wallet
// address rather than supplied directly by the caller, the derivation
// chain that produced its unlocking address.
type InputSigningData struct {
	Output          Output
	OutputMetadata  OutputMetadata
	Chain           *DerivationChain
}

// Selected is the finished result of Input Selection: the chosen inputs in
// the order they must unlock, the final output set including any SDR
// echoes, and the remainder output, if one was required.
type Selected struct {
	Inputs    []InputSigningData
	Outputs   Outputs
	Remainder Output
}
