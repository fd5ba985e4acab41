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

package nodeview

import (
	"context"

	"github.com/blinklabs-io/meshledger/ledger"
)

// OutputWithMetadata pairs a resolved output with its ledger provenance.
type OutputWithMetadata struct {
	Output         ledger.Output
	OutputMetadata ledger.OutputMetadata
}

// NodeView is the read-only surface Selection drives discovery and
// consistency checks through. Implementations never mutate ledger state;
// the only state-changing network call this library makes at all is
// block submission, exposed separately since Selection never calls it.
type NodeView interface {
	// BasicOutputIDs resolves a BasicOutputQuery to one page of matching
	// output ids.
	BasicOutputIDs(ctx context.Context, q BasicOutputQuery) (OutputIDPage, error)

	// AliasOutputID returns the output id currently holding the live
	// alias state, if any.
	AliasOutputID(ctx context.Context, id ledger.AliasID) (ledger.OutputID, bool, error)

	// NFTOutputID returns the output id currently holding the NFT, if
	// any.
	NFTOutputID(ctx context.Context, id ledger.NFTID) (ledger.OutputID, bool, error)

	// FoundryOutputID returns the output id currently holding the
	// foundry's state, if any.
	FoundryOutputID(ctx context.Context, id ledger.FoundryID) (ledger.OutputID, bool, error)

	// GetOutputs resolves output ids to their current output and
	// metadata. An id with no live output is simply omitted from the
	// result rather than erroring, since a spent id is a normal outcome
	// of Selection re-checking stale candidates.
	GetOutputs(ctx context.Context, ids []ledger.OutputID) ([]OutputWithMetadata, error)

	// ProtocolParameters returns the network's current protocol
	// parameters.
	ProtocolParameters(ctx context.Context) (ledger.ProtocolParameters, error)

	// TimeChecked returns the current time clamped to
	// [latest-milestone-timestamp, now+epsilon], the timestamp Selection
	// evaluates Timelock/Expiration conditions against.
	TimeChecked(ctx context.Context) (uint32, error)

	// SubmitBlock submits a finished block's bytes for inclusion. PoW,
	// retry, and reattachment are out of scope; this call either accepts
	// or rejects the block as given.
	SubmitBlock(ctx context.Context, blockBytes []byte) (blockID [32]byte, err error)
}
