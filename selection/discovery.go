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

package selection

import (
	"context"
	"errors"

	"github.com/blinklabs-io/meshledger/internal/metrics"
	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/blinklabs-io/meshledger/nodeview"
)

// gapLimit is the number of consecutive indices scanned per side before a
// window counts as empty; mirrors address.Gap without importing the
// address package, which SelectWithDiscovery's callers already depend on
// to build the AddressSource.
const gapLimit = 20

// AddressCandidate pairs a derivable address with the chain coordinates
// that produced it, so a resolved input can carry its DerivationChain.
type AddressCandidate struct {
	Address ledger.Address
	Chain   ledger.DerivationChain
}

// AddressSource derives count addresses starting at index start on one
// branch (public when change is false, internal when true). Callers
// adapt a secretmanager.SecretManager's GenerateAddresses into this
// shape, keeping package selection free of a dependency on any specific
// key-material backend.
type AddressSource func(change bool, start, count uint32) ([]AddressCandidate, error)

// DiscoveryRequest bundles what SelectWithDiscovery needs beyond a plain
// Request: a way to derive candidate addresses and the node view to
// resolve them against.
type DiscoveryRequest struct {
	Request
	NodeView            nodeview.NodeView
	Addresses           AddressSource
	InitialAddressIndex uint32
}

// retryableAfterWidening reports whether err reflects a shortfall that
// scanning a wider address window could plausibly fix: not enough value,
// not enough of some native token, no available inputs at all, or a
// remainder below its storage-deposit floor. Any other error — a missing
// chain object, a missing sender/issuer input tied to a fixed address,
// a consolidation requirement, an unfulfillable requirement, a shape or
// consistency failure — reflects something discovery can't fix by
// deriving more addresses, so it's returned immediately instead of being
// retried until the gap-limit scan exhausts itself.
func retryableAfterWidening(err error) bool {
	var insufficientAmount *ledger.InsufficientAmountError
	var insufficientToken *ledger.InsufficientNativeTokenAmountError
	var insufficientDeposit *ledger.InsufficientStorageDepositAmountError
	switch {
	case errors.As(err, &insufficientAmount):
		return true
	case errors.As(err, &insufficientToken):
		return true
	case errors.As(err, &insufficientDeposit):
		return true
	case errors.Is(err, ledger.ErrNoAvailableInputs):
		return true
	default:
		return false
	}
}

// SelectWithDiscovery widens Request.AvailableInputs window by window,
// GAP indices at a time on both branches, retrying Select until it
// succeeds, the node view errors, or the gap-limit scan exhausts itself
// with no addresses left to try — in which case the last requirement
// error observed is returned, or ErrNoInputs if no window ever produced
// a candidate at all.
func SelectWithDiscovery(ctx context.Context, dreq DiscoveryRequest) (*ledger.Selected, error) {
	req := dreq.Request
	var lastErr error
	sawAnyCandidate := false

	idx := dreq.InitialAddressIndex
	consecutiveEmpty := 0
	for consecutiveEmpty < 2*gapLimit {
		windowEmpty := true
		for _, change := range [2]bool{false, true} {
			candidates, err := dreq.Addresses(change, idx, gapLimit)
			if err != nil {
				return nil, err
			}
			for _, c := range candidates {
				ids, err := dreq.NodeView.BasicOutputIDs(ctx, nodeview.BasicOutputQuery{Address: &c.Address})
				if err != nil {
					return nil, err
				}
				if len(ids.Items) == 0 {
					continue
				}
				resolved, err := dreq.NodeView.GetOutputs(ctx, ids.Items)
				if err != nil {
					return nil, err
				}
				for _, r := range resolved {
					chain := c.Chain
					req.AvailableInputs = append(req.AvailableInputs, ledger.InputSigningData{
						Output:         r.Output,
						OutputMetadata: r.OutputMetadata,
						Chain:          &chain,
					})
				}
				if len(resolved) > 0 {
					windowEmpty = false
					sawAnyCandidate = true
				}
			}
		}
		idx += gapLimit

		selected, err := Select(req)
		if err == nil {
			metrics.SelectionDiscoveryWindows.WithLabelValues("satisfied").Inc()
			return selected, nil
		}
		if !retryableAfterWidening(err) {
			metrics.SelectionDiscoveryWindows.WithLabelValues("fatal").Inc()
			return nil, err
		}
		lastErr = err
		metrics.SelectionDiscoveryWindows.WithLabelValues("insufficient").Inc()

		if windowEmpty {
			consecutiveEmpty += gapLimit
		} else {
			consecutiveEmpty = 0
		}
	}

	if !sawAnyCandidate {
		metrics.SelectionDiscoveryWindows.WithLabelValues("no_candidates").Inc()
		return nil, ledger.ErrNoInputs
	}
	return nil, lastErr
}
