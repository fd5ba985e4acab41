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

package cache

import (
	"fmt"
	"os"

	"github.com/blinklabs-io/meshledger/ledger"

	"github.com/blinklabs-io/adder/event"
	input_chainsync "github.com/blinklabs-io/adder/input/chainsync"
	output_embedded "github.com/blinklabs-io/adder/output/embedded"
	"github.com/blinklabs-io/adder/pipeline"
	ocommon "github.com/blinklabs-io/gouroboros/protocol/common"
)

// WarmerOptions configures the chain-sync tail a Warmer follows.
type WarmerOptions struct {
	Network        string
	NodeAddress    string
	IntersectSlot  uint64
	IntersectHash  []byte
}

// Warmer tails chain-sync and invalidates CachingNodeView's index for any
// address that receives a produced output, so the next Select call
// observes the new balance instead of a stale cached page. Spends are not
// invalidated here; they age out with the index TTL.
// Adapted from internal/indexer's pipeline wiring; this warmer only
// invalidates, it never builds its own wallet-matched UTXO set.
type Warmer struct {
	cache    *CachingNodeView
	pipeline *pipeline.Pipeline
}

// NewWarmer builds a Warmer over cache. Call Start to begin tailing.
func NewWarmer(cache *CachingNodeView) *Warmer {
	return &Warmer{cache: cache}
}

func (w *Warmer) Start(opts WarmerOptions) error {
	w.pipeline = pipeline.New()

	inputOpts := []input_chainsync.ChainSyncOptionFunc{
		input_chainsync.WithBulkMode(true),
		input_chainsync.WithAutoReconnect(true),
		input_chainsync.WithNetwork(opts.Network),
		input_chainsync.WithIncludeCbor(true),
	}
	if opts.NodeAddress != "" {
		inputOpts = append(inputOpts, input_chainsync.WithAddress(opts.NodeAddress))
	}
	if opts.IntersectSlot > 0 {
		inputOpts = append(inputOpts, input_chainsync.WithIntersectPoints([]ocommon.Point{
			{Slot: opts.IntersectSlot, Hash: opts.IntersectHash},
		}))
	}
	w.pipeline.AddInput(input_chainsync.New(inputOpts...))

	output := output_embedded.New(
		output_embedded.WithCallbackFunc(w.handleEvent),
	)
	w.pipeline.AddOutput(output)

	if err := w.pipeline.Start(); err != nil {
		return err
	}
	go func() {
		err, ok := <-w.pipeline.ErrorChan()
		if ok && err != nil {
			w.cache.logger.Errorw("nodeview cache warmer pipeline failed", "error", err)
			os.Exit(1)
		}
	}()
	return nil
}

// handleEvent invalidates the produced side of every transaction it
// observes. The consumed side carries no address (only an output
// reference), so a spend is picked up on the owning address's next
// lookup miss rather than an immediate invalidation here.
func (w *Warmer) handleEvent(evt event.Event) error {
	txEvt, ok := evt.Payload.(input_chainsync.TransactionEvent)
	if !ok {
		return nil
	}
	for _, utxo := range txEvt.Transaction.Produced() {
		addrStr := utxo.Output.Address().String()
		addr, err := ledger.ParseBech32Address(w.cache.hrp, addrStr)
		if err != nil {
			continue
		}
		if err := w.cache.Invalidate(addr); err != nil {
			w.cache.logger.Warnw("failed to invalidate nodeview cache entry", "address", addrStr, "error", err)
		}
	}
	return nil
}

var _ = fmt.Sprintf
