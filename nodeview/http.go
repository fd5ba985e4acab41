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
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blinklabs-io/meshledger/internal/metrics"
	"github.com/blinklabs-io/meshledger/ledger"

	"go.uber.org/zap"
)

// observeCall records a completed Node View operation's outcome and
// latency against the shared Prometheus collectors.
func observeCall(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.NodeViewCallsTotal.WithLabelValues(operation, outcome).Inc()
	metrics.NodeViewCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// HTTPClient is a REST-backed NodeView talking to a node's indexer and
// core HTTP APIs, the way cmd/shai's submit path talks to a Cardano
// relay's REST endpoint, generalized to this ledger's output model.
type HTTPClient struct {
	IndexerURL string
	CoreURL    string
	HTTP       *http.Client
	Logger     *zap.SugaredLogger
}

// NewHTTPClient returns an HTTPClient with sane request timeouts.
func NewHTTPClient(indexerURL, coreURL string, logger *zap.SugaredLogger) *HTTPClient {
	return &HTTPClient{
		IndexerURL: indexerURL,
		CoreURL:    coreURL,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("nodeview: request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("nodeview: %s returned %d: %s", url, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type outputIDPageWire struct {
	Items      []string `json:"items"`
	NextCursor string   `json:"cursor"`
}

func (c *HTTPClient) BasicOutputIDs(ctx context.Context, q BasicOutputQuery) (page OutputIDPage, err error) {
	defer func(start time.Time) { observeCall("BasicOutputIDs", start, err) }(time.Now())
	url := fmt.Sprintf("%s/api/indexer/v2/outputs/basic?%s", c.IndexerURL, q.Values().Encode())
	var wire outputIDPageWire
	if err := c.getJSON(ctx, url, &wire); err != nil {
		return OutputIDPage{}, err
	}
	page = OutputIDPage{NextCursor: wire.NextCursor}
	for _, item := range wire.Items {
		id, err := parseOutputIDHex(item)
		if err != nil {
			return OutputIDPage{}, err
		}
		page.Items = append(page.Items, id)
	}
	return page, nil
}

type chainOutputIDWire struct {
	OutputID string `json:"outputId"`
}

func (c *HTTPClient) chainOutputID(ctx context.Context, path string) (ledger.OutputID, bool, error) {
	url := fmt.Sprintf("%s/api/indexer/v2/%s", c.IndexerURL, path)
	var wire chainOutputIDWire
	if err := c.getJSON(ctx, url, &wire); err != nil {
		return ledger.OutputID{}, false, err
	}
	if wire.OutputID == "" {
		return ledger.OutputID{}, false, nil
	}
	id, err := parseOutputIDHex(wire.OutputID)
	if err != nil {
		return ledger.OutputID{}, false, err
	}
	return id, true, nil
}

func (c *HTTPClient) AliasOutputID(ctx context.Context, id ledger.AliasID) (outID ledger.OutputID, found bool, err error) {
	defer func(start time.Time) { observeCall("AliasOutputID", start, err) }(time.Now())
	outID, found, err = c.chainOutputID(ctx, fmt.Sprintf("aliases/%s", id))
	return
}

func (c *HTTPClient) NFTOutputID(ctx context.Context, id ledger.NFTID) (outID ledger.OutputID, found bool, err error) {
	defer func(start time.Time) { observeCall("NFTOutputID", start, err) }(time.Now())
	outID, found, err = c.chainOutputID(ctx, fmt.Sprintf("nft/%s", id))
	return
}

func (c *HTTPClient) FoundryOutputID(ctx context.Context, id ledger.FoundryID) (outID ledger.OutputID, found bool, err error) {
	defer func(start time.Time) { observeCall("FoundryOutputID", start, err) }(time.Now())
	outID, found, err = c.chainOutputID(ctx, fmt.Sprintf("foundries/%s", id))
	return
}

type outputWire struct {
	OutputID           string `json:"outputId"`
	RawOutputCbor      string `json:"outputCbor"`
	BlockID            string `json:"blockId"`
	MilestoneIndex     uint32 `json:"milestoneIndex"`
	MilestoneTimestamp uint32 `json:"milestoneTimestamp"`
}

func (c *HTTPClient) GetOutputs(ctx context.Context, ids []ledger.OutputID) (results []OutputWithMetadata, err error) {
	defer func(start time.Time) { observeCall("GetOutputs", start, err) }(time.Now())
	results = make([]OutputWithMetadata, 0, len(ids))
	for _, id := range ids {
		url := fmt.Sprintf("%s/api/core/v2/outputs/%s", c.CoreURL, id)
		var wire outputWire
		if err := c.getJSON(ctx, url, &wire); err != nil {
			c.Logger.Debugf("nodeview: output %s unavailable: %s", id, err)
			continue
		}
		output, err := DecodeOutput(wire.RawOutputCbor)
		if err != nil {
			return nil, err
		}
		var blockID [32]byte
		if b, err := hex.DecodeString(wire.BlockID); err == nil {
			copy(blockID[:], b)
		}
		results = append(results, OutputWithMetadata{
			Output: output,
			OutputMetadata: ledger.OutputMetadata{
				OutputID:           id,
				BlockID:            blockID,
				MilestoneIndex:     wire.MilestoneIndex,
				MilestoneTimestamp: wire.MilestoneTimestamp,
			},
		})
	}
	return results, nil
}

type protocolParametersWire struct {
	TokenSupply      uint64 `json:"tokenSupply"`
	ByteCost         uint64 `json:"rentStructure.byteCost"`
	ByteFactorData   uint64 `json:"rentStructure.byteFactorData"`
	ByteFactorKey    uint64 `json:"rentStructure.byteFactorKey"`
	MaxInputCount    int    `json:"maxInputCount"`
	MaxOutputCount   int    `json:"maxOutputCount"`
	MaxEssenceLength int    `json:"maxEssenceLength"`
	NetworkID        uint64 `json:"networkId"`
}

func (c *HTTPClient) ProtocolParameters(ctx context.Context) (params ledger.ProtocolParameters, err error) {
	defer func(start time.Time) { observeCall("ProtocolParameters", start, err) }(time.Now())
	url := fmt.Sprintf("%s/api/core/v2/info", c.CoreURL)
	var wire protocolParametersWire
	if err := c.getJSON(ctx, url, &wire); err != nil {
		return ledger.ProtocolParameters{}, err
	}
	return ledger.ProtocolParameters{
		RentStructure: ledger.RentStructure{
			ByteCost:       wire.ByteCost,
			ByteFactorData: wire.ByteFactorData,
			ByteFactorKey:  wire.ByteFactorKey,
			VByteOffset:    ledger.DefaultRentStructure.VByteOffset,
		},
		TokenSupply:      wire.TokenSupply,
		MaxInputCount:    wire.MaxInputCount,
		MaxOutputCount:   wire.MaxOutputCount,
		MaxEssenceLength: wire.MaxEssenceLength,
		NetworkID:        wire.NetworkID,
	}, nil
}

type timeCheckedWire struct {
	UnixTime uint32 `json:"unixTime"`
}

func (c *HTTPClient) TimeChecked(ctx context.Context) (unixTime uint32, err error) {
	defer func(start time.Time) { observeCall("TimeChecked", start, err) }(time.Now())
	url := fmt.Sprintf("%s/api/core/v2/info/time", c.CoreURL)
	var wire timeCheckedWire
	if err := c.getJSON(ctx, url, &wire); err != nil {
		return 0, err
	}
	return wire.UnixTime, nil
}

type submitBlockResponseWire struct {
	BlockID string `json:"blockId"`
}

func (c *HTTPClient) SubmitBlock(ctx context.Context, blockBytes []byte) (blockID [32]byte, err error) {
	defer func(start time.Time) { observeCall("SubmitBlock", start, err) }(time.Now())
	url := fmt.Sprintf("%s/api/core/v2/blocks", c.CoreURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(blockBytes))
	if err != nil {
		return [32]byte{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return [32]byte{}, fmt.Errorf("nodeview: submit failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return [32]byte{}, fmt.Errorf("nodeview: submit returned %d: %s", resp.StatusCode, body)
	}
	var wire submitBlockResponseWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return [32]byte{}, err
	}
	var id [32]byte
	b, err := hex.DecodeString(wire.BlockID)
	if err != nil {
		return [32]byte{}, fmt.Errorf("nodeview: malformed block id: %w", err)
	}
	copy(id[:], b)
	return id, nil
}

func parseOutputIDHex(s string) (ledger.OutputID, error) {
	if len(s) != 68 {
		return ledger.OutputID{}, ledger.NewShapeError("malformed output id %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ledger.OutputID{}, ledger.NewShapeError("malformed output id %q: %s", s, err)
	}
	var txID ledger.TransactionID
	copy(txID[:], raw[:32])
	index := uint16(raw[32])<<8 | uint16(raw[33])
	return ledger.NewOutputID(txID, index), nil
}
