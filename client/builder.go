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

// Package client exposes the fluent TransactionBuilder bindings drive:
// with_secret_manager/with_coin_type/.../finish(), wiring Input Selection,
// the Essence Builder, and the Unlock Assembler into one call.
package client

import (
	"context"

	"github.com/blinklabs-io/meshledger/essence"
	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/blinklabs-io/meshledger/nodeview"
	"github.com/blinklabs-io/meshledger/secretmanager"
	"github.com/blinklabs-io/meshledger/selection"

	"go.uber.org/zap"
)

// Block is the finished, signed artifact Finish produces: a ready-to-submit
// transaction paired with the parent block ids it references.
type Block struct {
	Transaction ledger.Transaction
	Parents     [][32]byte
}

// Client wires one NodeView against the network this builder targets.
type Client struct {
	NodeView  nodeview.NodeView
	Bech32HRP string
	Logger    *zap.SugaredLogger
}

// New returns a Client bound to the given NodeView, decoding and
// encoding addresses under hrp.
func New(nv nodeview.NodeView, hrp string, logger *zap.SugaredLogger) *Client {
	return &Client{NodeView: nv, Bech32HRP: hrp, Logger: logger}
}

// TransactionBuilder accumulates one transaction's intent across chained
// With* calls before Finish drives Selection, the Essence Builder, and the
// Unlock Assembler in sequence.
type TransactionBuilder struct {
	client *Client

	secretManager       secretmanager.SecretManager
	coinType            uint32
	account             uint32
	initialAddressIndex uint32

	requiredInputs []ledger.InputSigningData
	inputRangeLow  uint32
	inputRangeHigh uint32
	hasInputRange  bool

	outputs          ledger.Outputs
	remainderAddress *ledger.Address
	tag              []byte
	data             []byte
	parents          [][32]byte
	burn             *ledger.Burn

	err error
}

// NewTransactionBuilder starts a fluent transaction build against c.
func (c *Client) NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{client: c, coinType: 4218}
}

func (b *TransactionBuilder) WithSecretManager(sm secretmanager.SecretManager) *TransactionBuilder {
	b.secretManager = sm
	return b
}

func (b *TransactionBuilder) WithCoinType(coinType uint32) *TransactionBuilder {
	b.coinType = coinType
	return b
}

func (b *TransactionBuilder) WithAccountIndex(account uint32) *TransactionBuilder {
	b.account = account
	return b
}

func (b *TransactionBuilder) WithInitialAddressIndex(index uint32) *TransactionBuilder {
	b.initialAddressIndex = index
	return b
}

func (b *TransactionBuilder) WithInput(in ledger.InputSigningData) *TransactionBuilder {
	b.requiredInputs = append(b.requiredInputs, in)
	return b
}

// WithInputRange restricts address-gap discovery to [low, high) instead of
// starting from WithInitialAddressIndex and scanning a full GAP window.
func (b *TransactionBuilder) WithInputRange(low, high uint32) *TransactionBuilder {
	b.inputRangeLow, b.inputRangeHigh, b.hasInputRange = low, high, true
	return b
}

// WithOutput adds a single basic output paying amount to a bech32-encoded
// address.
func (b *TransactionBuilder) WithOutput(bech32Addr string, amount uint64) *TransactionBuilder {
	addr, err := ledger.ParseBech32Address(b.client.Bech32HRP, bech32Addr)
	if err != nil {
		b.err = err
		return b
	}
	b.outputs = append(b.outputs, &ledger.BasicOutput{
		Amount:           amount,
		UnlockConditions: ledger.UnlockConditionSet{Address: &ledger.AddressUnlockCondition{Address: addr}},
	})
	return b
}

func (b *TransactionBuilder) WithOutputs(outputs ledger.Outputs) *TransactionBuilder {
	b.outputs = append(b.outputs, outputs...)
	return b
}

func (b *TransactionBuilder) WithCustomRemainderAddress(addr ledger.Address) *TransactionBuilder {
	b.remainderAddress = &addr
	return b
}

func (b *TransactionBuilder) WithTag(tag []byte) *TransactionBuilder {
	b.tag = tag
	return b
}

func (b *TransactionBuilder) WithData(data []byte) *TransactionBuilder {
	b.data = data
	return b
}

func (b *TransactionBuilder) WithParents(parents [][32]byte) *TransactionBuilder {
	b.parents = parents
	return b
}

func (b *TransactionBuilder) WithBurn(burn *ledger.Burn) *TransactionBuilder {
	b.burn = burn
	return b
}

// Finish runs Input Selection (discovering additional inputs over the
// node view's gap-limited address scan when the caller didn't supply
// enough), builds the essence, signs it through the secret manager, and
// returns the finished Block.
func (b *TransactionBuilder) Finish(ctx context.Context) (*Block, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.secretManager == nil {
		return nil, ledger.NewShapeError("transaction builder: no secret manager configured")
	}

	params, err := b.client.NodeView.ProtocolParameters(ctx)
	if err != nil {
		return nil, err
	}
	unixTime, err := b.client.NodeView.TimeChecked(ctx)
	if err != nil {
		return nil, err
	}

	req := selection.Request{
		RequiredOutputs:  b.outputs,
		RequiredInputs:   b.requiredInputs,
		Burn:             b.burn,
		RemainderAddress: b.remainderAddress,
		ProtocolParams:   params,
		CurrentTime:      unixTime,
	}

	var selected *ledger.Selected
	if b.hasInputRange {
		addrs, err := b.secretManager.GenerateAddresses(secretmanager.GenerateAddressesOptions{
			CoinType: b.coinType, Account: b.account, Change: false,
			Start: b.inputRangeLow, Count: b.inputRangeHigh - b.inputRangeLow,
		})
		if err != nil {
			return nil, err
		}
		for _, g := range addrs {
			ids, err := b.client.NodeView.BasicOutputIDs(ctx, nodeview.BasicOutputQuery{Address: &g.Address})
			if err != nil {
				return nil, err
			}
			resolved, err := b.client.NodeView.GetOutputs(ctx, ids.Items)
			if err != nil {
				return nil, err
			}
			for _, r := range resolved {
				req.AvailableInputs = append(req.AvailableInputs, ledger.InputSigningData{
					Output:         r.Output,
					OutputMetadata: r.OutputMetadata,
					Chain: &ledger.DerivationChain{CoinType: b.coinType, Account: b.account, Change: g.Path.Change, AddressIndex: g.Path.Index},
				})
			}
		}
		selected, err = selection.Select(req)
		if err != nil {
			return nil, err
		}
	} else {
		addresses := func(change bool, start, count uint32) ([]selection.AddressCandidate, error) {
			generated, err := b.secretManager.GenerateAddresses(secretmanager.GenerateAddressesOptions{
				CoinType: b.coinType, Account: b.account, Change: change, Start: start, Count: count,
			})
			if err != nil {
				return nil, err
			}
			out := make([]selection.AddressCandidate, len(generated))
			for i, g := range generated {
				out[i] = selection.AddressCandidate{
					Address: g.Address,
					Chain:   ledger.DerivationChain{CoinType: b.coinType, Account: b.account, Change: g.Path.Change, AddressIndex: g.Path.Index},
				}
			}
			return out, nil
		}
		selected, err = selection.SelectWithDiscovery(ctx, selection.DiscoveryRequest{
			Request:             req,
			NodeView:            b.client.NodeView,
			Addresses:           addresses,
			InitialAddressIndex: b.initialAddressIndex,
		})
		if err != nil {
			return nil, err
		}
	}

	built, err := essence.Build(selected, params, essence.Options{NetworkID: params.NetworkID, Tag: b.tag, Data: b.data})
	if err != nil {
		return nil, err
	}
	essenceHash, err := built.Hash()
	if err != nil {
		return nil, err
	}
	unlocks, err := b.secretManager.SignTransactionEssence(essenceHash, unixTime, selected.Inputs, built.Outputs)
	if err != nil {
		return nil, err
	}

	return &Block{
		Transaction: ledger.Transaction{Essence: *built, Unlocks: unlocks},
		Parents:     b.parents,
	}, nil
}
