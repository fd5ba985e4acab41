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

// Package cache wraps a nodeview.NodeView with a local badger-backed
// UTXO-by-address cache, adapted from internal/storage's key layout. A
// Warmer can keep it current by tailing chain-sync events instead of
// every BasicOutputIDs call round-tripping to the indexer.
package cache

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/blinklabs-io/meshledger/ledger"
	"github.com/blinklabs-io/meshledger/nodeview"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const addressKeyPrefix = "nodeview_cache_address_"

// indexTTL bounds how stale a cached page can get when a spend isn't
// caught by Invalidate (e.g. a consumed input the warmer can't resolve
// to an address); every entry self-expires and re-fetches.
const indexTTL = 2 * time.Minute

func addressKey(addr ledger.Address, hrp string) (string, error) {
	bech32, err := addr.Bech32(hrp)
	if err != nil {
		return "", err
	}
	return addressKeyPrefix + bech32, nil
}

// CachingNodeView answers BasicOutputIDs for a known address from a local
// badger index when present, falling back to the wrapped NodeView and
// populating the index on a miss. Every other call passes straight
// through; Selection's chain-object and protocol-parameter lookups are
// cheap enough on the node side that caching them buys little.
type CachingNodeView struct {
	nodeview.NodeView
	db     *badger.DB
	hrp    string
	logger *zap.SugaredLogger
}

// Open opens (or creates) the badger store at dir and wraps inner.
func Open(dir string, hrp string, inner nodeview.NodeView, logger *zap.SugaredLogger) (*CachingNodeView, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CachingNodeView{NodeView: inner, db: db, hrp: hrp, logger: logger}, nil
}

func (c *CachingNodeView) Close() error {
	return c.db.Close()
}

// BasicOutputIDs serves an address-only, first-page query from the local
// index; any other shape of query (cursor paging, indexer-side filters)
// always goes to the wrapped NodeView, since the cache only tracks the
// current unspent set per address.
func (c *CachingNodeView) BasicOutputIDs(ctx context.Context, q nodeview.BasicOutputQuery) (nodeview.OutputIDPage, error) {
	filtered := q.HasStorageDepositReturn != nil || q.HasExpiration != nil || q.ExpiresBefore != nil ||
		q.HasNativeTokens != nil || q.HasTimelock != nil || q.TimelockedBefore != nil
	if q.Address == nil || q.Cursor != "" || filtered {
		return c.NodeView.BasicOutputIDs(ctx, q)
	}
	key, err := addressKey(*q.Address, c.hrp)
	if err != nil {
		return nodeview.OutputIDPage{}, err
	}
	ids, hit, err := c.readIndex(key)
	if err != nil {
		return nodeview.OutputIDPage{}, err
	}
	if hit {
		return nodeview.OutputIDPage{Items: ids}, nil
	}
	page, err := c.NodeView.BasicOutputIDs(ctx, q)
	if err != nil {
		return nodeview.OutputIDPage{}, err
	}
	if err := c.writeIndex(key, page.Items); err != nil {
		c.logger.Warnw("failed to populate nodeview cache", "address", q.Address, "error", err)
	}
	return page, nil
}

func (c *CachingNodeView) readIndex(key string) ([]ledger.OutputID, bool, error) {
	var ids []ledger.OutputID
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			var decodeErr error
			ids, decodeErr = decodeOutputIDs(string(v))
			return decodeErr
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

func (c *CachingNodeView) writeIndex(key string, ids []ledger.OutputID) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), []byte(encodeOutputIDs(ids))).WithTTL(indexTTL)
		return txn.SetEntry(entry)
	})
}

// Invalidate drops any cached page for addr, forcing the next
// BasicOutputIDs call to re-fetch from the wrapped NodeView. A Warmer
// calls this whenever chain-sync observes addr spend or receive a
// basic output.
func (c *CachingNodeView) Invalidate(addr ledger.Address) error {
	key, err := addressKey(addr, c.hrp)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func encodeOutputIDs(ids []ledger.OutputID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s.%d", hex.EncodeToString(id.TransactionID[:]), id.Index)
	}
	return strings.Join(parts, ",")
}

func decodeOutputIDs(v string) ([]ledger.OutputID, error) {
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	ids := make([]ledger.OutputID, 0, len(parts))
	for _, p := range parts {
		dot := strings.LastIndexByte(p, '.')
		if dot < 0 {
			return nil, fmt.Errorf("nodeview/cache: malformed output id %q", p)
		}
		txBytes, err := hex.DecodeString(p[:dot])
		if err != nil {
			return nil, err
		}
		var index uint16
		if _, err := fmt.Sscanf(p[dot+1:], "%d", &index); err != nil {
			return nil, err
		}
		var txID ledger.TransactionID
		copy(txID[:], txBytes)
		ids = append(ids, ledger.NewOutputID(txID, index))
	}
	return ids, nil
}
