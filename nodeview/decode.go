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
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/blinklabs-io/meshledger/ledger"

	"github.com/blinklabs-io/gouroboros/cbor"
)

// DecodeOutput parses the hex-encoded canonical CBOR of a node-reported
// output into the matching ledger.Output variant, the read-side
// counterpart to each output type's Serialize method.
func DecodeOutput(outputHex string) (ledger.Output, error) {
	raw, err := hex.DecodeString(outputHex)
	if err != nil {
		return nil, ledger.NewShapeError("malformed output cbor: %s", err)
	}
	var c cbor.Constructor
	if _, err := cbor.Decode(raw, &c); err != nil {
		return nil, ledger.NewShapeError("malformed output cbor: %s", err)
	}
	var fields []cbor.RawMessage
	if err := cbor.DecodeGeneric(c.FieldsCbor(), &fields); err != nil {
		return nil, ledger.NewShapeError("malformed output fields: %s", err)
	}

	switch ledger.OutputKind(c.Constructor()) {
	case ledger.OutputBasic:
		return decodeBasicOutput(fields)
	case ledger.OutputAlias:
		return decodeAliasOutput(fields)
	case ledger.OutputFoundry:
		return decodeFoundryOutput(fields)
	case ledger.OutputNFT:
		return decodeNFTOutput(fields)
	case ledger.OutputTreasury:
		return decodeTreasuryOutput(fields)
	default:
		return nil, ledger.NewShapeError("unknown output kind %d", c.Constructor())
	}
}

func decodeUint64(raw cbor.RawMessage) (uint64, error) {
	var v uint64
	if err := cbor.DecodeGeneric(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func decodeBytes(raw cbor.RawMessage) ([]byte, error) {
	var v []byte
	if err := cbor.DecodeGeneric(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeNativeTokens is the read-side counterpart of serializeNativeTokens:
// a flat list alternating 20-byte token ids and uint64 amounts.
func decodeNativeTokens(raw cbor.RawMessage) ([]ledger.NativeToken, error) {
	var flat []cbor.RawMessage
	if err := cbor.DecodeGeneric(raw, &flat); err != nil {
		return nil, err
	}
	tokens := make([]ledger.NativeToken, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		idBytes, err := decodeBytes(flat[i])
		if err != nil {
			return nil, err
		}
		amount, err := decodeUint64(flat[i+1])
		if err != nil {
			return nil, err
		}
		var id ledger.NativeTokenID
		copy(id[:], idBytes)
		tokens = append(tokens, ledger.NativeToken{ID: id, Amount: new(big.Int).SetUint64(amount)})
	}
	return tokens, nil
}

// decodeUnlockConditions decodes the kind-tagged list
// serializeUnlockConditions produces back into an UnlockConditionSet; an
// empty list yields an empty set.
func decodeUnlockConditions(raw cbor.RawMessage) (ledger.UnlockConditionSet, error) {
	var items []cbor.RawMessage
	if err := cbor.DecodeGeneric(raw, &items); err != nil {
		return ledger.UnlockConditionSet{}, err
	}
	var set ledger.UnlockConditionSet
	for i := 0; i < len(items); {
		var kind uint64
		if err := cbor.DecodeGeneric(items[i], &kind); err != nil {
			return set, err
		}
		i++
		switch ledger.UnlockConditionKind(kind) {
		case ledger.UnlockConditionAddress:
			addr, err := decodeAddress(items[i])
			if err != nil {
				return set, err
			}
			set.Address = &ledger.AddressUnlockCondition{Address: addr}
			i++
		case ledger.UnlockConditionStorageDepositReturn:
			addr, err := decodeAddress(items[i])
			if err != nil {
				return set, err
			}
			amount, err := decodeUint64(items[i+1])
			if err != nil {
				return set, err
			}
			set.StorageDepositReturn = &ledger.StorageDepositReturnUnlockCondition{
				ReturnAddress: addr, Amount: amount,
			}
			i += 2
		case ledger.UnlockConditionTimelock:
			t, err := decodeUint64(items[i])
			if err != nil {
				return set, err
			}
			set.Timelock = &ledger.TimelockUnlockCondition{UnixTime: uint32(t)}
			i++
		case ledger.UnlockConditionExpiration:
			addr, err := decodeAddress(items[i])
			if err != nil {
				return set, err
			}
			t, err := decodeUint64(items[i+1])
			if err != nil {
				return set, err
			}
			set.Expiration = &ledger.ExpirationUnlockCondition{ReturnAddress: addr, UnixTime: uint32(t)}
			i += 2
		case ledger.UnlockConditionStateControllerAddress:
			addr, err := decodeAddress(items[i])
			if err != nil {
				return set, err
			}
			set.StateControllerAddress = &ledger.StateControllerAddressUnlockCondition{Address: addr}
			i++
		case ledger.UnlockConditionGovernorAddress:
			addr, err := decodeAddress(items[i])
			if err != nil {
				return set, err
			}
			set.GovernorAddress = &ledger.GovernorAddressUnlockCondition{Address: addr}
			i++
		case ledger.UnlockConditionImmutableAliasAddress:
			addr, err := decodeAddress(items[i])
			if err != nil {
				return set, err
			}
			set.ImmutableAliasAddress = &ledger.ImmutableAliasAddressUnlockCondition{Address: addr}
			i++
		default:
			return set, fmt.Errorf("nodeview: unknown unlock condition kind %d", kind)
		}
	}
	return set, nil
}

func decodeAddress(raw cbor.RawMessage) (ledger.Address, error) {
	var addr ledger.Address
	if err := addr.UnmarshalCBOR(raw); err != nil {
		return ledger.Address{}, err
	}
	return addr, nil
}

func decodeBasicOutput(fields []cbor.RawMessage) (*ledger.BasicOutput, error) {
	if len(fields) != 4 {
		return nil, fmt.Errorf("nodeview: basic output wants 4 fields, got %d", len(fields))
	}
	amount, err := decodeUint64(fields[0])
	if err != nil {
		return nil, err
	}
	tokens, err := decodeNativeTokens(fields[1])
	if err != nil {
		return nil, err
	}
	conditions, err := decodeUnlockConditions(fields[2])
	if err != nil {
		return nil, err
	}
	return &ledger.BasicOutput{Amount: amount, Tokens: tokens, UnlockConditions: conditions}, nil
}

func decodeAliasOutput(fields []cbor.RawMessage) (*ledger.AliasOutput, error) {
	if len(fields) != 9 {
		return nil, fmt.Errorf("nodeview: alias output wants 9 fields, got %d", len(fields))
	}
	amount, err := decodeUint64(fields[0])
	if err != nil {
		return nil, err
	}
	tokens, err := decodeNativeTokens(fields[1])
	if err != nil {
		return nil, err
	}
	aliasIDBytes, err := decodeBytes(fields[2])
	if err != nil {
		return nil, err
	}
	var aliasID ledger.AliasID
	copy(aliasID[:], aliasIDBytes)
	stateIndex, err := decodeUint64(fields[3])
	if err != nil {
		return nil, err
	}
	foundryCounter, err := decodeUint64(fields[4])
	if err != nil {
		return nil, err
	}
	stateMetadata, err := decodeBytes(fields[5])
	if err != nil {
		return nil, err
	}
	conditions, err := decodeUnlockConditions(fields[6])
	if err != nil {
		return nil, err
	}
	return &ledger.AliasOutput{
		Amount:           amount,
		Tokens:           tokens,
		AliasID:          aliasID,
		StateIndex:       uint32(stateIndex),
		FoundryCounter:   uint32(foundryCounter),
		StateMetadata:    stateMetadata,
		UnlockConditions: conditions,
	}, nil
}

func decodeFoundryOutput(fields []cbor.RawMessage) (*ledger.FoundryOutput, error) {
	if len(fields) != 9 {
		return nil, fmt.Errorf("nodeview: foundry output wants 9 fields, got %d", len(fields))
	}
	amount, err := decodeUint64(fields[0])
	if err != nil {
		return nil, err
	}
	tokens, err := decodeNativeTokens(fields[1])
	if err != nil {
		return nil, err
	}
	serial, err := decodeUint64(fields[2])
	if err != nil {
		return nil, err
	}
	minted, err := decodeUint64(fields[4])
	if err != nil {
		return nil, err
	}
	melted, err := decodeUint64(fields[5])
	if err != nil {
		return nil, err
	}
	max, err := decodeUint64(fields[6])
	if err != nil {
		return nil, err
	}
	conditions, err := decodeUnlockConditions(fields[7])
	if err != nil {
		return nil, err
	}
	return &ledger.FoundryOutput{
		Amount:       amount,
		Tokens:       tokens,
		SerialNumber: uint32(serial),
		TokenScheme: ledger.TokenScheme{
			Kind:          ledger.TokenSchemeSimple,
			MintedTokens:  new(big.Int).SetUint64(minted),
			MeltedTokens:  new(big.Int).SetUint64(melted),
			MaximumSupply: new(big.Int).SetUint64(max),
		},
		UnlockConditions: conditions,
	}, nil
}

func decodeNFTOutput(fields []cbor.RawMessage) (*ledger.NFTOutput, error) {
	if len(fields) != 6 {
		return nil, fmt.Errorf("nodeview: nft output wants 6 fields, got %d", len(fields))
	}
	amount, err := decodeUint64(fields[0])
	if err != nil {
		return nil, err
	}
	tokens, err := decodeNativeTokens(fields[1])
	if err != nil {
		return nil, err
	}
	nftIDBytes, err := decodeBytes(fields[2])
	if err != nil {
		return nil, err
	}
	var nftID ledger.NFTID
	copy(nftID[:], nftIDBytes)
	conditions, err := decodeUnlockConditions(fields[3])
	if err != nil {
		return nil, err
	}
	return &ledger.NFTOutput{Amount: amount, Tokens: tokens, NFTID: nftID, UnlockConditions: conditions}, nil
}

func decodeTreasuryOutput(fields []cbor.RawMessage) (*ledger.TreasuryOutput, error) {
	if len(fields) != 1 {
		return nil, fmt.Errorf("nodeview: treasury output wants 1 field, got %d", len(fields))
	}
	amount, err := decodeUint64(fields[0])
	if err != nil {
		return nil, err
	}
	return &ledger.TreasuryOutput{Amount: amount}, nil
}
