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

import "github.com/blinklabs-io/gouroboros/cbor"

// serializeNativeTokens renders a native-token bag as a flat list of
// (id-bytes, amount) pairs for CBOR encoding, each amount written as the
// uint64 value of its big.Int.
func serializeNativeTokens(tokens []NativeToken) cbor.IndefLengthList {
	list := make(cbor.IndefLengthList, 0, len(tokens)*2)
	for _, t := range tokens {
		amount := uint64(0)
		if t.Amount != nil {
			amount = t.Amount.Uint64()
		}
		list = append(list, t.ID[:], amount)
	}
	return list
}

// serializeUnlockConditions renders the populated unlock conditions of a
// set in a fixed, kind-tagged order so that two structurally-equal sets
// always produce identical bytes.
func serializeUnlockConditions(s UnlockConditionSet) cbor.IndefLengthList {
	list := cbor.IndefLengthList{}
	if s.Address != nil {
		list = append(list, byte(UnlockConditionAddress), s.Address.Address)
	}
	if s.StorageDepositReturn != nil {
		list = append(
			list,
			byte(UnlockConditionStorageDepositReturn),
			s.StorageDepositReturn.ReturnAddress,
			s.StorageDepositReturn.Amount,
		)
	}
	if s.Timelock != nil {
		list = append(list, byte(UnlockConditionTimelock), s.Timelock.UnixTime)
	}
	if s.Expiration != nil {
		list = append(
			list,
			byte(UnlockConditionExpiration),
			s.Expiration.ReturnAddress,
			s.Expiration.UnixTime,
		)
	}
	if s.StateControllerAddress != nil {
		list = append(
			list,
			byte(UnlockConditionStateControllerAddress),
			s.StateControllerAddress.Address,
		)
	}
	if s.GovernorAddress != nil {
		list = append(
			list,
			byte(UnlockConditionGovernorAddress),
			s.GovernorAddress.Address,
		)
	}
	if s.ImmutableAliasAddress != nil {
		list = append(
			list,
			byte(UnlockConditionImmutableAliasAddress),
			s.ImmutableAliasAddress.Address,
		)
	}
	return list
}

func serializeFeatures(f FeatureSet) cbor.IndefLengthList {
	list := cbor.IndefLengthList{}
	if f.Sender != nil {
		list = append(list, "sender", *f.Sender)
	}
	if f.Metadata != nil {
		list = append(list, "metadata", f.Metadata)
	}
	if f.Tag != nil {
		list = append(list, "tag", f.Tag)
	}
	return list
}

func serializeImmutableFeatures(f ImmutableFeatureSet) cbor.IndefLengthList {
	list := cbor.IndefLengthList{}
	if f.Issuer != nil {
		list = append(list, "issuer", *f.Issuer)
	}
	return list
}

func (o *BasicOutput) Serialize() ([]byte, error) {
	c := cbor.NewConstructor(
		uint(OutputBasic),
		cbor.IndefLengthList{
			o.Amount,
			serializeNativeTokens(o.Tokens),
			serializeUnlockConditions(o.UnlockConditions),
			serializeFeatures(o.Features),
		},
	)
	return cbor.Encode(&c)
}

func (o *AliasOutput) Serialize() ([]byte, error) {
	c := cbor.NewConstructor(
		uint(OutputAlias),
		cbor.IndefLengthList{
			o.Amount,
			serializeNativeTokens(o.Tokens),
			o.AliasID[:],
			o.StateIndex,
			o.FoundryCounter,
			o.StateMetadata,
			serializeUnlockConditions(o.UnlockConditions),
			serializeFeatures(o.Features),
			serializeImmutableFeatures(o.ImmutableFeatures),
		},
	)
	return cbor.Encode(&c)
}

func (o *FoundryOutput) Serialize() ([]byte, error) {
	minted, melted, max := uint64(0), uint64(0), uint64(0)
	if o.TokenScheme.MintedTokens != nil {
		minted = o.TokenScheme.MintedTokens.Uint64()
	}
	if o.TokenScheme.MeltedTokens != nil {
		melted = o.TokenScheme.MeltedTokens.Uint64()
	}
	if o.TokenScheme.MaximumSupply != nil {
		max = o.TokenScheme.MaximumSupply.Uint64()
	}
	c := cbor.NewConstructor(
		uint(OutputFoundry),
		cbor.IndefLengthList{
			o.Amount,
			serializeNativeTokens(o.Tokens),
			o.SerialNumber,
			byte(o.TokenScheme.Kind),
			minted,
			melted,
			max,
			serializeUnlockConditions(o.UnlockConditions),
			serializeFeatures(o.Features),
		},
	)
	return cbor.Encode(&c)
}

func (o *NFTOutput) Serialize() ([]byte, error) {
	c := cbor.NewConstructor(
		uint(OutputNFT),
		cbor.IndefLengthList{
			o.Amount,
			serializeNativeTokens(o.Tokens),
			o.NFTID[:],
			serializeUnlockConditions(o.UnlockConditions),
			serializeFeatures(o.Features),
			serializeImmutableFeatures(o.ImmutableFeatures),
		},
	)
	return cbor.Encode(&c)
}

func (o *TreasuryOutput) Serialize() ([]byte, error) {
	c := cbor.NewConstructor(
		uint(OutputTreasury),
		cbor.IndefLengthList{o.Amount},
	)
	return cbor.Encode(&c)
}
