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

import (
	"sort"

	"github.com/blinklabs-io/gouroboros/cbor"
	"golang.org/x/crypto/blake2b"
)

// TaggedDataPayload is the only payload type an essence built by this
// library may carry, per spec.md Non-goals excluding milestones and
// nested transaction payloads.
type TaggedDataPayload struct {
	Tag  []byte
	Data []byte
}

// TransactionEssence is the signed body of a Transaction: the network it
// targets, its inputs (by reference) and a commitment to their contents,
// its outputs, and an optional tagged-data payload.
type TransactionEssence struct {
	NetworkID        uint64
	Inputs           []OutputID
	InputsCommitment [32]byte
	Outputs          Outputs
	Payload          *TaggedDataPayload
}

// SortInputs orders ids ascending by OutputID.Less, the canonical input
// order the Essence Builder requires so that two builders fed the same
// input set always produce byte-identical essences.
func SortInputs(ids []OutputID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

// ComputeInputsCommitment hashes the concatenated canonical serialization
// of the spent outputs, in the same order as the sorted input list, into a
// single Blake2b-256 digest. A mismatch here versus what the node
// computes indicates the builder used stale or reordered output data.
func ComputeInputsCommitment(spent []Output) ([32]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}, err
	}
	for _, o := range spent {
		data, err := o.Serialize()
		if err != nil {
			return [32]byte{}, err
		}
		if _, err := h.Write(data); err != nil {
			return [32]byte{}, err
		}
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// SortOutputs orders a built output list by its own serialized bytes, the
// canonical output order per spec.md §4.D.
func SortOutputs(outputs Outputs) error {
	type keyed struct {
		out Output
		key []byte
	}
	ks := make([]keyed, len(outputs))
	for i, o := range outputs {
		b, err := o.Serialize()
		if err != nil {
			return err
		}
		ks[i] = keyed{o, b}
	}
	sort.Slice(ks, func(i, j int) bool {
		a, b := ks[i].key, ks[j].key
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		for k := 0; k < n; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	for i := range ks {
		outputs[i] = ks[i].out
	}
	return nil
}

// Serialize renders the essence in the same Constructor-tagged CBOR shape
// as outputs, with inputs and outputs flattened to their canonical forms.
func (e *TransactionEssence) Serialize() ([]byte, error) {
	inputList := make(cbor.IndefLengthList, 0, len(e.Inputs))
	for _, id := range e.Inputs {
		inputList = append(inputList, id.Bytes())
	}
	outputList := make(cbor.IndefLengthList, 0, len(e.Outputs))
	for _, o := range e.Outputs {
		b, err := o.Serialize()
		if err != nil {
			return nil, err
		}
		outputList = append(outputList, b)
	}
	var payloadBytes []byte
	if e.Payload != nil {
		pc := cbor.NewConstructor(
			0,
			cbor.IndefLengthList{e.Payload.Tag, e.Payload.Data},
		)
		b, err := cbor.Encode(&pc)
		if err != nil {
			return nil, err
		}
		payloadBytes = b
	}
	c := cbor.NewConstructor(
		0,
		cbor.IndefLengthList{
			e.NetworkID,
			inputList,
			e.InputsCommitment[:],
			outputList,
			payloadBytes,
		},
	)
	return cbor.Encode(&c)
}

// Hash returns the Blake2b-256 digest of the essence's canonical
// serialization — the message every unlock in the finished Transaction
// must sign.
func (e *TransactionEssence) Hash() ([32]byte, error) {
	data, err := e.Serialize()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

// CheckSize serializes the essence and compares it against the protocol's
// maximum essence length, returning ErrEssenceTooLarge if it does not fit.
func (e *TransactionEssence) CheckSize(maxLen int) error {
	data, err := e.Serialize()
	if err != nil {
		return err
	}
	if len(data) > maxLen {
		return ErrEssenceTooLarge
	}
	return nil
}
