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
	"errors"
	"fmt"
	"math/big"
)

// Sentinel base errors. Concrete payload-carrying errors below wrap one of
// these so callers can dispatch with errors.Is against the taxonomy
// described in spec.md §7, rather than against concrete types.
var (
	ErrShape            = errors.New("shape error")
	ErrRequirement      = errors.New("requirement error")
	ErrConsistency      = errors.New("consistency error")
	ErrSecretBackend    = errors.New("secret backend error")
	ErrSemantic         = errors.New("semantic error")
	ErrNoInputs         = fmt.Errorf("%w: no inputs found", ErrRequirement)
	ErrNoAvailableInputs = fmt.Errorf("%w: no available inputs", ErrRequirement)
)

// ShapeError wraps malformed-input failures validated at the boundary:
// bad bech32, bad hex, invalid mnemonic, out-of-range numeric values.
type ShapeError struct{ msg string }

func NewShapeError(format string, args ...any) *ShapeError {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}

func (e *ShapeError) Error() string { return e.msg }
func (e *ShapeError) Unwrap() error { return ErrShape }

// InsufficientAmountError reports that available input value fell short of
// the amount requirement.
type InsufficientAmountError struct{ Found, Required uint64 }

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf(
		"insufficient amount: found %d, required %d", e.Found, e.Required,
	)
}
func (e *InsufficientAmountError) Unwrap() error { return ErrRequirement }

// InsufficientNativeTokenAmountError is the native-token analogue of
// InsufficientAmountError.
type InsufficientNativeTokenAmountError struct {
	Token           NativeTokenID
	Found, Required *big.Int
}

func (e *InsufficientNativeTokenAmountError) Error() string {
	return fmt.Sprintf(
		"insufficient native token amount for %s: found %s, required %s",
		e.Token, e.Found, e.Required,
	)
}
func (e *InsufficientNativeTokenAmountError) Unwrap() error { return ErrRequirement }

// MissingInputError reports that a required chain-object or keyed input
// could not be located among available inputs.
type MissingInputError struct{ Descriptor string }

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: %s", e.Descriptor)
}
func (e *MissingInputError) Unwrap() error { return ErrRequirement }

// MissingInputWithEd25519AddressError reports a Sender/Issuer requirement
// for an Ed25519 address the caller owns no basic outputs for.
type MissingInputWithEd25519AddressError struct{ Address Address }

func (e *MissingInputWithEd25519AddressError) Error() string {
	return fmt.Sprintf(
		"missing input with ed25519 address %x", e.Address.Payload,
	)
}
func (e *MissingInputWithEd25519AddressError) Unwrap() error { return ErrRequirement }

// InsufficientStorageDepositAmountError reports that a remainder output's
// amount fell short of its own storage-deposit floor.
type InsufficientStorageDepositAmountError struct{ Amount, Required uint64 }

func (e *InsufficientStorageDepositAmountError) Error() string {
	return fmt.Sprintf(
		"insufficient storage deposit amount: have %d, need %d",
		e.Amount, e.Required,
	)
}
func (e *InsufficientStorageDepositAmountError) Unwrap() error { return ErrRequirement }

// ErrNoBalanceForNativeTokenRemainder reports leftover native tokens with no
// amount left to fund a storage-viable remainder output.
var ErrNoBalanceForNativeTokenRemainder = fmt.Errorf(
	"%w: no balance for native token remainder", ErrRequirement,
)

// UnfulfillableRequirementError wraps a Requirement (see package selection)
// that the engine determined it can never satisfy, e.g. a state transition
// requested of an alias that was only supplied as a governance input.
type UnfulfillableRequirementError struct{ Kind string }

func (e *UnfulfillableRequirementError) Error() string {
	return fmt.Sprintf("unfulfillable requirement: %s", e.Kind)
}
func (e *UnfulfillableRequirementError) Unwrap() error { return ErrConsistency }

// NativeTokenBurnMismatchError reports that a destroyed foundry's
// circulating supply does not match the caller's burn hint for that
// foundry's native token, per spec.md's foundry melt/destroy accounting
// decision: a destroy must account for the full remaining supply, never
// a silent partial burn.
type NativeTokenBurnMismatchError struct {
	Foundry     FoundryID
	Circulating *big.Int
	Hinted      *big.Int
}

func (e *NativeTokenBurnMismatchError) Error() string {
	return fmt.Sprintf(
		"foundry %s destroyed with circulating supply %s but burn hint %s",
		e.Foundry, e.Circulating, e.Hinted,
	)
}
func (e *NativeTokenBurnMismatchError) Unwrap() error { return ErrConsistency }

// ConsolidationRequiredError reports that satisfying the request would need
// more than the maximum 128 inputs.
type ConsolidationRequiredError struct{ Count int }

func (e *ConsolidationRequiredError) Error() string {
	return fmt.Sprintf("consolidation required: %d inputs needed", e.Count)
}
func (e *ConsolidationRequiredError) Unwrap() error { return ErrRequirement }

// ErrInvalidOutputCount reports that the finished output list exceeds 128
// entries.
var ErrInvalidOutputCount = fmt.Errorf("%w: invalid output count (>128)", ErrRequirement)

// ErrEssenceTooLarge reports that a built essence exceeded the protocol's
// maximum serialized length.
var ErrEssenceTooLarge = fmt.Errorf("%w: essence too large", ErrShape)

// SecretBackendError wraps failures originating in a SecretManager backend:
// a locked device, a denied signing request, a cleared key, an essence too
// large for a device's buffer, or a backend/derivation-chain mismatch.
type SecretBackendError struct{ Reason string }

func NewSecretBackendError(format string, args ...any) *SecretBackendError {
	return &SecretBackendError{Reason: fmt.Sprintf(format, args...)}
}

func (e *SecretBackendError) Error() string {
	return fmt.Sprintf("secret backend error: %s", e.Reason)
}
func (e *SecretBackendError) Unwrap() error { return ErrSecretBackend }

// ErrKeyCleared reports that the enclave backend's key material has been
// cleared from memory and the enclave is locked.
var ErrKeyCleared = NewSecretBackendError("key cleared")

// ConflictReasonError wraps a ledger semantic-validator rejection, surfaced
// verbatim to the caller per spec.md §7.
type ConflictReasonError struct{ Reason string }

func (e *ConflictReasonError) Error() string {
	return fmt.Sprintf("semantic validation failed: %s", e.Reason)
}
func (e *ConflictReasonError) Unwrap() error { return ErrSemantic }
