// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-gifportal
//
// go-gifportal is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-gifportal is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-gifportal.  If not, see <https://www.gnu.org/licenses/>.

package crypto

import (
	"bytes"
	"errors"

	"github.com/hdevalence/ed25519consensus"
)

const minBatchVerifierAlloc = 16

// Batch verifications errors
var (
	ErrBatchHasFailedSigs = errors.New("at least one signature didn't pass verification")
)

// ed25519ConsensusVerifySingle performs single signature verification using ed25519consensus,
// with additional checks to reject non-canonical encodings and small-order public keys.
func ed25519ConsensusVerifySingle(publicKey [32]byte, message []byte, signature [64]byte) bool {
	if !isCanonicalPoint(publicKey) || !isCanonicalPoint([32]byte(signature[:32])) || hasSmallOrder(publicKey) {
		return false
	}

	return ed25519consensus.Verify(publicKey[:], message, signature[:])
}

type batchEntry struct {
	msgHashRep   []byte
	publicKey    SignatureVerifier
	signature    Signature
	failedChecks bool
}

// BatchVerifier enqueues signatures to be validated in batch.
type BatchVerifier struct {
	entries      []batchEntry
	failedChecks bool
	bv           ed25519consensus.BatchVerifier
}

// MakeBatchVerifierWithHint creates a BatchVerifier instance. This function pre-allocates
// amount of free space to enqueue signatures without expanding
func MakeBatchVerifierWithHint(hint int) *BatchVerifier {
	if hint < minBatchVerifierAlloc {
		hint = minBatchVerifierAlloc
	}
	return &BatchVerifier{
		entries: make([]batchEntry, 0, hint),
		bv:      ed25519consensus.NewPreallocatedBatchVerifier(hint),
	}
}

// MakeBatchVerifier creates a BatchVerifier instance.
func MakeBatchVerifier() *BatchVerifier {
	return MakeBatchVerifierWithHint(minBatchVerifierAlloc)
}

// EnqueueSignature enqueues a signature to be verified
func (b *BatchVerifier) EnqueueSignature(sigVerifier SignatureVerifier, message Hashable, sig Signature) {
	msgHashRep := HashRep(message)
	failedChecks := !isCanonicalPoint(sigVerifier) || !isCanonicalPoint([32]byte(sig[:32])) || hasSmallOrder(sigVerifier)

	b.entries = append(b.entries, batchEntry{
		msgHashRep:   msgHashRep,
		publicKey:    sigVerifier,
		signature:    sig,
		failedChecks: failedChecks,
	})

	if failedChecks {
		b.failedChecks = true
	} else {
		b.bv.Add(sigVerifier[:], msgHashRep, sig[:])
	}
}

// GetNumberOfEnqueuedSignatures returns the number of signatures currently enqueued into the BatchVerifier
func (b *BatchVerifier) GetNumberOfEnqueuedSignatures() int {
	return len(b.entries)
}

// Verify verifies that all the signatures are valid. in that case nil is returned
func (b *BatchVerifier) Verify() error {
	if len(b.entries) == 0 {
		return nil
	}
	if b.failedChecks || !b.bv.Verify() {
		return ErrBatchHasFailedSigs
	}
	return nil
}

// VerifyWithFeedback verifies that all the signatures are valid.
// if all the signatures are valid, nil is returned
// if some signatures are invalid, true will be set in failed corresponding to their index
func (b *BatchVerifier) VerifyWithFeedback() (failed []bool, err error) {
	if len(b.entries) == 0 {
		return nil, nil
	}
	if !b.failedChecks && b.bv.Verify() {
		return nil, nil
	}

	failed = make([]bool, len(b.entries))
	for i := range b.entries {
		if b.entries[i].failedChecks {
			failed[i] = true
		} else {
			failed[i] = !ed25519ConsensusVerifySingle(b.entries[i].publicKey, b.entries[i].msgHashRep, b.entries[i].signature)
		}
	}
	return failed, ErrBatchHasFailedSigs
}

// isCanonicalY is the succeed-fast check from "Taming the many EdDSAs".
func isCanonicalY(p [32]byte) bool {
	if p[0] < 237 {
		return true
	}
	for i := 1; i < 31; i++ {
		if p[i] != 255 {
			return true
		}
	}
	return (p[31] | 128) != 255
}

// isCanonicalPoint is a variable-time check that returns true if the
// 32-byte ed25519 point encoding is canonical.
func isCanonicalPoint(p [32]byte) bool {
	if !isCanonicalY(p) {
		return false
	}

	// (-0, 1) and (-0, 2^255-20) carry a non-canonical sign bit that the
	// y-coordinate check does not catch.
	negZeroOne := [32]byte{0x01}
	negZeroOne[31] = 0x80
	if p == negZeroOne {
		return false
	}
	negZeroMax := [32]byte{0xec}
	for i := 1; i < 32; i++ {
		negZeroMax[i] = 0xff
	}
	return p != negZeroMax
}

// small order points from libsodium ge25519_has_small_order, sign bit cleared
var smallOrderPoints = [][32]byte{
	{},
	{0x01},
	{
		0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4,
		0x89, 0xf2, 0xef, 0x98, 0xf0, 0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6,
		0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x05},
	{
		0xc7, 0x17, 0x6a, 0x70, 0x3d, 0x4d, 0xd8, 0x4f, 0xba, 0x3c, 0x0b,
		0x76, 0x0d, 0x10, 0x67, 0x0f, 0x2a, 0x20, 0x53, 0xfa, 0x2c, 0x39,
		0xcc, 0xc6, 0x4e, 0xc7, 0xfd, 0x77, 0x92, 0xac, 0x03, 0x7a},
	fieldPoint(0xec),
	fieldPoint(0xed),
	fieldPoint(0xee),
}

// fieldPoint returns the encoding of p-1, p or p+1 depending on the low byte.
func fieldPoint(low byte) (p [32]byte) {
	p[0] = low
	for i := 1; i < 31; i++ {
		p[i] = 0xff
	}
	p[31] = 0x7f
	return
}

// hasSmallOrder checks if a point is in the small-order blacklist.
// This version is variable-time.
func hasSmallOrder(p [32]byte) bool {
	for _, point := range smallOrderPoints {
		if !bytes.Equal(p[:31], point[:31]) {
			continue
		}
		if (p[31] & 0x7f) == point[31] {
			return true
		}
	}
	return false
}
