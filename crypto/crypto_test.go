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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

type testMsg string

func (m testMsg) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.HashID("TM"), []byte(m)
}

func TestSignVerify(t *testing.T) {
	partitiontest.PartitionTest(t)

	s, seed := NewSignatureSecrets()
	sig := s.Sign(testMsg("hello"))
	require.True(t, s.SignatureVerifier.Verify(testMsg("hello"), sig))
	require.False(t, s.SignatureVerifier.Verify(testMsg("hellp"), sig))

	// same seed, same key
	again := GenerateSignatureSecrets(seed)
	require.Equal(t, s.SignatureVerifier, again.SignatureVerifier)

	other, _ := NewSignatureSecrets()
	require.False(t, other.SignatureVerifier.Verify(testMsg("hello"), sig))
}

func TestVerifyRejectsSmallOrderKey(t *testing.T) {
	partitiontest.PartitionTest(t)

	var zero SignatureVerifier
	require.False(t, zero.Verify(testMsg("x"), BlankSignature))
	require.True(t, hasSmallOrder(fieldPoint(0xec)))
	require.False(t, isCanonicalPoint(fieldPoint(0xff)))
}

func TestBatchVerifier(t *testing.T) {
	partitiontest.PartitionTest(t)

	bv := MakeBatchVerifier()
	require.NoError(t, bv.Verify())

	var keys []*SignatureSecrets
	for i := 0; i < 4; i++ {
		s, _ := NewSignatureSecrets()
		keys = append(keys, s)
		bv.EnqueueSignature(s.SignatureVerifier, testMsg("m"), s.Sign(testMsg("m")))
	}
	require.Equal(t, 4, bv.GetNumberOfEnqueuedSignatures())
	require.NoError(t, bv.Verify())

	bad := MakeBatchVerifier()
	for i, s := range keys {
		sig := s.Sign(testMsg("m"))
		if i == 2 {
			sig[5]++
		}
		bad.EnqueueSignature(s.SignatureVerifier, testMsg("m"), sig)
	}
	failed, err := bad.VerifyWithFeedback()
	require.ErrorIs(t, err, ErrBatchHasFailedSigs)
	require.Equal(t, []bool{false, false, true, false}, failed)
}

func TestDigestString(t *testing.T) {
	partitiontest.PartitionTest(t)

	d := Hash([]byte("portal"))
	parsed, err := DigestFromString(d.String())
	require.NoError(t, err)
	require.Equal(t, d, parsed)
	require.False(t, d.IsZero())
	require.Equal(t, Hash(HashRep(testMsg("a"))), HashObj(testMsg("a")))
}
