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

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/test/partitiontest"
)

func TestCyclicWrite(t *testing.T) {
	partitiontest.PartitionTest(t)
	t.Parallel()

	tmpDir := t.TempDir()
	liveFileName := filepath.Join(tmpDir, "live.test")
	archiveFileName := filepath.Join(tmpDir, "archive.test")

	space := 1024
	cyclicWriter := MakeCyclicFileWriter(liveFileName, archiveFileName, uint64(space))
	defer cyclicWriter.Close()

	firstWrite := make([]byte, space)
	for i := range firstWrite {
		firstWrite[i] = 'A'
	}
	n, err := cyclicWriter.Write(firstWrite)
	require.NoError(t, err)
	require.Equal(t, len(firstWrite), n)

	secondWrite := []byte{'B'}
	n, err = cyclicWriter.Write(secondWrite)
	require.NoError(t, err)
	require.Equal(t, len(secondWrite), n)

	liveData, err := os.ReadFile(liveFileName)
	require.NoError(t, err)
	require.Equal(t, []byte{'B'}, liveData)

	oldData, err := os.ReadFile(archiveFileName)
	require.NoError(t, err)
	require.Equal(t, firstWrite, oldData)
}

func TestCyclicWriteTooLong(t *testing.T) {
	partitiontest.PartitionTest(t)
	t.Parallel()

	tmpDir := t.TempDir()
	cyclicWriter := MakeCyclicFileWriter(filepath.Join(tmpDir, "live"), filepath.Join(tmpDir, "archive"), 4)
	defer cyclicWriter.Close()

	_, err := cyclicWriter.Write([]byte("12345"))
	require.Error(t, err)
}

func TestCyclicWriteResumesSize(t *testing.T) {
	partitiontest.PartitionTest(t)
	t.Parallel()

	tmpDir := t.TempDir()
	live := filepath.Join(tmpDir, "live")
	archive := filepath.Join(tmpDir, "archive")
	require.NoError(t, os.WriteFile(live, []byte("xyz"), 0644))

	cyclicWriter := MakeCyclicFileWriter(live, archive, 4)
	_, err := cyclicWriter.Write([]byte("ab"))
	require.NoError(t, err)
	require.NoError(t, cyclicWriter.Close())

	archived, err := os.ReadFile(archive)
	require.NoError(t, err)
	require.Equal(t, []byte("xyz"), archived)
}
