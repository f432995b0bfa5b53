package sysv_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svtools/sysvfs"
	"github.com/svtools/sysvfs/file_systems/sysv"
	st "github.com/svtools/sysvfs/testing"
)

func TestDecodeSuperblockType2(t *testing.T) {
	buffer := st.BuildImage(t, st.NewSuperblock(2), nil)

	superblock, err := sysv.DecodeSuperblock(st.NewImage(buffer))
	require.NoError(t, err)

	assert.EqualValues(t, 1024, superblock.BlockSize)
	assert.EqualValues(t, 512*22, superblock.InodeTableOffset)
	assert.EqualValues(t, 16, superblock.InodesPerBlock)
	assert.EqualValues(t, 4*1024/64, superblock.InodeListCapacity)

	assert.EqualValues(t, sysv.Magic, superblock.Magic)
	assert.EqualValues(t, 2, superblock.Type)
	assert.EqualValues(t, st.DefaultImageSize/512, superblock.VolumeBlocks)
	assert.EqualValues(t, 77, superblock.TotalFreeBlocks)
	assert.EqualValues(t, 42, superblock.TotalFreeInodes)
	assert.Equal(t, "root", superblock.VolumeLabel)
	assert.Equal(t, "pack01", superblock.PackLabel)
	assert.Equal(
		t,
		time.Date(2021, 1, 14, 8, 25, 36, 0, time.UTC),
		superblock.LastUpdatedAt)
}

func TestDecodeSuperblockType1(t *testing.T) {
	buffer := st.BuildImage(t, st.NewSuperblock(1), nil)

	superblock, err := sysv.DecodeSuperblock(st.NewImage(buffer))
	require.NoError(t, err)

	assert.EqualValues(t, 512, superblock.BlockSize)
	assert.EqualValues(t, 512*20, superblock.InodeTableOffset)
	assert.EqualValues(t, 8, superblock.InodesPerBlock)
}

func TestDecodeSuperblockUnknownTypeFallsBack(t *testing.T) {
	// Unknown type codes get the type 2 geometry. This is documented format
	// behavior, not an error.
	buffer := st.BuildImage(t, st.NewSuperblock(7), nil)

	superblock, err := sysv.DecodeSuperblock(st.NewImage(buffer))
	require.NoError(t, err)

	assert.EqualValues(t, 1024, superblock.BlockSize)
	assert.EqualValues(t, 512*22, superblock.InodeTableOffset)
}

func TestDecodeSuperblockBadMagic(t *testing.T) {
	raw := st.NewSuperblock(2)
	raw.Magic = 0xdeadbeef
	buffer := st.BuildImage(t, raw, nil)

	superblock, err := sysv.DecodeSuperblock(st.NewImage(buffer))
	assert.ErrorIs(t, err, sysvfs.ErrNotThisFilesystem)
	assert.Nil(t, superblock)
}

func TestDecodeSuperblockTruncatedImage(t *testing.T) {
	// The image ends in the middle of the superblock record.
	buffer := st.BuildImage(t, st.NewSuperblock(2), nil)
	short := buffer[:sysv.SuperblockOffset+100]

	superblock, err := sysv.DecodeSuperblock(st.NewImage(short))
	assert.ErrorIs(t, err, sysvfs.ErrTruncatedImage)
	assert.Nil(t, superblock)
}

func TestDecodeSuperblockArraysAreEndianCorrected(t *testing.T) {
	raw := st.NewSuperblock(2)
	raw.CachedFreeBlocks = 2
	raw.FreeBlockList[0] = 0x00010203
	raw.FreeBlockList[1] = 99
	raw.CachedFreeInodes = 1
	raw.FreeInodeList[0] = 0x0a0b
	raw.DeviceInfo[3] = 0x1234
	buffer := st.BuildImage(t, raw, nil)

	superblock, err := sysv.DecodeSuperblock(st.NewImage(buffer))
	require.NoError(t, err)

	assert.EqualValues(t, 0x00010203, superblock.FreeBlockList[0])
	assert.EqualValues(t, 99, superblock.FreeBlockList[1])
	assert.EqualValues(t, 0x0a0b, superblock.FreeInodeList[0])
	assert.EqualValues(t, 0x1234, superblock.DeviceInfo[3])
}
