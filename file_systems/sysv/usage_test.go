package sysv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svtools/sysvfs/file_systems/sysv"
	st "github.com/svtools/sysvfs/testing"
)

func TestSurveyBlockUsage(t *testing.T) {
	raw := st.NewSuperblock(2)
	raw.CachedFreeBlocks = 4
	raw.FreeBlockList[0] = 20
	raw.FreeBlockList[1] = 21
	raw.FreeBlockList[2] = 22
	raw.FreeBlockList[3] = 21 // duplicate, counted once
	buffer := st.BuildImage(t, raw, nil)

	fs, err := sysv.Open(st.NewImage(buffer))
	require.NoError(t, err)

	dir := &sysv.Inode{
		Number:   sysv.RootInumber,
		FileType: sysv.FileTypeDirectory,
		RawInode: sysv.RawInode{Size: 2 * fs.Superblock.BlockSize},
	}
	sysv.EncodeBlockAddress(22, dir.AddressTable[0:3])
	sysv.EncodeBlockAddress(30, dir.AddressTable[3:6])

	usage := sysv.SurveyBlockUsage(fs.Superblock, dir)

	assert.Equal(t, fs.Superblock.VolumeBlocks, usage.TotalBlocks)
	assert.Equal(t, 3, usage.FreeListed)
	assert.Equal(t, 2, usage.Referenced)
	assert.Equal(t, []sysv.BlockAddress{22}, usage.Overlapping)

	assert.True(t, usage.IsFreeListed(20))
	assert.True(t, usage.IsFreeListed(22))
	assert.False(t, usage.IsFreeListed(30))
	assert.True(t, usage.IsReferenced(30))
	assert.False(t, usage.IsReferenced(20))
}

func TestSurveyBlockUsageSkipsOutOfRangeAddresses(t *testing.T) {
	raw := st.NewSuperblock(2)
	raw.CachedFreeBlocks = 3
	raw.FreeBlockList[0] = 0                    // block 0 is never counted
	raw.FreeBlockList[1] = raw.VolumeBlocks + 5 // past end of volume
	raw.FreeBlockList[2] = 9
	buffer := st.BuildImage(t, raw, nil)

	fs, err := sysv.Open(st.NewImage(buffer))
	require.NoError(t, err)

	dir := &sysv.Inode{
		Number:   sysv.RootInumber,
		FileType: sysv.FileTypeDirectory,
		RawInode: sysv.RawInode{Size: fs.Superblock.BlockSize},
	}
	sysv.EncodeBlockAddress(sysv.BlockAddress(raw.VolumeBlocks)+1, dir.AddressTable[0:3])

	usage := sysv.SurveyBlockUsage(fs.Superblock, dir)
	assert.Equal(t, 1, usage.FreeListed)
	assert.Equal(t, 0, usage.Referenced)
	assert.Empty(t, usage.Overlapping)

	// Out-of-range queries answer false instead of panicking.
	assert.False(t, usage.IsFreeListed(sysv.BlockAddress(raw.VolumeBlocks)+5))
	assert.False(t, usage.IsReferenced(sysv.BlockAddress(raw.VolumeBlocks)+1))
}
