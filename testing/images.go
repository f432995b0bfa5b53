// Package testing builds minimal in-memory SysV disk images for use as test
// fixtures. Import it as `st` to avoid clashing with the standard testing
// package.
package testing

import (
	"encoding/binary"
	"testing"

	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/svtools/sysvfs/file_systems/common"
	"github.com/svtools/sysvfs/file_systems/sysv"
)

// DefaultImageSize is large enough to hold the superblock, a type 1 or type 2
// inode table, and the root directory block at RootBlockAddress.
const DefaultImageSize = 64 * 1024

// RootBlockAddress is where generated images place the root directory's
// first content block. With 1024-byte blocks that puts the content at byte
// 0x2400 + 0x10*1024 = 25600, clear of the inode table.
const RootBlockAddress sysv.BlockAddress = 0x10

// FixtureEntry describes one root-directory slot in a generated image. An
// inode record with the given mode is written for every entry except the
// root's own number.
type FixtureEntry struct {
	Name    string
	Inumber sysv.Inumber
	Mode    uint16
}

// NewSuperblock returns a raw superblock with a valid magic, the given type
// code, and plausible bookkeeping values.
func NewSuperblock(typeCode uint32) sysv.RawSuperblock {
	raw := sysv.RawSuperblock{
		InodeListBlocks: 4,
		VolumeBlocks:    DefaultImageSize / 512,
		TotalFreeBlocks: 77,
		TotalFreeInodes: 42,
		LastUpdate:      0x60000000, // 2021-01-14 08:25:36 UTC
		State:           0x7c269d38,
		Magic:           sysv.Magic,
		Type:            typeCode,
	}
	copy(raw.VolumeName[:], "root")
	copy(raw.PackName[:], "pack01")
	return raw
}

// BuildImage serializes the superblock, a root directory inode, the directory
// entry records, and one inode per entry into a DefaultImageSize-byte image.
func BuildImage(t *testing.T, raw sysv.RawSuperblock, entries []FixtureEntry) []byte {
	buffer := make([]byte, DefaultImageSize)
	WriteRecord(t, buffer, sysv.SuperblockOffset, &raw)

	geometry := sysv.GeometryForType(raw.Type)

	rootInode := sysv.RawInode{
		Mode:         sysv.FileTypeDirectory<<sysv.FileTypeShift | 0o755,
		Nlinks:       2,
		Size:         uint32(len(entries) * sysv.DirentSize),
		AccessedTime: raw.LastUpdate,
		ModifiedTime: raw.LastUpdate,
		CreatedTime:  raw.LastUpdate,
	}
	sysv.EncodeBlockAddress(RootBlockAddress, rootInode.AddressTable[:sysv.AddressSize])
	WriteRecord(
		t,
		buffer,
		geometry.InodeTableOffset+int64(sysv.RootInumber)*sysv.InodeSize,
		&rootInode)

	blockOffset := int64(sysv.DirectoryRegionBase) +
		int64(RootBlockAddress)*int64(geometry.BlockSize)

	for i, entry := range entries {
		require.LessOrEqual(
			t, len(entry.Name), sysv.NameLength, "fixture entry name too long")

		dirent := sysv.RawDirent{Inumber: uint16(entry.Inumber)}
		copy(dirent.Name[:], entry.Name)
		WriteRecord(t, buffer, blockOffset+int64(i*sysv.DirentSize), &dirent)

		if entry.Inumber == sysv.RootInumber {
			continue
		}
		inode := sysv.RawInode{
			Mode:   entry.Mode,
			Nlinks: 1,
		}
		WriteRecord(
			t,
			buffer,
			geometry.InodeTableOffset+int64(entry.Inumber)*sysv.InodeSize,
			&inode)
	}
	return buffer
}

// WriteRecord serializes one on-disk record big-endian at the given offset.
func WriteRecord(t *testing.T, buffer []byte, offset int64, record interface{}) {
	writer := bytewriter.New(buffer[offset:])
	err := binary.Write(writer, binary.BigEndian, record)
	require.NoError(t, err, "serializing fixture record at offset %d", offset)
}

// NewImage wraps fixture bytes in an in-memory image reader.
func NewImage(buffer []byte) *common.Image {
	return common.NewImage(bytesextra.NewReadWriteSeeker(buffer), int64(len(buffer)))
}
