package sysv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/svtools/sysvfs"
)

// RawSuperblock is the on-disk layout of the superblock record, found at
// SuperblockOffset. Every multi-byte field is stored big-endian.
type RawSuperblock struct {
	// InodeListBlocks is the size of the inode list, in blocks.
	InodeListBlocks uint16
	// VolumeBlocks is the size of the entire volume, in blocks.
	VolumeBlocks uint32
	// CachedFreeBlocks is the number of valid addresses in FreeBlockList.
	CachedFreeBlocks uint16
	FreeBlockList    [50]uint32
	// CachedFreeInodes is the number of valid entries in FreeInodeList.
	CachedFreeInodes uint16
	FreeInodeList    [100]uint16
	FreeListLock     uint8
	InodeListLock    uint8
	Modified         uint8
	MountedReadOnly  uint8
	// LastUpdate is the time of the last superblock update, in Unix epoch
	// seconds.
	LastUpdate      uint32
	DeviceInfo      [4]uint16
	TotalFreeBlocks uint32
	TotalFreeInodes uint16
	VolumeName      [6]byte
	PackName        [6]byte
	Fill            [12]uint32
	State           uint32
	Magic           uint32
	Type            uint32
}

// Geometry is the block size and inode-table placement derived from the
// superblock's type code. It is immutable once decoded and is passed into
// every inode and directory read.
type Geometry struct {
	BlockSize        uint32
	InodeTableOffset int64

	// InodesPerBlock and InodeListCapacity are informational only; nothing
	// bounds-checks against them.
	InodesPerBlock    uint32
	InodeListCapacity uint32
}

// Superblock is the decoded superblock plus everything derived from it.
type Superblock struct {
	RawSuperblock
	Geometry

	// VolumeLabel and PackLabel are VolumeName/PackName trimmed at the first
	// NUL byte.
	VolumeLabel string
	PackLabel   string

	// LastUpdatedAt is LastUpdate as a calendar timestamp, for reporting.
	LastUpdatedAt time.Time
}

// DecodeSuperblock reads the superblock record from its well-known offset,
// validates the magic number and derives the volume geometry. It is read once
// per inspection session and never mutated afterwards.
func DecodeSuperblock(image sysvfs.ImageReader) (*Superblock, error) {
	recordBytes, err := image.ReadExact(SuperblockOffset, SuperblockSize)
	if err != nil {
		return nil, err
	}

	// binary.Read with big-endian byte order corrects every scalar field in
	// one pass, including each element of the free-block, free-inode, and
	// device-info arrays. The record is never left partially converted.
	raw := RawSuperblock{}
	if err := binary.Read(bytes.NewReader(recordBytes), binary.BigEndian, &raw); err != nil {
		return nil, sysvfs.ErrTruncatedImage.Wrap(err)
	}

	if raw.Magic != Magic {
		return nil, sysvfs.ErrNotThisFilesystem.WithMessage(
			fmt.Sprintf(
				"bad superblock magic: expected 0x%08x, got 0x%08x",
				uint32(Magic),
				raw.Magic))
	}

	geometry := GeometryForType(raw.Type)
	geometry.InodesPerBlock = geometry.BlockSize / InodeSize
	geometry.InodeListCapacity = uint32(raw.InodeListBlocks) * geometry.BlockSize / InodeSize

	return &Superblock{
		RawSuperblock: raw,
		Geometry:      geometry,
		VolumeLabel:   trimAtNul(raw.VolumeName[:]),
		PackLabel:     trimAtNul(raw.PackName[:]),
		LastUpdatedAt: time.Unix(int64(raw.LastUpdate), 0).UTC(),
	}, nil
}

// GeometryForType maps a superblock type code to the volume geometry. Type 1
// volumes use 512-byte blocks, type 2 volumes 1024-byte blocks. Any other
// code falls back to the type 2 geometry; the format's own tooling treats
// unknown codes as the later variant rather than an error, so we do too.
func GeometryForType(typeCode uint32) Geometry {
	switch typeCode {
	case 1:
		return Geometry{BlockSize: 512, InodeTableOffset: 512 * 20}
	case 2:
		return Geometry{BlockSize: 1024, InodeTableOffset: 512 * 22}
	default:
		return Geometry{BlockSize: 1024, InodeTableOffset: 512 * 22}
	}
}

// trimAtNul interprets a fixed-width on-disk name field, which is NUL-padded
// but not necessarily NUL-terminated when the name fills the field.
func trimAtNul(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data)
}
