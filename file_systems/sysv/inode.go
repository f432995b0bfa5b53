package sysv

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/svtools/sysvfs"
)

// RawInode is the fixed 64-byte on-disk layout of an inode. The address table
// is kept as raw bytes; it is consumed at 3-byte granularity by
// DecodeBlockAddress, not as a scalar.
type RawInode struct {
	Mode         uint16
	Nlinks       uint16
	UID          uint16
	GID          uint16
	Size         uint32
	AddressTable [AddressTableSize]byte
	AccessedTime uint32
	ModifiedTime uint32
	CreatedTime  uint32
}

// Inode is a decoded inode record with its mode word split into the file-type
// nibble and permission bits.
type Inode struct {
	RawInode
	Number Inumber

	FileType    uint8
	Permissions uint16

	LastAccessedAt time.Time
	LastModifiedAt time.Time
	CreatedAt      time.Time
}

// IsDir reports whether the inode's type nibble marks a directory.
func (inode *Inode) IsDir() bool {
	return inode.FileType == FileTypeDirectory
}

// BlockAddress decodes the index-th packed disk address from the inode's
// address table. The table holds AddressTableSize/AddressSize addresses;
// the index is not range-checked.
func (inode *Inode) BlockAddress(index int) BlockAddress {
	return DecodeBlockAddress(inode.AddressTable[index*AddressSize:])
}

// DecodeInode reads the inode record for the given number. Numbering is the
// file system's own: the root directory is inode 1. Inode 0 and out-of-range
// numbers are a caller precondition and are not validated here.
func DecodeInode(image sysvfs.ImageReader, geometry Geometry, number Inumber) (*Inode, error) {
	offset := geometry.InodeTableOffset + int64(number)*InodeSize
	recordBytes, err := image.ReadExact(offset, InodeSize)
	if err != nil {
		return nil, err
	}

	raw := RawInode{}
	if err := binary.Read(bytes.NewReader(recordBytes), binary.BigEndian, &raw); err != nil {
		return nil, sysvfs.ErrTruncatedImage.Wrap(err)
	}

	return &Inode{
		RawInode:       raw,
		Number:         number,
		FileType:       uint8((raw.Mode & FileTypeMask) >> FileTypeShift),
		Permissions:    raw.Mode & PermMask,
		LastAccessedAt: time.Unix(int64(raw.AccessedTime), 0).UTC(),
		LastModifiedAt: time.Unix(int64(raw.ModifiedTime), 0).UTC(),
		CreatedAt:      time.Unix(int64(raw.CreatedTime), 0).UTC(),
	}, nil
}
