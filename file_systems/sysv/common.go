package sysv

import "encoding/binary"

// BlockAddress is a decoded 20-bit disk block address.
type BlockAddress uint32

// Inumber is an inode number in the file system's own numbering, which starts
// at 1 with the root directory.
type Inumber uint32

const (
	// SuperblockOffset is the fixed byte offset of the superblock record
	// within the image.
	SuperblockOffset = 0x2600

	// DirectoryRegionBase is the byte offset added to a scaled block address
	// to locate directory content. It is distinct from SuperblockOffset.
	DirectoryRegionBase = 0x2400

	// Magic identifies a SysV superblock, after endianness correction.
	Magic = 0xfd187e20

	SuperblockSize = 504
	InodeSize      = 64
	DirentSize     = 16
	NameLength     = 14

	// AddressSize is the width of one packed disk address in an inode's
	// address table; AddressTableSize is the whole table.
	AddressSize      = 3
	AddressTableSize = 40

	// MaxDirectoryBlocks is a policy limit, not a property of the format:
	// directories spanning more blocks than this are rejected with
	// ErrUnsupportedLayout rather than truncated.
	MaxDirectoryBlocks = 10

	// RootInumber is the inode number of the root directory.
	RootInumber Inumber = 1
)

// Mode word layout: the file-type nibble occupies bits 12-15, permission and
// set-id bits the low twelve.
const (
	FileTypeMask  = 0xf000
	FileTypeShift = 12
	PermMask      = 0x0fff

	// FileTypeDirectory is the type nibble marking a directory inode.
	FileTypeDirectory = 0x8
)

// DecodeUint16 and DecodeUint32 convert big-endian on-disk scalars to host
// integers; EncodeUint16 and EncodeUint32 are their inverses. Whole records
// go through binary.Read/binary.Write with binary.BigEndian instead, which
// applies the same conversion to every field, arrays included.
func DecodeUint16(data []byte) uint16 {
	return binary.BigEndian.Uint16(data)
}

func DecodeUint32(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}

func EncodeUint16(value uint16, data []byte) {
	binary.BigEndian.PutUint16(data, value)
}

func EncodeUint32(value uint32, data []byte) {
	binary.BigEndian.PutUint32(data, value)
}

// DecodeBlockAddress unpacks one 3-byte disk address from an inode's address
// table. The packing is not a conventional 24-bit big-endian integer: the
// first byte lands at bit 12 and overlaps the second byte's high nibble,
// yielding a 20-bit address.
func DecodeBlockAddress(data []byte) BlockAddress {
	return BlockAddress(data[0])<<12 | BlockAddress(data[1])<<8 | BlockAddress(data[2])
}

// EncodeBlockAddress packs a 20-bit block address into 3 bytes such that
// DecodeBlockAddress reproduces it.
func EncodeBlockAddress(address BlockAddress, data []byte) {
	data[0] = byte(address >> 12)
	data[1] = byte((address >> 8) & 0x0f)
	data[2] = byte(address)
}
