package sysv

import (
	"fmt"

	"github.com/svtools/sysvfs"
)

// RawDirent is the 16-byte on-disk directory entry record: a big-endian inode
// number followed by a fixed-width, NUL-padded name.
type RawDirent struct {
	Inumber uint16
	Name    [NameLength]byte
}

// FileEntry is one decoded, classified directory slot. It is an independent
// value owned by the caller; it keeps no reference back to the decoder or to
// its parent directory.
type FileEntry struct {
	Name        string
	Inumber     Inumber
	FileType    uint8
	Permissions uint16
	IsDir       bool
	Inode       *Inode
}

// ReadDirectory enumerates the entries of a directory inode in on-disk slot
// order, block by block. Each entry's inode is decoded and classified before
// the entry is emitted, so a failed inode read fails the whole walk with no
// partial results.
func ReadDirectory(image sysvfs.ImageReader, geometry Geometry, dir *Inode) ([]FileEntry, error) {
	blockSize := int64(geometry.BlockSize)
	blockCount := (int64(dir.Size) + blockSize - 1) / blockSize
	entryCount := int(dir.Size) / DirentSize
	entriesPerBlock := int(geometry.BlockSize) / DirentSize

	if blockCount > MaxDirectoryBlocks {
		return nil, sysvfs.ErrUnsupportedLayout.WithMessage(
			fmt.Sprintf(
				"directory inode %d spans %d blocks; at most %d are supported",
				dir.Number,
				blockCount,
				MaxDirectoryBlocks))
	}

	entries := make([]FileEntry, 0, entryCount)
	for blockIndex := 0; blockIndex < int(blockCount); blockIndex++ {
		// One 3-byte address slot per logical block: address index equals
		// block index.
		address := dir.BlockAddress(blockIndex)
		blockOffset := int64(DirectoryRegionBase) + int64(address)*blockSize

		// The final on-disk block may be only partially populated.
		entriesThisBlock := entriesPerBlock
		if blockIndex == int(blockCount)-1 {
			entriesThisBlock = entryCount % entriesPerBlock
		}

		for slot := 0; slot < entriesThisBlock; slot++ {
			entry, err := decodeDirent(image, geometry, blockOffset+int64(slot*DirentSize))
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// decodeDirent reads the 16-byte record at `offset`, resolves its inode, and
// classifies the result.
func decodeDirent(image sysvfs.ImageReader, geometry Geometry, offset int64) (FileEntry, error) {
	recordBytes, err := image.ReadExact(offset, DirentSize)
	if err != nil {
		return FileEntry{}, err
	}

	number := Inumber(DecodeUint16(recordBytes[:2]))
	name := trimAtNul(recordBytes[2:DirentSize])

	inode, err := DecodeInode(image, geometry, number)
	if err != nil {
		return FileEntry{}, err
	}

	return FileEntry{
		Name:        name,
		Inumber:     number,
		FileType:    inode.FileType,
		Permissions: inode.Permissions,
		IsDir:       inode.IsDir(),
		Inode:       inode,
	}, nil
}
