package sysv

import (
	"github.com/boljen/go-bitmap"
)

// BlockUsage cross-references the superblock's cached free-block list with
// the blocks a directory inode addresses. A block that shows up on both sides
// means the free list and the directory disagree about who owns it, which is
// a cheap corruption signal on a volume that should be quiescent.
type BlockUsage struct {
	// TotalBlocks is the volume size the superblock claims.
	TotalBlocks uint32

	// FreeListed and Referenced count the distinct in-range blocks found in
	// the cached free list and the directory's address table respectively.
	FreeListed int
	Referenced int

	// Overlapping lists blocks that are both free-listed and referenced by
	// the directory, in the order the directory references them. A healthy
	// volume has none.
	Overlapping []BlockAddress

	freeMap       bitmap.Bitmap
	referencedMap bitmap.Bitmap
}

// IsFreeListed reports whether the cached free list contains the address.
func (usage *BlockUsage) IsFreeListed(address BlockAddress) bool {
	if uint32(address) >= usage.TotalBlocks {
		return false
	}
	return usage.freeMap.Get(int(address))
}

// IsReferenced reports whether the surveyed directory addresses the block.
func (usage *BlockUsage) IsReferenced(address BlockAddress) bool {
	if uint32(address) >= usage.TotalBlocks {
		return false
	}
	return usage.referencedMap.Get(int(address))
}

// SurveyBlockUsage builds the usage maps for a decoded superblock and one
// directory inode. Block 0 and addresses outside the volume are skipped, not
// reported; this is a survey, not a validator.
func SurveyBlockUsage(superblock *Superblock, dir *Inode) BlockUsage {
	total := superblock.VolumeBlocks
	usage := BlockUsage{
		TotalBlocks:   total,
		freeMap:       bitmap.New(int(total)),
		referencedMap: bitmap.New(int(total)),
	}

	cached := int(superblock.CachedFreeBlocks)
	if cached > len(superblock.FreeBlockList) {
		cached = len(superblock.FreeBlockList)
	}
	for _, address := range superblock.FreeBlockList[:cached] {
		if address == 0 || address >= total {
			continue
		}
		if !usage.freeMap.Get(int(address)) {
			usage.FreeListed++
		}
		usage.freeMap.Set(int(address), true)
	}

	blockSize := int64(superblock.BlockSize)
	blockCount := (int64(dir.Size) + blockSize - 1) / blockSize
	if blockCount > AddressTableSize/AddressSize {
		blockCount = AddressTableSize / AddressSize
	}
	for index := 0; index < int(blockCount); index++ {
		address := dir.BlockAddress(index)
		if address == 0 || uint32(address) >= total {
			continue
		}
		if usage.referencedMap.Get(int(address)) {
			continue
		}
		usage.referencedMap.Set(int(address), true)
		usage.Referenced++
		if usage.freeMap.Get(int(address)) {
			usage.Overlapping = append(usage.Overlapping, address)
		}
	}
	return usage
}
