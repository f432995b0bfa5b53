package sysv

import "github.com/svtools/sysvfs"

// FileSystem ties an image to its decoded superblock for the duration of a
// read-only inspection session. The image is treated as exclusively owned and
// static while the session lasts; no consistency claims are made if it
// mutates mid-read.
type FileSystem struct {
	image sysvfs.ImageReader

	// Superblock is decoded once when the session opens and is immutable
	// thereafter.
	Superblock *Superblock
}

// Open decodes the superblock of the given image and returns an inspection
// session over it.
func Open(image sysvfs.ImageReader) (*FileSystem, error) {
	superblock, err := DecodeSuperblock(image)
	if err != nil {
		return nil, err
	}
	return &FileSystem{image: image, Superblock: superblock}, nil
}

// Inode decodes the inode with the given number using the session geometry.
func (fs *FileSystem) Inode(number Inumber) (*Inode, error) {
	return DecodeInode(fs.image, fs.Superblock.Geometry, number)
}

// RootInode decodes inode 1, the root directory.
func (fs *FileSystem) RootInode() (*Inode, error) {
	return fs.Inode(RootInumber)
}

// ReadRootDirectory enumerates the root directory's entries in on-disk order.
func (fs *FileSystem) ReadRootDirectory() ([]FileEntry, error) {
	root, err := fs.RootInode()
	if err != nil {
		return nil, err
	}
	return ReadDirectory(fs.image, fs.Superblock.Geometry, root)
}
