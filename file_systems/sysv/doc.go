/*
Package sysv decodes the metadata of a legacy System V file system from a raw
disk or partition image: the superblock, inodes looked up by number, and the
root directory's entries.

This is a forensic reader, not a mountable driver. It performs no writes, no
block allocation, and no path traversal below the root directory. The layout
constants were reverse-engineered from AT&T 3B2 "init" partition images; the
two recognized type codes select 512- or 1024-byte blocks and the matching
inode-table offset, and any other code falls back to the 1024-byte geometry.

All multi-byte on-disk integers are big-endian. Disk addresses inside an
inode's address table use a packed 3-byte encoding that is not a plain 24-bit
big-endian value; see DecodeBlockAddress.
*/
package sysv
