// Package common contains the image-access plumbing shared by file system
// decoders: a read-only, absolute-offset view over a disk image stream.
package common

import (
	"fmt"
	"io"
	"os"

	"github.com/svtools/sysvfs"
)

// Image implements [sysvfs.ImageReader] over any seekable stream. Each read
// is a self-contained seek + read; the cursor position of the underlying
// stream between calls is irrelevant.
type Image struct {
	stream io.ReadSeeker
	size   int64
}

// OpenImage opens the disk image at `path` for random-access binary reads.
func OpenImage(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, sysvfs.ErrImageUnavailable.Wrap(err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, sysvfs.ErrImageUnavailable.Wrap(err)
	}
	return &Image{stream: file, size: info.Size()}, nil
}

// NewImage wraps an already-open stream of `size` bytes. The caller retains
// ownership of the stream unless it passes it to Close via the Image.
func NewImage(stream io.ReadSeeker, size int64) *Image {
	return &Image{stream: stream, size: size}
}

// Size returns the total size of the image in bytes.
func (image *Image) Size() int64 {
	return image.size
}

// ReadExact reads exactly `length` bytes starting at `offset`.
func (image *Image) ReadExact(offset int64, length int) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, sysvfs.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("offset and length must be non-negative, got %d and %d", offset, length))
	}

	// Check the range up front; a request past the end of the image must fail
	// before any bytes are handed back.
	if offset+int64(length) > image.size {
		return nil, sysvfs.ErrTruncatedImage.WithMessage(
			fmt.Sprintf(
				"%d bytes at offset %d extends past end of %d-byte image",
				length,
				offset,
				image.size))
	}

	if _, err := image.stream.Seek(offset, io.SeekStart); err != nil {
		return nil, sysvfs.ErrImageUnavailable.Wrap(err)
	}

	buffer := make([]byte, length)
	if _, err := io.ReadFull(image.stream, buffer); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, sysvfs.ErrTruncatedImage.Wrap(err)
		}
		return nil, sysvfs.ErrImageUnavailable.Wrap(err)
	}
	return buffer, nil
}

// Close releases the underlying stream if it is closeable. Images created
// with OpenImage own their file handle and must be closed.
func (image *Image) Close() error {
	if closer, ok := image.stream.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
