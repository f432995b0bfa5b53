// Package sysvfs holds the pieces shared by every decoder in this module: the
// error taxonomy and the capability decoders need from a disk image.
package sysvfs

// ImageReader is the single capability the on-disk decoders require: an
// absolute-offset, exact-length read against a raw disk or partition image.
// Every call is independently positioned; implementations keep no cursor
// state between calls and never write.
type ImageReader interface {
	// ReadExact reads exactly `length` bytes starting at `offset`. It fails
	// with ErrTruncatedImage when the requested range extends past the end of
	// the image, and with ErrImageUnavailable when the backing resource can't
	// be read at all. There are no partial results: on error the returned
	// slice is nil.
	ReadExact(offset int64, length int) ([]byte, error)

	// Size returns the total size of the image, in bytes.
	Size() int64
}
