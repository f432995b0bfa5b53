package sysvfs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ImageError is the error type every decoder in this module returns. All four
// failure kinds are structural properties of the input image, so there is no
// retry machinery; errors only accumulate context on their way up to the
// caller.
type ImageError interface {
	error
	WithMessage(message string) ImageError
	Wrap(err error) ImageError
}

type baseImageError string

const rootError = baseImageError("")

var ErrImageUnavailable = rootError.WithMessage("Image cannot be opened or read")
var ErrTruncatedImage = rootError.WithMessage("Read extends past end of image")
var ErrNotThisFilesystem = rootError.WithMessage("Not a SysV filesystem")
var ErrUnsupportedLayout = rootError.WithMessage("Unsupported on-disk layout")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e baseImageError) Error() string {
	return string(e)
}

func (e baseImageError) WithMessage(message string) ImageError {
	return customImageError{
		message:       message,
		originalError: e,
	}
}

func (e baseImageError) Wrap(err error) ImageError {
	return customImageError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customImageError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a
// string describing the error.
func (e customImageError) Error() string {
	return e.message
}

func (e customImageError) WithMessage(message string) ImageError {
	return customImageError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customImageError) Wrap(err error) ImageError {
	return customImageError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customImageError) Unwrap() error {
	return e.originalError
}
