package linkstore

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the linkstore package. Use errors.Is to test
// for a particular kind and errors.As to unwrap the wrapped detail where one
// is documented below.
var (
	// ErrObjectParse indicates the object-format parser rejected the input.
	// The returned error wraps ErrObjectParse and carries the underlying
	// parser's detail as text in its message.
	ErrObjectParse = errors.New("linkstore: object parse error")

	// ErrUnrecognised indicates no known object format matched the input.
	ErrUnrecognised = errors.New("linkstore: unrecognised binary format")

	// ErrNoLinkstore indicates a recognised format with no .lnkstre section.
	ErrNoLinkstore = errors.New("linkstore: binary does not contain a linkstore section")

	// ErrNotPresent indicates the requested slot name is absent from the
	// directory. Use errors.As with *NotPresentError to recover the name.
	ErrNotPresent = errors.New("linkstore: no slot with that name")

	// ErrMismatchedSize indicates a slot's size didn't match the requested
	// type's size, either on read or on encode.
	ErrMismatchedSize = errors.New("linkstore: mismatched slot size")

	// ErrDecodingError indicates generic slot-directory corruption.
	ErrDecodingError = errors.New("linkstore: slot directory is corrupt")

	// ErrNameDecodingError indicates an empty or malformed slot name.
	ErrNameDecodingError = errors.New("linkstore: malformed slot name")

	// ErrUnexpectedEOF indicates a declared size exceeded available bytes.
	ErrUnexpectedEOF = errors.New("linkstore: unexpected end of slot section")

	// ErrIO indicates an underlying read/write/seek failure against the
	// backing store (file descriptor or mmap), as opposed to a problem with
	// the object-format or slot-directory content itself.
	ErrIO = errors.New("linkstore: I/O error")
)

// NotPresentError carries the name that was looked up and not found.
type NotPresentError struct {
	Name string
}

func (e *NotPresentError) Error() string {
	return "linkstore: no slot named " + e.Name
}

func (e *NotPresentError) Unwrap() error {
	return ErrNotPresent
}

// MismatchedSizeError carries the slot's declared size and the size the
// caller's type required.
type MismatchedSizeError struct {
	Found    uint64
	Expected uint64
}

func (e *MismatchedSizeError) Error() string {
	return fmt.Sprintf("linkstore: slot is %d bytes, type is %d bytes", e.Found, e.Expected)
}

func (e *MismatchedSizeError) Unwrap() error {
	return ErrMismatchedSize
}
