package linkstore

import (
	"fmt"
)

// Embedder is the top-level handle on one binary: it discovers every slot in
// the binary once at construction time, lets callers Read or Embed named
// slots against that in-memory directory, and flushes every staged change
// back to the backing store in one Finish() call.
//
// Mirrors the original implementation's Linkstores/Embedder split, collapsed
// into a single type the way the teacher collapses its own multi-stage
// build pipeline (parse, codegen, link) behind one Target/Compiler-shaped
// entry point (see producer package).
type Embedder struct {
	handle binaryHandle
	dir    directory
}

func newEmbedder(h binaryHandle) (*Embedder, error) {
	length, err := h.Len()
	if err != nil {
		return nil, err
	}
	e := &Embedder{handle: h, dir: make(directory)}
	if err := discoverLinkstores(e.dir, h, 0, length, 0); err != nil {
		h.Close()
		return nil, err
	}
	return e, nil
}

// NewFileEmbedder opens path read-write and buffers its full contents for
// discovery, writing staged slots straight back to the file descriptor on
// Finish().
func NewFileEmbedder(path string) (*Embedder, error) {
	h, err := openFileHandle(path)
	if err != nil {
		return nil, err
	}
	return newEmbedder(h)
}

// NewMmapEmbedder memory-maps path for discovery instead of copying it into
// memory, which matters for very large binaries; writes still go through a
// regular file descriptor.
func NewMmapEmbedder(path string) (*Embedder, error) {
	h, err := openMmapHandle(path)
	if err != nil {
		return nil, err
	}
	return newEmbedder(h)
}

// NewMemoryEmbedder works on an in-memory copy of buf, useful when the caller
// already has the binary's bytes in memory (e.g. downloaded from the network).
// buf itself is not modified; Finish writes into the copy, which Bytes
// returns. The copy is never grown or shrunk: every Embed lands within its
// existing bounds.
func NewMemoryEmbedder(buf []byte) (*Embedder, error) {
	h := newBufferHandle(buf)
	return newEmbedder(h)
}

// Close releases the underlying handle without flushing any staged changes.
// Finish implies a Close; call Close directly only if you're abandoning the
// Embedder without writing anything back.
func (e *Embedder) Close() error {
	return e.handle.Close()
}

// Bytes returns the current contents of the backing store and true, for an
// Embedder constructed with NewMemoryEmbedder; it returns (nil, false) for a
// file- or mmap-backed Embedder, which has no single in-memory byte slice to
// hand back. Safe to call after Finish() to recover the patched binary.
func (e *Embedder) Bytes() ([]byte, bool) {
	b, ok := e.handle.(*bufferHandle)
	if !ok {
		return nil, false
	}
	return b.Bytes(), true
}

// Names reports every slot name discovered in the binary, for callers that
// want to enumerate before reading (e.g. a CLI "list" subcommand).
func (e *Embedder) Names() []string {
	out := make([]string, 0, len(e.dir))
	for name := range e.dir {
		out = append(out, name)
	}
	return out
}

// Read decodes every occurrence of the named slot as T, in discovery order.
// A missing name is reported through Values.Err as a *NotPresentError; a
// slot whose byte size doesn't match sizeOf[T]() is reported the same way as
// a *MismatchedSizeError.
func Read[T Scalar](e *Embedder, name string) *Values[T] {
	group, ok := e.dir[name]
	if !ok {
		v := &Values[T]{}
		v.err = &NotPresentError{Name: name}
		return v
	}
	slots := group.slots()
	want := sizeOf[T]()
	for _, s := range slots {
		if s.size != want {
			v := &Values[T]{}
			v.err = &MismatchedSizeError{Found: s.size, Expected: want}
			return v
		}
	}
	return newValues[T](slots)
}

// TryRead behaves like Read but reports ErrNotPresent as a plain (nil, nil)
// rather than an error, for callers that treat a missing slot as "use the
// default" instead of a hard failure.
func TryRead[T Scalar](e *Embedder, name string) (*Values[T], error) {
	group, ok := e.dir[name]
	if !ok {
		return nil, nil
	}
	slots := group.slots()
	want := sizeOf[T]()
	for _, s := range slots {
		if s.size != want {
			return nil, &MismatchedSizeError{Found: s.size, Expected: want}
		}
	}
	v := newValues[T](slots)
	if v.err != nil {
		return nil, v.err
	}
	return v, nil
}

// ReadArray decodes the named slot as a fixed-length array of n elements of
// T, reporting a single occurrence (arrays are never repeated across
// multiple slots sharing a name in practice, but the first occurrence is
// used if they are).
func ReadArray[T Scalar](e *Embedder, name string, n int) ([]T, error) {
	group, ok := e.dir[name]
	if !ok {
		return nil, &NotPresentError{Name: name}
	}
	s := group.slots()[0]
	want := sizeOf[T]() * uint64(n)
	if s.size != want {
		return nil, &MismatchedSizeError{Found: s.size, Expected: want}
	}
	return decodeArray[T](s.currentBytes(), s.littleEndian, n)
}

// Embed stages v as the new value of every occurrence of name, encoded with
// each occurrence's own declared endianness. The new encoding must be
// exactly the same size as the slot it replaces: slots never grow or shrink.
// Nothing is written to the backing store until Finish() is called.
//
// Writing into a signed Mach-O binary invalidates its code signature. This
// package does not re-sign; the signature has to be re-applied with an
// external tool before the binary will run where signing is enforced.
func Embed[T Scalar](e *Embedder, name string, v T) error {
	group, ok := e.dir[name]
	if !ok {
		return &NotPresentError{Name: name}
	}
	want := sizeOf[T]()
	for _, s := range group.slots() {
		if s.size != want {
			return &MismatchedSizeError{Found: s.size, Expected: want}
		}
	}
	for _, s := range group.slots() {
		s.stage(encodeScalar(v, s.littleEndian))
	}
	return nil
}

// EmbedArray is Embed's array counterpart: it stages vs as the new value of
// every occurrence of name, rejecting a length mismatch against the slot's
// declared size the same way Embed does.
func EmbedArray[T Scalar](e *Embedder, name string, vs []T) error {
	group, ok := e.dir[name]
	if !ok {
		return &NotPresentError{Name: name}
	}
	want := sizeOf[T]() * uint64(len(vs))
	for _, s := range group.slots() {
		if s.size != want {
			return &MismatchedSizeError{Found: s.size, Expected: want}
		}
	}
	for _, s := range group.slots() {
		s.stage(encodeArray(vs, s.littleEndian))
	}
	return nil
}

// Finish flushes every staged (Set) slot to its absolute offset in the
// backing store, then closes the underlying handle. Slots that were never
// embedded into are left untouched. Finish is not atomic across slots: a
// write failure partway through leaves earlier writes already applied.
func (e *Embedder) Finish() error {
	defer e.handle.Close()
	for name, group := range e.dir {
		for _, s := range group.slots() {
			if s.state != stateSet {
				continue
			}
			if _, err := e.handle.WriteAt(s.currentBytes(), int64(s.absoluteOffset)); err != nil {
				return fmt.Errorf("linkstore: writing slot %q: %w", name, err)
			}
		}
	}
	return nil
}
