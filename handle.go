package linkstore

import (
	"fmt"
	"io"
	"os"

	"github.com/orcaman/writerseeker"
	"golang.org/x/exp/mmap"
)

// binaryHandle abstracts the two backing stores an Embedder can operate on:
// an on-disk file or an in-memory byte buffer. Every format parser in this
// package (debug/elf, debug/pe, debug/macho) takes an io.ReaderAt, so that is
// the read half of the contract; the write half is the narrower io.WriterAt
// Finish() needs to flush staged slots back to their absolute offsets.
type binaryHandle interface {
	io.ReaderAt
	io.WriterAt
	// Len reports the total size of the backing content without disturbing
	// any cursor the backend keeps internally.
	Len() (int64, error)
	// Close releases any resources (open file descriptors, mappings) held by
	// the backend. Safe to call more than once.
	Close() error
}

// fileHandle buffers the whole file into memory up front so format parsing
// operates on a single, cheap-to-random-access view, then writes only the
// modified byte ranges straight back to the underlying file on Finish().
type fileHandle struct {
	f       *os.File
	snap    []byte // full-file snapshot taken at open time, read-only after that
	snapLen int64
}

func openFileHandle(path string) (*fileHandle, error) {
	f, err := OpenBinary(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}
	snap := make([]byte, info.Size())
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, info.Size()), snap); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}
	return &fileHandle{f: f, snap: snap, snapLen: info.Size()}, nil
}

// OpenBinary opens a path in read+write mode without truncating its
// contents. The file and mmap backends open their files through it; it is
// exported for callers who want an *os.File opened the same way. An Embedder
// cannot be built from the returned file: NewFileEmbedder takes a path.
func OpenBinary(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR, 0)
}

func (h *fileHandle) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > h.snapLen {
		return 0, io.EOF
	}
	n := copy(p, h.snap[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (h *fileHandle) WriteAt(p []byte, off int64) (int, error) {
	n, err := h.f.WriteAt(p, off)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return n, nil
}

func (h *fileHandle) Len() (int64, error) {
	return h.snapLen, nil
}

func (h *fileHandle) Close() error {
	return h.f.Close()
}

// mmapHandle memory-maps the file for the read/discovery phase instead of
// copying it into a buffer, which matters for large artifacts. Writes still
// go through a regular read-write file descriptor since mmap.ReaderAt is
// read-only.
type mmapHandle struct {
	r *mmap.ReaderAt
	f *os.File
}

func openMmapHandle(path string) (*mmapHandle, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrIO, path, err)
	}
	f, err := OpenBinary(path)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	return &mmapHandle{r: r, f: f}, nil
}

func (h *mmapHandle) ReadAt(p []byte, off int64) (int, error) {
	return h.r.ReadAt(p, off)
}

func (h *mmapHandle) WriteAt(p []byte, off int64) (int, error) {
	n, err := h.f.WriteAt(p, off)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return n, nil
}

func (h *mmapHandle) Len() (int64, error) {
	return int64(h.r.Len()), nil
}

func (h *mmapHandle) Close() error {
	err1 := h.r.Close()
	err2 := h.f.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// bufferHandle operates on an in-memory buffer wrapped by a seekable cursor
// (github.com/orcaman/writerseeker), for callers who already have the
// binary's bytes in memory (e.g. a memory-mapped file they own, or bytes
// downloaded from the network) and don't want a second on-disk copy.
type bufferHandle struct {
	ws *writerseeker.WriterSeeker
}

// newBufferHandle copies buf into the cursor's own buffer; later reads and
// writes go to that copy, not to buf. The copy is never grown or shrunk by
// this package: every write lands within its existing bounds, matching the
// "slots never grow" invariant.
func newBufferHandle(buf []byte) *bufferHandle {
	ws := &writerseeker.WriterSeeker{}
	ws.Write(buf)
	return &bufferHandle{ws: ws}
}

func (h *bufferHandle) ReadAt(p []byte, off int64) (int, error) {
	return h.ws.BytesReader().ReadAt(p, off)
}

func (h *bufferHandle) WriteAt(p []byte, off int64) (int, error) {
	if _, err := h.ws.Seek(off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	n, err := h.ws.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return n, nil
}

func (h *bufferHandle) Len() (int64, error) {
	return int64(h.ws.BytesReader().Len()), nil
}

func (h *bufferHandle) Close() error {
	return nil
}

// Bytes returns the buffer's current contents. Only meaningful for an
// Embedder constructed with NewMemoryEmbedder; it reflects every Set slot
// flushed so far by Finish().
func (h *bufferHandle) Bytes() []byte {
	r := h.ws.BytesReader()
	out := make([]byte, r.Len())
	r.ReadAt(out, 0)
	return out
}
