package producer

import (
	"github.com/google/renameio"
)

// WriteObjectFile writes data to path atomically (write-to-temp, fsync,
// rename), so a build that regenerates the producer object mid-compile never
// hands the linker a torn .o file.
func WriteObjectFile(path string, data []byte) error {
	t, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer t.Cleanup()

	if _, err := t.Write(data); err != nil {
		return err
	}
	return t.CloseAtomicallyReplace()
}
