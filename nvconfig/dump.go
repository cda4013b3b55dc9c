package nvconfig

import (
	"fmt"
	"unsafe"
)

// Dump is a read-only view of a flash dump file, the hosted counterpart of
// the record mapped at StartAddr on the device.
type Dump struct {
	data []byte
	off  int64
}

func checkDumpSize(size, off int64) error {
	if off < 0 || size < off+Size {
		return fmt.Errorf("%w: dump of %d bytes has no record at offset 0x%x", ErrInvalidSize, size, off)
	}
	return nil
}

// Config returns the record inside the dump. It shares memory with the
// dump and must not be used after Close.
func (d *Dump) Config() *NVConfig {
	return viewAt(unsafe.Pointer(&d.data[d.off]))
}

// Len returns the size of the dump in bytes.
func (d *Dump) Len() int {
	return len(d.data)
}
