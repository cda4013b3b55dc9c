//go:build unix && !baremetal

package nvconfig

import (
	"os"

	"golang.org/x/sys/unix"
)

// MapDump maps the flash dump name read-only and locates the record at off.
func MapDump(name string, off int64) (*Dump, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if err := checkDumpSize(st.Size(), off); err != nil {
		return nil, err
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &Dump{data: data, off: off}, nil
}

func (d *Dump) Close() error {
	if d.data == nil {
		return nil
	}
	err := unix.Munmap(d.data)
	d.data = nil
	return err
}
