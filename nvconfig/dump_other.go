//go:build !unix || baremetal

package nvconfig

import "os"

// MapDump reads the flash dump name and locates the record at off.
func MapDump(name string, off int64) (*Dump, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if err := checkDumpSize(int64(len(data)), off); err != nil {
		return nil, err
	}
	return &Dump{data: data, off: off}, nil
}

func (d *Dump) Close() error {
	d.data = nil
	return nil
}
