//go:build baremetal

package nvconfig

import "unsafe"

// Get returns the record flashed at StartAddr. The memory is never
// unmapped, the view stays valid for the life of the program.
//
// The record is not validated, call Validate before trusting it.
func Get() *NVConfig {
	return viewAt(unsafe.Pointer(uintptr(StartAddr)))
}
