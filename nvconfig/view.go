package nvconfig

import "unsafe"

// viewAt reinterprets p as a record. It is the only place where memory of
// unknown origin is trusted to hold Size readable bytes; callers own that
// promise. NVConfig has alignment 1, so any address is acceptable.
func viewAt(p unsafe.Pointer) *NVConfig {
	return (*NVConfig)(p)
}
