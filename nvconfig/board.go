package nvconfig

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Text returns the text stored in a fixed size field. The text ends at the
// first null byte, a field without one is used whole.
func Text(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// SetText stores s in dst and zero-fills the rest. Text that does not fit
// is an error, it is never truncated.
func SetText(dst []byte, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %q is %d bytes, field holds %d", ErrTextTooLong, s, len(s), len(dst))
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("text %q contains a null byte", s)
	}
	n := copy(dst, s)
	clear(dst[n:])
	return nil
}

func (b *BoardConfig) Name() string          { return Text(b.HwName[:]) }
func (b *BoardConfig) Variant() string       { return Text(b.HwVariant[:]) }
func (b *BoardConfig) FwVariantName() string { return Text(b.FwVariant[:]) }
func (b *BoardConfig) VCSID() string         { return Text(b.FwVCSID[:]) }

// NodeAssigned is false when the node has no UAVCAN node id yet and is
// limited to broadcast communication.
func (b *BoardConfig) NodeAssigned() bool {
	return b.UAVCANNodeID != NodeIDUnassigned
}

// MustLearnBus reports whether the bus mode or speed has to be learned by
// passive listening before the node may transmit.
func (b *BoardConfig) MustLearnBus() bool {
	return !b.CANBusMode.Known() || !b.CANBusSpeed.Known()
}

// UUID returns the unit identifier, uuid.Nil when unset.
func (b *BoardConfig) UUID() uuid.UUID {
	return uuid.UUID(b.HwUUID)
}

func (b *BoardConfig) SetUUID(id uuid.UUID) {
	b.HwUUID = id
}

func (b *BoardConfig) validate() error {
	if !b.CANBusMode.valid() {
		return &FieldError{Field: "canbus_mode", Err: fmt.Errorf("%w: %d", ErrInvalidField, b.CANBusMode)}
	}
	if !b.CANBusSpeed.valid() {
		return &FieldError{Field: "canbus_speed", Err: fmt.Errorf("%w: %d", ErrInvalidField, b.CANBusSpeed)}
	}
	return nil
}
