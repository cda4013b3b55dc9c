package nvconfig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte{0, 0, 0, 0}, ""},
		{"single char", []byte{0x41, 0, 0, 0}, "A"},
		{"full field", []byte("LMP2"), "LMP2"},
		{"stops at first null", []byte{'H', 'X', 0, 'Z'}, "HX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestSetText(t *testing.T) {
	var b BoardConfig
	copy(b.HwVariant[:], "ABCD")

	require.NoError(t, SetText(b.HwVariant[:], "HX"))
	assert.Equal(t, [4]byte{'H', 'X', 0, 0}, b.HwVariant)
	assert.Equal(t, "HX", b.Variant())

	require.NoError(t, SetText(b.HwVariant[:], "LMP2"))
	assert.Equal(t, "LMP2", b.Variant())

	err := SetText(b.HwVariant[:], "LMP23")
	assert.ErrorIs(t, err, ErrTextTooLong)
	assert.Equal(t, "LMP2", b.Variant())

	assert.Error(t, SetText(b.HwVariant[:], "a\x00b"))

	name := "vhrd.strain_gauge.extended.name!"
	require.Len(t, name, 32)
	require.NoError(t, SetText(b.HwName[:], name))
	assert.Equal(t, name, b.Name())
}

func TestNodeAssigned(t *testing.T) {
	var b BoardConfig
	b.UAVCANNodeID = NodeIDUnassigned
	assert.False(t, b.NodeAssigned())
	b.UAVCANNodeID = 42
	assert.True(t, b.NodeAssigned())
}

func TestMustLearnBus(t *testing.T) {
	tests := []struct {
		name  string
		mode  CANBusMode
		speed CANBusSpeed
		want  bool
	}{
		{"both unknown", CANBusModeUnknown, CANBusSpeedUnknown, true},
		{"mode unknown", CANBusModeUnknown, CANBusSpeed500K, true},
		{"speed unknown", CANBusModeFD, CANBusSpeedUnknown, true},
		{"erased flash", CANBusMode(0xff), CANBusSpeed(0xff), true},
		{"configured", CANBusModeClassical, CANBusSpeed1M, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BoardConfig{CANBusMode: tt.mode, CANBusSpeed: tt.speed}
			assert.Equal(t, tt.want, b.MustLearnBus())
		})
	}
}

func TestBoardUUID(t *testing.T) {
	var b BoardConfig
	assert.Equal(t, uuid.Nil, b.UUID())

	id := uuid.MustParse("0f2a6c1e-5b1d-4b8e-9c3a-7d2e1f0a9b8c")
	b.SetUUID(id)
	assert.Equal(t, id, b.UUID())
	assert.Equal(t, byte(0x0f), b.HwUUID[0])
}
