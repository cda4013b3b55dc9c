package nvconfig

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q0jt/go-nvconfig/nvconfig/config/target"
)

const testManifest = `
target: STM32G474
board:
  hw_name: vhrd.strain_gauge
  hw_variant: LMP
  hw_version: 1.2.0
  hw_uuid: 0f2a6c1e-5b1d-4b8e-9c3a-7d2e1f0a9b8c
  bootloader_timeout_ms: 500
  fw_version: 0.3.1
  fw_vcs_id: 1a2b3c4d
  canbus_mode: fd
  canbus_speed: 1mbps
  uavcan_node_id: 12
bootloader: bootloader.bin
firmware: firmware.bin
firmware_specific: gains.bin
vhl_bytecode: api.vhl
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"bootloader.bin": {Data: bytes.Repeat([]byte{0xb0, 0x07}, 3000)},
		"firmware.bin":   {Data: bytes.Repeat([]byte{0xf1, 0x2e, 0x55}, 1000)},
		"gains.bin":      {Data: []byte("gain=128")},
		"api.vhl":        {Data: []byte{0x01, 0x02, 0x03}},
	}
}

func TestManifestBuild(t *testing.T) {
	m, err := LoadManifest(strings.NewReader(testManifest))
	require.NoError(t, err)
	assert.Equal(t, "STM32G474", m.Target)

	layout, err := DefaultMemoryConfig().Layout(target.STM32G474)
	require.NoError(t, err)
	cfg, err := m.Build(testFS(), layout)
	require.NoError(t, err)

	cs := newTestChecksum(t)
	require.NoError(t, cfg.Validate(cs))

	b := &cfg.Board
	assert.Equal(t, "vhrd.strain_gauge", b.Name())
	assert.Equal(t, "LMP", b.Variant())
	assert.Equal(t, Version{1, 2, 0}, b.HwVersion)
	assert.Equal(t, Version{0, 3, 1}, b.FwVersion)
	assert.Equal(t, "", b.FwVariantName())
	assert.Equal(t, "1a2b3c4d", b.VCSID())
	assert.Equal(t, "0f2a6c1e-5b1d-4b8e-9c3a-7d2e1f0a9b8c", b.UUID().String())
	assert.Equal(t, uint16(500), b.BootloaderTimeoutMS.Get())
	assert.Equal(t, CANBusModeFD, b.CANBusMode)
	assert.Equal(t, CANBusSpeed1M, b.CANBusSpeed)
	assert.Equal(t, uint8(12), b.UAVCANNodeID)
	assert.Equal(t, uint8(CurrentLayoutVersion), b.LayoutVersion)
	assert.Equal(t, [160]byte{}, b.Reserved)

	fw := testFS()["firmware.bin"].Data
	assert.Equal(t, uint32(len(fw)), b.FwSize.Get())
	assert.Equal(t, cs.Sum(fw), b.FwCRC.Get())

	region := bytes.Repeat([]byte{0xff}, ConfigOffset)
	copy(region, testFS()["bootloader.bin"].Data)
	assert.Equal(t, cs.Sum(region), b.BootloaderCRC.Get())

	assert.Equal(t, []byte("gain=128"), cfg.FirmwareSpecific[:8])
	assert.Equal(t, byte(0), cfg.FirmwareSpecific[8])
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, cfg.VHLBytecode[:3])
}

func TestManifestDefaults(t *testing.T) {
	m, err := LoadManifest(strings.NewReader("board:\n  hw_name: bare\n"))
	require.NoError(t, err)
	cfg, err := m.Build(fstest.MapFS{}, DefaultMemoryConfig().Layouts[target.STM32F103])
	require.NoError(t, err)

	assert.False(t, cfg.Board.NodeAssigned())
	assert.True(t, cfg.Board.MustLearnBus())
	assert.Equal(t, uint32(0), cfg.Board.FwSize.Get())
	assert.NoError(t, cfg.Validate(newTestChecksum(t)))
}

func TestManifestErrors(t *testing.T) {
	layout := DefaultMemoryConfig().Layouts[target.STM32G474]
	tests := []struct {
		name  string
		yaml  string
		fsys  fstest.MapFS
		field string
	}{
		{name: "name too long", yaml: "board:\n  hw_name: " + strings.Repeat("x", 33) + "\n", field: "hw_name"},
		{name: "variant too long", yaml: "board:\n  hw_variant: LMP23\n", field: "hw_variant"},
		{name: "bad version", yaml: "board:\n  fw_version: 1.x\n", field: "fw_version"},
		{name: "bad speed", yaml: "board:\n  canbus_speed: 2mbps\n", field: "canbus_speed"},
		{name: "bad mode", yaml: "board:\n  canbus_mode: lin\n", field: "canbus_mode"},
		{name: "bad uuid", yaml: "board:\n  hw_uuid: nope\n", field: "hw_uuid"},
		{name: "node id out of range", yaml: "board:\n  uavcan_node_id: 200\n", field: "uavcan_node_id"},
		{
			name:  "bytecode too large",
			yaml:  "vhl_bytecode: api.vhl\n",
			fsys:  fstest.MapFS{"api.vhl": {Data: make([]byte, VHLBytecodeSize+1)}},
			field: "vhl_bytecode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LoadManifest(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			_, err = m.Build(tt.fsys, layout)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestManifestBootloaderTooLarge(t *testing.T) {
	m := &Manifest{Bootloader: "bl.bin"}
	fsys := fstest.MapFS{"bl.bin": {Data: make([]byte, ConfigOffset+1)}}
	_, err := m.Build(fsys, DefaultMemoryConfig().Layouts[target.STM32G474])
	assert.Error(t, err)
}

func TestLoadManifestUnknownField(t *testing.T) {
	_, err := LoadManifest(strings.NewReader("board:\n  hw_nam: typo\n"))
	assert.Error(t, err)
}
