package nvconfig

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	cfg := newTestRecord(t)
	cfg.Board.FwCRC.Set(0xDEADBEEF00000000)

	st, err := cfg.Describe()
	require.NoError(t, err)

	fields := st.AsMap()
	board, ok := fields["board_config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "vhrd.strain_gauge", board["hw_name"])
	assert.Equal(t, "0xdeadbeef00000000", board["fw_crc"])
	assert.Equal(t, float64(500), board["bootloader_timeout_ms"])
	assert.Equal(t, "fd", board["canbus_mode"])
	assert.Equal(t, true, board["node_assigned"])
	assert.Equal(t, false, board["must_learn_bus"])
	assert.NotContains(t, board, "hw_uuid")
	assert.Equal(t, "010203", fields["vhl_bytecode"])
	assert.Equal(t, "6761696e3d313238", fields["firmware_specific"])
}

func TestDescribeErasedRecord(t *testing.T) {
	cfg, err := Unmarshal(bytes.Repeat([]byte{0xff}, Size))
	require.NoError(t, err)

	st, err := cfg.Describe()
	require.NoError(t, err)

	board := st.AsMap()["board_config"].(map[string]any)
	assert.Equal(t, "�", board["hw_name"])
	assert.Equal(t, "�", board["fw_vcs_id"])
	assert.Equal(t, float64(NodeIDUnassigned), board["uavcan_node_id"])
	assert.Equal(t, "0xffffffffffffffff", board["fw_crc"])
}

func TestDescribeGarbledText(t *testing.T) {
	cfg := newTestRecord(t)
	copy(cfg.Board.HwName[:], "ok\xc3(\x00")

	st, err := cfg.Describe()
	require.NoError(t, err)
	board := st.AsMap()["board_config"].(map[string]any)
	assert.Equal(t, "ok�(", board["hw_name"])
}
