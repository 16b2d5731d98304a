package messages

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// SysInfoReply identifies a node's firmware.
type SysInfoReply struct {
	NodeID        uint64
	GitSHA        uint32
	SysConfigCRC  uint32
	AppNameStrlen uint32
	AppName       string
}

func (*SysInfoReply) Name() string { return "SysInfoReply" }

func (m *SysInfoReply) Table() wire.Table {
	return strict(
		wire.Uint64("node_id", &m.NodeID),
		wire.Uint32("git_sha", &m.GitSHA),
		wire.Uint32("sys_config_crc", &m.SysConfigCRC),
		wire.Uint32("app_name_strlen", &m.AppNameStrlen),
		wire.String("app_name", &m.AppName),
	)
}

// ConfigCborMapRequest asks a node for one configuration partition.
type ConfigCborMapRequest struct {
	PartitionID uint32
}

func (*ConfigCborMapRequest) Name() string { return "ConfigCborMapRequest" }

func (m *ConfigCborMapRequest) Table() wire.Table {
	return strict(wire.Uint32("partition_id", &m.PartitionID))
}

// ConfigCborMapReply carries a configuration partition as an encoded CBOR
// map. The length pair is derived from CborData on encode and checked
// against it on decode.
type ConfigCborMapReply struct {
	NodeID            uint64
	PartitionID       uint32
	Success           bool
	CborEncodedMapLen uint32
	CborData          []byte
}

func (*ConfigCborMapReply) Name() string { return "ConfigCborMapReply" }

func (m *ConfigCborMapReply) Table() wire.Table {
	return strict(
		wire.Uint64("node_id", &m.NodeID),
		wire.Uint32("partition_id", &m.PartitionID),
		wire.Bool("success", &m.Success),
		wire.Uint32("cbor_encoded_map_len", &m.CborEncodedMapLen),
		wire.Bytes("cbor_data", &m.CborData),
	)
}

func (m *ConfigCborMapReply) pairs() int { return 5 }

func (m *ConfigCborMapReply) writeFields(e *wire.Encoder) error {
	c := *m
	c.CborEncodedMapLen = uint32(len(c.CborData))
	return wire.EncodeFields(e, c.Table())
}

func (m *ConfigCborMapReply) check() error {
	if err := lengthCheck("cbor_encoded_map_len", m.CborEncodedMapLen, len(m.CborData)); err != nil {
		m.CborData = nil
		return err
	}
	return nil
}

// Values decodes CborData as a configuration map.
func (m *ConfigCborMapReply) Values() (map[string]any, error) {
	var v map[string]any
	if err := cbor.Unmarshal(m.CborData, &v); err != nil {
		return nil, fmt.Errorf("config partition %d: %w", m.PartitionID, err)
	}
	return v, nil
}

// DeviceTestRequest asks a node to run its device self test. The data is
// opaque to the codec.
type DeviceTestRequest struct {
	DataLen uint32
	Data    []byte
}

func (*DeviceTestRequest) Name() string { return "DeviceTestRequest" }

func (m *DeviceTestRequest) Table() wire.Table {
	return strict(
		wire.Uint32("data_len", &m.DataLen),
		wire.Bytes("data", &m.Data),
	)
}

func (m *DeviceTestRequest) pairs() int { return 2 }

func (m *DeviceTestRequest) writeFields(e *wire.Encoder) error {
	c := *m
	c.DataLen = uint32(len(c.Data))
	return wire.EncodeFields(e, c.Table())
}

func (m *DeviceTestRequest) check() error {
	if err := lengthCheck("data_len", m.DataLen, len(m.Data)); err != nil {
		m.Data = nil
		return err
	}
	return nil
}

// DeviceTestReply reports the result of a device self test.
type DeviceTestReply struct {
	Success bool
	DataLen uint32
	Data    []byte
}

func (*DeviceTestReply) Name() string { return "DeviceTestReply" }

func (m *DeviceTestReply) Table() wire.Table {
	return strict(
		wire.Bool("success", &m.Success),
		wire.Uint32("data_len", &m.DataLen),
		wire.Bytes("data", &m.Data),
	)
}

func (m *DeviceTestReply) pairs() int { return 3 }

func (m *DeviceTestReply) writeFields(e *wire.Encoder) error {
	c := *m
	c.DataLen = uint32(len(c.Data))
	return wire.EncodeFields(e, c.Table())
}

func (m *DeviceTestReply) check() error {
	if err := lengthCheck("data_len", m.DataLen, len(m.Data)); err != nil {
		m.Data = nil
		return err
	}
	return nil
}

func lengthCheck(key string, declared uint32, actual int) error {
	if uint64(declared) == uint64(actual) {
		return nil
	}
	return &wire.Error{Code: wire.CodeMalformedInput, Op: "Decode", Key: key,
		Detail: fmt.Sprintf("declares %d bytes, payload has %d", declared, actual)}
}
