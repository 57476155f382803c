package lora

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// safeTensorHeader describes one tensor in the SafeTensors header.
type safeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes an adapter state to a SafeTensors file, the
// standard format for sharing fine-tuned weights.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]
//
// Tensors are written in alphabetical order by name.
func WriteSafeTensors(path string, state StateDict, metadata map[string]string) error {
	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]interface{})
	if len(metadata) > 0 {
		header["__metadata__"] = metadata
	}

	var currentOffset int64
	for _, name := range names {
		tensor := state[name]
		if got, want := len(tensor.Data), tensor.NumElements(); got != want {
			return fmt.Errorf("tensor %s: data has %d elements, shape implies %d", name, got, want)
		}
		size := int64(len(tensor.Data)) * 4 // float32

		header[name] = safeTensorHeader{
			DType:       "F32",
			Shape:       tensor.Shape,
			DataOffsets: [2]int64{currentOffset, currentOffset + size},
		}
		currentOffset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	file, err := os.Create(path) //nolint:gosec // G304: output path comes from user configuration.
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := writeSafeTensorsBody(file, headerJSON, names, state); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeSafeTensorsBody(file *os.File, headerJSON []byte, names []string, state StateDict) error {
	if err := binary.Write(file, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	buf := make([]byte, 0, 4096)
	for _, name := range names {
		buf = buf[:0]
		for _, v := range state[name].Data {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
		if _, err := file.Write(buf); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}
	return nil
}
