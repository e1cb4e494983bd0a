package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	stdmath "math"
)

// Frame format errors.
var (
	ErrInvalidFrameMagic       = errors.New("invalid frame magic: expected 'TOPO'")
	ErrUnsupportedFrameVersion = errors.New("unsupported frame version")
	ErrTruncatedFrame          = errors.New("truncated frame data")
)

// FrameVersion is the only frame layout version written and accepted.
const FrameVersion uint8 = 1

const frameHeaderSize = 4 + 1 + 1 + 4 + 4

// FrameKind identifies the payload of a frame.
type FrameKind uint8

// Frame kinds.
const (
	FrameMap     FrameKind = 1 // Payload is the height buffer, Param is the size
	FrameBorders FrameKind = 2 // Payload is FlattenBorders output, Param is the level
)

// String returns the frame kind name.
func (k FrameKind) String() string {
	switch k {
	case FrameMap:
		return "Map"
	case FrameBorders:
		return "Borders"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Frame is a length-delimited float payload sent across a host boundary.
//
// Layout (little-endian):
//
//	"TOPO" | version u8 | kind u8 | param u32 | count u32 | count × f32
type Frame struct {
	Kind   FrameKind
	Param  uint32
	Values []float32
}

// MapFrame wraps a size×size height buffer.
func MapFrame(size int, data []float32) Frame {
	return Frame{Kind: FrameMap, Param: uint32(size), Values: data}
}

// BordersFrame wraps the flattened polylines of level.
func BordersFrame(level int, flat []float32) Frame {
	return Frame{Kind: FrameBorders, Param: uint32(level), Values: flat}
}

// EncodeFrame serializes f.
func EncodeFrame(f Frame) []byte {
	buf := make([]byte, frameHeaderSize+4*len(f.Values))
	copy(buf[0:4], "TOPO")
	buf[4] = FrameVersion
	buf[5] = byte(f.Kind)
	binary.LittleEndian.PutUint32(buf[6:10], f.Param)
	binary.LittleEndian.PutUint32(buf[10:14], uint32(len(f.Values)))

	off := frameHeaderSize
	for _, v := range f.Values {
		binary.LittleEndian.PutUint32(buf[off:], stdmath.Float32bits(v))
		off += 4
	}
	return buf
}

// ParseFrame parses a frame from raw bytes.
func ParseFrame(data []byte) (*Frame, error) {
	if len(data) < frameHeaderSize {
		return nil, ErrTruncatedFrame
	}

	if string(data[0:4]) != "TOPO" {
		return nil, ErrInvalidFrameMagic
	}
	if data[4] != FrameVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFrameVersion, data[4])
	}

	r := bytes.NewReader(data[5:])

	var kind uint8
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return nil, fmt.Errorf("%w: reading kind", ErrTruncatedFrame)
	}

	var param, count uint32
	if err := binary.Read(r, binary.LittleEndian, &param); err != nil {
		return nil, fmt.Errorf("%w: reading param", ErrTruncatedFrame)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading count", ErrTruncatedFrame)
	}

	if uint64(r.Len()) < uint64(count)*4 {
		return nil, fmt.Errorf("%w: expected %d values, have %d bytes", ErrTruncatedFrame, count, r.Len())
	}

	values := make([]float32, count)
	if count > 0 {
		if err := binary.Read(r, binary.LittleEndian, values); err != nil {
			return nil, fmt.Errorf("%w: reading values", ErrTruncatedFrame)
		}
	}

	f := &Frame{
		Kind:   FrameKind(kind),
		Param:  param,
		Values: values,
	}

	if f.Kind == FrameMap && uint64(f.Param)*uint64(f.Param) != uint64(count) {
		return nil, fmt.Errorf("map frame of size %d carries %d values", f.Param, count)
	}
	return f, nil
}

// ParseFrames parses a stream of concatenated frames.
func ParseFrames(data []byte) ([]*Frame, error) {
	var frames []*Frame
	for len(data) > 0 {
		if len(data) < frameHeaderSize {
			return nil, fmt.Errorf("%w: frame %d header", ErrTruncatedFrame, len(frames))
		}
		count := binary.LittleEndian.Uint32(data[10:14])
		size := uint64(frameHeaderSize) + 4*uint64(count)
		if uint64(len(data)) < size {
			return nil, fmt.Errorf("%w: frame %d payload", ErrTruncatedFrame, len(frames))
		}

		f, err := ParseFrame(data[:size])
		if err != nil {
			return nil, fmt.Errorf("parsing frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
		data = data[size:]
	}
	return frames, nil
}
