package formats

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeParseMapFrame(t *testing.T) {
	data := []float32{0, 0.25, 0.5, 0.75, 1, 0.5, 0.25, 0, 0.125}
	raw := EncodeFrame(MapFrame(3, data))

	if string(raw[0:4]) != "TOPO" {
		t.Errorf("expected magic TOPO, got %q", raw[0:4])
	}
	if len(raw) != 14+4*len(data) {
		t.Errorf("expected %d bytes, got %d", 14+4*len(data), len(raw))
	}

	f, err := ParseFrame(raw)
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if f.Kind != FrameMap {
		t.Errorf("expected kind Map, got %s", f.Kind)
	}
	if f.Param != 3 {
		t.Errorf("expected size 3, got %d", f.Param)
	}
	for i := range data {
		if f.Values[i] != data[i] {
			t.Errorf("value %d = %v, want %v", i, f.Values[i], data[i])
		}
	}
}

func TestParseFrameErrors(t *testing.T) {
	valid := EncodeFrame(BordersFrame(2, []float32{0, 0, 1, 1, -1, -1}))

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "GRAT")

	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 9

	badMap := EncodeFrame(Frame{Kind: FrameMap, Param: 3, Values: []float32{1, 2}})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncatedFrame},
		{"short header", valid[:8], ErrTruncatedFrame},
		{"short payload", valid[:len(valid)-2], ErrTruncatedFrame},
		{"bad magic", badMagic, ErrInvalidFrameMagic},
		{"bad version", badVersion, ErrUnsupportedFrameVersion},
		{"map size mismatch", badMap, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrame(tt.data)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseFrames(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(EncodeFrame(MapFrame(3, make([]float32, 9))))
	buf.Write(EncodeFrame(BordersFrame(0, nil)))
	buf.Write(EncodeFrame(BordersFrame(1, []float32{0, 0.5, 1, 0.5, -1, -1})))

	frames, err := ParseFrames(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseFrames failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[0].Kind != FrameMap || frames[1].Kind != FrameBorders || frames[2].Kind != FrameBorders {
		t.Errorf("unexpected kinds: %s %s %s", frames[0].Kind, frames[1].Kind, frames[2].Kind)
	}
	if frames[2].Param != 1 || len(frames[2].Values) != 6 {
		t.Errorf("unexpected borders frame: %+v", frames[2])
	}

	if _, err := ParseFrames(buf.Bytes()[:buf.Len()-1]); !errors.Is(err, ErrTruncatedFrame) {
		t.Errorf("expected ErrTruncatedFrame, got %v", err)
	}
}
