package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Faultbox/topograph/pkg/formats"
	"github.com/Faultbox/topograph/pkg/topography"
)

const (
	testSize   = 17
	testLevels = 4
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	factory := NewEngineFactory(testSize, testLevels, 0.5, 0.5,
		topography.WithSeed(1), topography.WithAutoNormalize(true))
	s, err := New(context.Background(), factory, Config{WriteTimeout: time.Second})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *formats.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("expected binary message, got %d", kind)
	}
	f, err := formats.ParseFrame(payload)
	if err != nil {
		t.Fatalf("failed to parse frame: %v", err)
	}
	return f
}

// readAll reads the map frame and one borders frame per level.
func readAll(t *testing.T, conn *websocket.Conn) []float32 {
	t.Helper()
	m := readFrame(t, conn)
	if m.Kind != formats.FrameMap {
		t.Fatalf("expected map frame, got %s", m.Kind)
	}
	if m.Param != testSize || len(m.Values) != testSize*testSize {
		t.Fatalf("unexpected map frame: size %d, %d values", m.Param, len(m.Values))
	}

	for level := 0; level < testLevels; level++ {
		f := readFrame(t, conn)
		if f.Kind != formats.FrameBorders || f.Param != uint32(level) {
			t.Fatalf("expected borders frame for level %d, got %s/%d", level, f.Kind, f.Param)
		}
		if _, err := formats.SplitBorders(f.Values); err != nil {
			t.Errorf("level %d: %v", level, err)
		}
	}
	return m.Values
}

func TestInitialFrames(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)
	readAll(t, conn)
}

func TestComputeWithSeed(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)
	first := readAll(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"compute","seed":99}`)); err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	second := readAll(t, conn)

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("expected a different field after reseeding")
	}
}

func TestLevelRequest(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)
	readAll(t, conn)

	for _, level := range []int{2, 50} {
		req := fmt.Sprintf(`{"type":"level","level":%d}`, level)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
			t.Fatalf("failed to send request: %v", err)
		}
		f := readFrame(t, conn)
		if f.Kind != formats.FrameBorders || f.Param != uint32(level) {
			t.Errorf("expected borders frame for level %d, got %s/%d", level, f.Kind, f.Param)
		}
		if level >= testLevels && len(f.Values) != 0 {
			t.Errorf("level %d: expected empty payload, got %d values", level, len(f.Values))
		}
	}
}

func TestMalformedRequestIgnored(t *testing.T) {
	srv := newTestServer(t)
	conn := dial(t, srv)
	readAll(t, conn)

	conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
	conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"dance"}`))
	conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"level","level":1}`))

	f := readFrame(t, conn)
	if f.Kind != formats.FrameBorders || f.Param != 1 {
		t.Errorf("expected borders frame for level 1, got %s/%d", f.Kind, f.Param)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
