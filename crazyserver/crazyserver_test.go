package crazyserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = zerolog.Nop()
	ts := httptest.NewServer(New(opts))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("POST %s Content-Type = %q", path, ct)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("POST %s: decoding response: %v", path, err)
	}
	return resp.StatusCode, out
}

func TestEncodeEndpoints(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		path string
		body string
		want string
	}{
		{"/encode/commander", `{"roll":0,"pitch":0,"yaw":0,"thrust":4660}`, "30" + strings.Repeat("00", 12) + "3412"},
		{"/encode/takeoff", `{"height":1,"duration":2}`, "800100" + "0000803F" + "00000040"},
		{"/encode/takeoff", ``, "800100" + "CDCC4C3E" + "00000040"},
		{"/encode/land", `{"height":0,"duration":1,"group_mask":3}`, "800203" + "00000000" + "0000803F"},
		{"/encode/stop", ``, "800300"},
		{"/encode/stop", `{"group_mask":255}`, "8003FF"},
		{"/encode/goto", `{"relative":true,"x":1,"duration":2}`, "80040001" + "0000803F" + strings.Repeat("00", 12) + "00000040"},
		{"/encode/position", `{"z":1}`, "7007" + strings.Repeat("00", 8) + "0000803F" + "00000000"},
		{"/encode/generic/stop", ``, "7000"},
		{"/encode/log/block", `{"block":5,"items":[{"type":1,"id":7},{"type":2,"id":9}]}`, "5106" + "05010700020900"},
		{"/encode/log/block", `{"command":"append","block":5,"items":[{"type":7,"id":1}]}`, "5107" + "05070100"},
		{"/encode/log/block", `{"command":"start","block":5,"period_ms":100}`, "5103050A"},
		{"/encode/log/block", `{"command":"stop","block":5}`, "510405"},
		{"/encode/log/block", `{"command":"delete","block":5}`, "510205"},
		{"/encode/log/block", `{"command":"reset"}`, "5105"},
		{"/encode/param/toc", ``, "2003"},
		{"/encode/param/toc", `{"item":258}`, "20020201"},
		{"/encode/param/read", `{"id":3}`, "210300"},
		{"/encode/param/write", `{"id":3,"type":"uint16","value":513}`, "2203000102"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, out := post(t, ts, tt.path, tt.body)
			if status != http.StatusOK {
				t.Fatalf("status = %d (%v)", status, out)
			}
			if out["hex"] != tt.want {
				t.Errorf("hex = %v, want %s", out["hex"], tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		path   string
		body   string
		status int
	}{
		{"/encode/commander", `{"thrust":"full"}`, http.StatusBadRequest},
		{"/encode/log/block", `{"command":"explode"}`, http.StatusUnprocessableEntity},
		{"/encode/log/block", `{"command":"start","period_ms":3000}`, http.StatusUnprocessableEntity},
		{"/encode/log/block", `{"items":[{"type":7,"id":1},{"type":7,"id":2},{"type":7,"id":3},{"type":7,"id":4},{"type":7,"id":5},{"type":7,"id":6},{"type":7,"id":7}]}`, http.StatusUnprocessableEntity},
		{"/encode/param/write", `{"id":1,"type":"complex"}`, http.StatusUnprocessableEntity},
		{"/encode/param/write", `{"id":1,"type":"uint8","value":300}`, http.StatusUnprocessableEntity},
		{"/encode/param/write", `{"id":1,"type":"int16","value":0.5}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		status, out := post(t, ts, tt.path, tt.body)
		if status != tt.status {
			t.Errorf("POST %s %s: status = %d, want %d", tt.path, tt.body, status, tt.status)
		}
		if _, ok := out["error"]; !ok {
			t.Errorf("POST %s: no error field in %v", tt.path, out)
		}
	}
}

func TestPortsIndex(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/ports")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out portsIndexResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Ports) != 11 || out.Ports[0].Name != "console" || out.Ports[10].ID != 0x0F {
		t.Errorf("ports = %+v", out.Ports)
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("<h1>crazycodec</h1>"), 0644); err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, Options{Static: dir})

	resp, err := http.Get(ts.URL + "/static/app.js")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "crazycodec") {
		t.Errorf("GET /static/app.js = %d %q", resp.StatusCode, body)
	}
}

type decodedMessage struct {
	Header struct {
		Port    int `json:"port"`
		Channel int `json:"channel"`
	} `json:"header"`
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func TestDecodeEndpoint(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Post(ts.URL+"/decode", "application/json", strings.NewReader(`{"hex":"20 03 12 00 EF BE AD DE"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var m decodedMessage
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.Kind != "param.toc.info" || m.Header.Port != 2 || m.Header.Channel != 0 {
		t.Errorf("message = %+v", m)
	}

	var info struct {
		Count int    `json:"count"`
		CRC   uint32 `json:"crc"`
	}
	if err := json.Unmarshal(m.Value, &info); err != nil {
		t.Fatal(err)
	}
	if info.Count != 18 || info.CRC != 0xDEADBEEF {
		t.Errorf("value = %+v", info)
	}
}

func TestDecodeEndpointErrors(t *testing.T) {
	ts := newTestServer(t, Options{})

	for _, body := range []string{`{"hex":""}`, `{"hex":"2"}`, `{"hex":"zz"}`, `{"hex":"20"}`} {
		status, out := post(t, ts, "/decode", body)
		if status != http.StatusUnprocessableEntity {
			t.Errorf("POST /decode %s: status = %d", body, status)
		}
		if out["error"] == "" {
			t.Errorf("POST /decode %s: empty error", body)
		}
	}
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, Options{Metrics: true})

	post(t, ts, "/encode/stop", ``)
	post(t, ts, "/decode", `{"hex":"2003120000000000"}`)
	post(t, ts, "/decode", `{"hex":""}`)
	post(t, ts, "/decode", `{"hex":"xyz"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`crazycodec_frames_encoded_total{kind="stop"} 1`,
		`crazycodec_frames_decoded_total{kind="param.toc.info",port="param"} 1`,
		`crazycodec_decode_errors_total{reason="truncated"} 1`,
		`crazycodec_decode_errors_total{reason="hex"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics is missing %s", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", resp.StatusCode)
	}
}

func TestWebsocketDecodeStream(t *testing.T) {
	ts := newTestServer(t, Options{})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sockets/websocket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("20 03 12 00 EF BE AD DE")); err != nil {
		t.Fatal(err)
	}
	var m decodedMessage
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatal(err)
	}
	if m.Kind != "param.toc.info" {
		t.Errorf("kind = %q", m.Kind)
	}

	resp, err := http.Get(ts.URL + "/sockets")
	if err != nil {
		t.Fatal(err)
	}
	var index socketIndexResp
	json.NewDecoder(resp.Body).Decode(&index)
	resp.Body.Close()
	if len(index.Sockets) != 1 || index.Sockets[0] != "websocket/websocket0" {
		t.Errorf("sockets = %v", index.Sockets)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not hex")); err != nil {
		t.Fatal(err)
	}
	var e errorResponse
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatal(err)
	}
	if e.Error == "" {
		t.Error("expected an error for a malformed frame")
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x20}); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.Error, "hex") {
		t.Errorf("binary frame error = %q", e.Error)
	}
}
