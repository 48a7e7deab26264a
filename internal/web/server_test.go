package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gpsfeed/internal/gps"
	"gpsfeed/internal/pps"
)

func testStatus() *Status {
	lat, lon := 48.1173, 11.5167
	return NewStatus("serial",
		func() gps.Snapshot {
			return gps.Snapshot{
				Enabled:       true,
				Valid:         true,
				LatDeg:        &lat,
				LonDeg:        &lon,
				GoodSentences: 42,
			}
		},
		func() pps.Snapshot {
			return pps.Snapshot{Pulses: 7}
		})
}

func TestStatusEndpoint(t *testing.T) {
	srv := httptest.NewServer(Handler(testStatus()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q", ct)
	}

	var snap StatusSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Service != "gpsfeed" {
		t.Fatalf("service = %q", snap.Service)
	}
	if snap.Source != "serial" {
		t.Fatalf("source = %q", snap.Source)
	}
	if !snap.GPS.Valid || snap.GPS.LatDeg == nil || *snap.GPS.LatDeg != 48.1173 {
		t.Fatalf("gps snapshot not passed through: %+v", snap.GPS)
	}
	if snap.PPS == nil || snap.PPS.Pulses != 7 {
		t.Fatalf("pps snapshot not passed through: %+v", snap.PPS)
	}
}

func TestStatusEndpoint_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(Handler(testStatus()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/status", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func TestStatusEndpoint_PPSOmittedWhenDisabled(t *testing.T) {
	st := NewStatus("replay", func() gps.Snapshot { return gps.Snapshot{Enabled: true} }, nil)
	srv := httptest.NewServer(Handler(st))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["pps"]; ok {
		t.Fatalf("pps present in response despite being disabled")
	}
}

func TestAboutEndpoint(t *testing.T) {
	srv := httptest.NewServer(Handler(testStatus()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/about")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var about AboutResponse
	if err := json.NewDecoder(resp.Body).Decode(&about); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if about.Service != "gpsfeed" || about.GoVersion == "" {
		t.Fatalf("unexpected about payload: %+v", about)
	}
}

func TestRootPage(t *testing.T) {
	srv := httptest.NewServer(Handler(testStatus()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := new(strings.Builder)
	if _, err := io.Copy(body, resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(body.String(), "/api/status") {
		t.Fatalf("root page missing status link: %q", body.String())
	}

	respUnknown, err := http.Get(srv.URL + "/no-such-page")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer respUnknown.Body.Close()
	if respUnknown.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown path status = %d, want 404", respUnknown.StatusCode)
	}
}
