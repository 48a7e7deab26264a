package replay

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleLog = `$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A
# receiver banner, not a sentence
$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47

$GPZDA,160012.71,11,03,2004,-1,00*7D
`

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drive.nmea")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestFeed_StreamsSentencesCRLF(t *testing.T) {
	fd, err := Open(writeLog(t), 0, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fd.Close()

	b, err := io.ReadAll(fd)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("got %d sentences, want 3: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "$GPRMC") || !strings.HasPrefix(lines[2], "$GPZDA") {
		t.Fatalf("unexpected sentence order: %q", lines)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "$") {
			t.Fatalf("non-sentence line leaked: %q", l)
		}
	}
}

func TestFeed_Pacing(t *testing.T) {
	fd, err := Open(writeLog(t), 10, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fd.Close()

	var slept []time.Duration
	fd.sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := io.ReadAll(fd); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(slept) != 3 {
		t.Fatalf("slept %d times, want once per sentence (3)", len(slept))
	}
	for _, d := range slept {
		if d != 100*time.Millisecond {
			t.Fatalf("delay = %v, want 100ms for 10/s", d)
		}
	}
}

func TestFeed_Loop(t *testing.T) {
	fd, err := Open(writeLog(t), 0, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fd.Close()

	// read enough to force at least two passes over the 3-sentence log
	buf := make([]byte, 0, 1024)
	tmp := make([]byte, 64)
	for len(buf) < 500 {
		n, err := fd.Read(tmp)
		if err != nil {
			t.Fatalf("read during loop: %v", err)
		}
		buf = append(buf, tmp[:n]...)
	}
	if got := strings.Count(string(buf), "$GPRMC"); got < 2 {
		t.Fatalf("RMC seen %d times, want the log to repeat", got)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.nmea"), 0, false); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
