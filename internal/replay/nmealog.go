// Package replay streams a recorded NMEA text log as a paced byte feed,
// one sentence at a time, for development without a receiver attached.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Feed is an io.ReadCloser over the sentences of an NMEA log file.
// Blank lines and lines that do not start with '$' (receiver chatter,
// comments) are skipped. Line endings are normalized to CRLF.
type Feed struct {
	path  string
	delay time.Duration // between sentences; 0 = unpaced
	loop  bool

	f   *os.File
	sc  *bufio.Scanner
	buf []byte
	pos int

	sleep func(time.Duration)
}

// Open prepares a feed over the given log. rate is sentences per second;
// 0 streams as fast as the consumer reads.
func Open(path string, rate float64, loop bool) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var delay time.Duration
	if rate > 0 {
		delay = time.Duration(float64(time.Second) / rate)
	}
	fd := &Feed{
		path:  path,
		delay: delay,
		loop:  loop,
		f:     f,
		sleep: time.Sleep,
	}
	fd.resetScanner()
	return fd, nil
}

func (fd *Feed) resetScanner() {
	sc := bufio.NewScanner(fd.f)
	sc.Buffer(make([]byte, 0, 256), 4096)
	fd.sc = sc
}

func (fd *Feed) Read(p []byte) (int, error) {
	for fd.pos >= len(fd.buf) {
		if err := fd.nextSentence(); err != nil {
			return 0, err
		}
	}
	n := copy(p, fd.buf[fd.pos:])
	fd.pos += n
	return n, nil
}

func (fd *Feed) nextSentence() error {
	for {
		if !fd.sc.Scan() {
			if err := fd.sc.Err(); err != nil {
				return err
			}
			if !fd.loop {
				return io.EOF
			}
			if _, err := fd.f.Seek(0, 0); err != nil {
				return fmt.Errorf("replay rewind: %w", err)
			}
			fd.resetScanner()
			continue
		}
		line := strings.TrimSpace(fd.sc.Text())
		if line == "" || !strings.HasPrefix(line, "$") {
			continue
		}
		if fd.delay > 0 {
			fd.sleep(fd.delay)
		}
		fd.buf = append(fd.buf[:0], line...)
		fd.buf = append(fd.buf, '\r', '\n')
		fd.pos = 0
		return nil
	}
}

func (fd *Feed) Close() error {
	return fd.f.Close()
}
