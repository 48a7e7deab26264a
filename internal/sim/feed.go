package sim

import (
	"io"
	"sync/atomic"
	"time"
)

// Feed is an io.ReadCloser emitting one batch of simulated sentences per
// second, for use as a gps service byte source.
type Feed struct {
	cfg    Config
	buf    []byte
	pos    int
	closed atomic.Bool

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFeed(cfg Config) *Feed {
	return &Feed{
		cfg:   cfg,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

func (f *Feed) Read(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, io.EOF
	}
	if f.pos >= len(f.buf) {
		f.sleep(time.Second)
		if f.closed.Load() {
			return 0, io.EOF
		}
		f.buf = f.buf[:0]
		for _, s := range f.cfg.Sentences(f.now()) {
			f.buf = append(f.buf, s...)
		}
		f.pos = 0
	}
	n := copy(p, f.buf[f.pos:])
	f.pos += n
	return n, nil
}

func (f *Feed) Close() error {
	f.closed.Store(true)
	return nil
}
