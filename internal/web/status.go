package web

import (
	"sync/atomic"
	"time"

	"gpsfeed/internal/gps"
	"gpsfeed/internal/pps"
)

// Status aggregates the live state reported on /api/status. Snapshot
// providers are called per request; they must be safe for concurrent use.
type Status struct {
	startUnixNano int64
	source        string
	gpsFn         func() gps.Snapshot
	ppsFn         func() pps.Snapshot // nil when PPS is disabled
}

func NewStatus(source string, gpsFn func() gps.Snapshot, ppsFn func() pps.Snapshot) *Status {
	s := &Status{
		source: source,
		gpsFn:  gpsFn,
		ppsFn:  ppsFn,
	}
	atomic.StoreInt64(&s.startUnixNano, time.Now().UTC().UnixNano())
	return s
}

type StatusSnapshot struct {
	Service   string        `json:"service"`
	NowUTC    string        `json:"now_utc"`
	UptimeSec int64         `json:"uptime_sec"`
	Source    string        `json:"source"`
	GPS       gps.Snapshot  `json:"gps"`
	PPS       *pps.Snapshot `json:"pps,omitempty"`
}

func (s *Status) Snapshot(nowUTC time.Time) StatusSnapshot {
	if nowUTC.IsZero() {
		nowUTC = time.Now().UTC()
	}
	start := time.Unix(0, atomic.LoadInt64(&s.startUnixNano)).UTC()

	snap := StatusSnapshot{
		Service:   "gpsfeed",
		NowUTC:    nowUTC.UTC().Format(time.RFC3339Nano),
		UptimeSec: int64(nowUTC.Sub(start).Seconds()),
		Source:    s.source,
	}
	if s.gpsFn != nil {
		snap.GPS = s.gpsFn()
	}
	if s.ppsFn != nil {
		p := s.ppsFn()
		snap.PPS = &p
	}
	return snap
}
