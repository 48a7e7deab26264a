package gps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"gpsfeed/internal/nmea"
)

// staleAfterMs flags a published position whose fix age exceeds this.
const staleAfterMs = 5000

type Config struct {
	Enable bool

	// Device is the serial device path; empty means auto-detect across
	// /dev/ttyACM* and /dev/ttyUSB*.
	Device string
	Baud   int
}

// Snapshot is the JSON-friendly view of the decoder's published state.
// Optional values are nil until the corresponding field has been committed.
type Snapshot struct {
	Enabled  bool `json:"enabled"`
	Valid    bool `json:"valid"`
	FixStale bool `json:"fix_stale"`

	Source string `json:"source,omitempty"`
	Device string `json:"device,omitempty"`
	Baud   int    `json:"baud,omitempty"`

	LatDeg    *float64 `json:"lat_deg,omitempty"`
	LonDeg    *float64 `json:"lon_deg,omitempty"`
	AltM      *float64 `json:"alt_m,omitempty"`
	SpeedKt   *float64 `json:"speed_kt,omitempty"`
	CourseDeg *float64 `json:"course_deg,omitempty"`
	HDOP      *float64 `json:"hdop,omitempty"`

	Satellites     *int   `json:"satellites,omitempty"`
	Constellations string `json:"constellations,omitempty"`

	// Fixed-point date/time as decoded: ddmmyy and hhmmsscc.
	Date uint32 `json:"date,omitempty"`
	Time uint32 `json:"time,omitempty"`

	PositionAgeMs *uint32 `json:"position_age_ms,omitempty"`
	TimeAgeMs     *uint32 `json:"time_age_ms,omitempty"`

	SatellitesInView []nmea.Satellite `json:"satellites_in_view,omitempty"`

	BytesDecoded   uint64 `json:"bytes_decoded"`
	GoodSentences  uint32 `json:"good_sentences"`
	FailedChecksum uint32 `json:"failed_checksum"`

	LastError string `json:"last_error,omitempty"`
}

type Service struct {
	cfg Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last atomic.Value // Snapshot

	mu     sync.Mutex
	closer io.Closer
}

func New(cfg Config) *Service {
	s := &Service{cfg: cfg}
	s.last.Store(Snapshot{Enabled: cfg.Enable, Device: cfg.Device, Baud: cfg.Baud})
	return s
}

// Start opens the configured serial device and begins decoding.
func (s *Service) Start(ctx context.Context) error {
	if !s.cfg.Enable {
		return nil
	}

	device := s.cfg.Device
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			s.setError("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			return fmt.Errorf("gps auto-detect failed")
		}
	}
	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	f, err := openSerial(device, baud)
	if err != nil {
		s.setError(fmt.Sprintf("gps open failed device=%s baud=%d: %v", device, baud, err))
		return err
	}

	log.Printf("gps enabled device=%s baud=%d", device, baud)
	return s.startFeed(ctx, f, "serial", device, baud)
}

// StartFeed begins decoding from an arbitrary byte source (replay log,
// simulator, network). The source is closed when the service stops.
func (s *Service) StartFeed(ctx context.Context, rc io.ReadCloser, source string) error {
	if !s.cfg.Enable {
		_ = rc.Close()
		return nil
	}
	log.Printf("gps enabled source=%s", source)
	return s.startFeed(ctx, rc, source, "", 0)
}

func (s *Service) startFeed(ctx context.Context, rc io.ReadCloser, source, device string, baud int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		_ = rc.Close()
		return fmt.Errorf("gps service already started")
	}
	s.closer = rc

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.last.Store(Snapshot{Enabled: true, Source: source, Device: device, Baud: baud})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { _ = rc.Close() }()
		if err := s.feedLoop(childCtx, rc, source, device, baud); err != nil && childCtx.Err() == nil {
			s.setError(fmt.Sprintf("gps read stopped: %v", err))
		}
	}()
	return nil
}

// feedLoop reads one byte at a time and feeds the decoder. The published
// snapshot is refreshed on every committed fix and at each sentence
// boundary so ages and statistics stay current even without new fixes.
func (s *Service) feedLoop(ctx context.Context, r io.Reader, source, device string, baud int) error {
	dec := nmea.New()
	br := bufio.NewReaderSize(r, 256)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := br.ReadByte()
		if err != nil {
			// Publish final state before reporting why the feed ended.
			s.publish(dec, source, device, baud)
			return err
		}

		committed := dec.Feed(b)
		if committed || b == '\n' {
			s.publish(dec, source, device, baud)
		}
	}
}

func (s *Service) publish(dec *nmea.Decoder, source, device string, baud int) {
	fix := dec.Snapshot()

	snap := Snapshot{
		Enabled: true,
		Source:  source,
		Device:  device,
		Baud:    baud,
	}
	snap.LastError = s.Snapshot().LastError

	if fix.Latitude != nmea.InvalidAngle {
		lat := float64(fix.Latitude) / 1e6
		lon := float64(fix.Longitude) / 1e6
		snap.LatDeg = &lat
		snap.LonDeg = &lon
		snap.Valid = true
	}
	if fix.Altitude != nmea.InvalidAltitude {
		alt := float64(fix.Altitude) / 100
		snap.AltM = &alt
	}
	if fix.Speed != nmea.InvalidSpeed {
		kt := float64(fix.Speed) / 100
		snap.SpeedKt = &kt
	}
	if fix.Course != nmea.InvalidCourse {
		crs := float64(fix.Course) / 100
		snap.CourseDeg = &crs
	}
	if fix.HDOP != nmea.InvalidHDOP {
		h := float64(fix.HDOP) / 100
		snap.HDOP = &h
	}
	if fix.Satellites != nmea.InvalidSatellites {
		n := int(fix.Satellites)
		snap.Satellites = &n
	}
	snap.Constellations = fix.Constellations

	if fix.Date != nmea.InvalidDate {
		snap.Date = fix.Date
	}
	if fix.Time != nmea.InvalidTime {
		snap.Time = fix.Time
	}

	if fix.PositionAge != nmea.InvalidAge {
		age := fix.PositionAge
		snap.PositionAgeMs = &age
		snap.FixStale = age > staleAfterMs
	}
	if fix.TimeAge != nmea.InvalidAge {
		age := fix.TimeAge
		snap.TimeAgeMs = &age
	}

	snap.SatellitesInView = dec.SatellitesInView()
	snap.BytesDecoded, snap.GoodSentences, snap.FailedChecksum = dec.Stats()

	s.last.Store(snap)
}

func (s *Service) Close() {
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

func (s *Service) setError(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	s.last.Store(cur)
}

func autoDetectDevice() string {
	candidates := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
