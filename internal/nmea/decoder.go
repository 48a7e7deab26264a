package nmea

import "time"

// Sentinel values reported by accessors when a field has never been set.
// Angles (lat/lon/course) are in the units of their accessor; see each one.
const (
	InvalidAngle      int32  = 999999999
	InvalidAltitude   int32  = 999999999
	InvalidSpeed      uint32 = 999999999
	InvalidCourse     uint32 = 999999999
	InvalidDate       uint32 = 0
	InvalidTime       uint32 = 0xFFFFFFFF
	InvalidHDOP       uint32 = 0xFFFFFFFF
	InvalidSatellites uint8  = 0xFF
	InvalidFixTime    uint32 = 0xFFFFFFFF
	InvalidAge        uint32 = 0xFFFFFFFF
)

// Float-form sentinels, mirroring the fixed-point ones above.
const (
	InvalidFAngle    = 1000.0
	InvalidFAltitude = 1000000.0
	InvalidFSpeed    = -1.0
)

type sentenceType uint8

const (
	sentGGA sentenceType = iota
	sentRMC
	sentGNS
	sentGSA
	sentGPGSV
	sentGLGSV
	sentZDA
	sentPUBX
	sentOther
)

// termSize bounds a single field: 14 data bytes plus a terminator. Longer
// fields are silently truncated without disturbing the rest of the sentence.
const termSize = 15

// Decoder incrementally decodes an NMEA-0183 byte stream and retains the
// most recently validated fix. All state is fixed-size; Feed never
// allocates.
//
// Scratch (pending) fields are deliberately not cleared between sentences,
// matching the staging model this decoder inherits: a rejected sentence's
// partially parsed fields persist and may be committed by a later sentence
// of the same type that leaves those field indices empty.
//
// A Decoder must be fed from a single goroutine.
type Decoder struct {
	// published fix state
	time        uint32 // hhmmsscc
	date        uint32 // ddmmyy
	latitude    int32  // millionths of a degree, signed
	longitude   int32  // millionths of a degree, signed
	altitude    int32  // centimeters, signed
	speed       uint32 // hundredths of a knot
	course      uint32 // hundredths of a degree
	hdop        uint32 // hundredths
	numSats     uint8
	year        uint32 // full year, from ZDA
	month, day  uint32
	lastTimeFix uint32 // decoder clock ms at last valid time field
	lastPosFix  uint32
	lastDateFix uint32

	// constellation tag from GNGNS; written at dispatch time, not staged
	constellations   [5]byte
	constellationLen uint8

	// satellite tracking table; see satellites.go for the entry layout
	sats [satTableSize]uint32

	// pending (scratch) mirror, written field-by-field as terms complete
	newTime      uint32
	newDate      uint32
	newLatitude  int32
	newLongitude int32
	newAltitude  int32
	newSpeed     uint32
	newCourse    uint32
	newHDOP      uint32
	newNumSats   uint8
	newYear      uint32
	newMonth     uint32
	newDay       uint32
	newTimeFix   uint32
	newPosFix    uint32
	newDateFix   uint32

	// per-sentence parse context, reset at '$'
	term       [termSize]byte
	termLen    uint8
	termNumber uint8
	parity     byte
	inChecksum bool
	sentType   sentenceType
	ubxType    uint32
	dataGood   bool

	// GSV bookkeeping; persists across the continuation sentences of a group
	satBlockIndex int
	pendingPRN    int

	// statistics
	encodedBytes   uint64
	goodSentences  uint32
	failedChecksum uint32

	// monotonic millisecond clock
	now func() uint32
}

// New returns a Decoder whose millisecond clock starts at construction.
func New() *Decoder {
	start := time.Now()
	return NewWithClock(func() uint32 {
		return uint32(time.Since(start) / time.Millisecond)
	})
}

// NewWithClock returns a Decoder using the supplied monotonic millisecond
// clock. The clock is read when time/position/date fields are parsed and
// when ages are queried.
func NewWithClock(now func() uint32) *Decoder {
	d := &Decoder{
		time:        InvalidTime,
		date:        InvalidDate,
		latitude:    InvalidAngle,
		longitude:   InvalidAngle,
		altitude:    InvalidAltitude,
		speed:       InvalidSpeed,
		course:      InvalidCourse,
		hdop:        InvalidHDOP,
		numSats:     InvalidSatellites,
		lastTimeFix: InvalidFixTime,
		lastPosFix:  InvalidFixTime,
		lastDateFix: InvalidFixTime,
		sentType:    sentOther,
		now:         now,
	}
	return d
}

// Feed consumes one byte from the receiver. It returns true exactly when
// this byte completed a sentence that passed its checksum and committed a
// validated fix; every other byte returns false.
func (d *Decoder) Feed(b byte) bool {
	d.encodedBytes++

	switch b {
	case ',':
		// field separators are covered by the checksum
		d.parity ^= b
		fallthrough
	case '\r', '\n', '*':
		d.term[d.termLen] = 0
		committed := d.termComplete()
		d.termNumber++
		d.termLen = 0
		d.inChecksum = b == '*'
		return committed

	case '$':
		d.termNumber = 0
		d.termLen = 0
		d.parity = 0
		d.sentType = sentOther
		d.inChecksum = false
		d.dataGood = false
		return false
	}

	if d.termLen < termSize-1 {
		d.term[d.termLen] = b
		d.termLen++
	}
	if !d.inChecksum {
		d.parity ^= b
	}
	return false
}

// FeedBytes feeds a chunk byte by byte and reports whether any byte in the
// chunk committed a validated fix. Chunk boundaries never affect the result.
func (d *Decoder) FeedBytes(p []byte) bool {
	committed := false
	for _, b := range p {
		if d.Feed(b) {
			committed = true
		}
	}
	return committed
}

// FeedString is FeedBytes for string input; convenient in tests.
func (d *Decoder) FeedString(s string) bool {
	committed := false
	for i := 0; i < len(s); i++ {
		if d.Feed(s[i]) {
			committed = true
		}
	}
	return committed
}

// termComplete handles a just-terminated field: checksum comparison when in
// the checksum trailer, sentence classification on field 0, otherwise field
// dispatch. Returns true only when the checksum trailer validated a
// sentence and its fields were committed.
func (d *Decoder) termComplete() bool {
	if d.inChecksum {
		sum := byte(16*fromHex(d.term[0]) + fromHex(d.term[1]))
		if sum != d.parity {
			d.failedChecksum++
			return false
		}
		return d.commit()
	}

	if d.termNumber == 0 {
		d.classify()
		return false
	}

	// PUBX sub-format is chosen by the field after the sentence id.
	if d.sentType == sentPUBX && d.termNumber == 1 {
		d.ubxType = uint32(atol(d.term[:d.termLen]))
		return false
	}

	if d.sentType != sentOther && d.termLen > 0 {
		d.dispatch()
	}
	return false
}

func (d *Decoder) classify() {
	switch string(d.term[:d.termLen]) {
	case "GPRMC", "GNRMC":
		d.sentType = sentRMC
	case "GPGGA":
		d.sentType = sentGGA
	case "GNGNS":
		d.sentType = sentGNS
	case "GPGSA", "GNGSA":
		d.sentType = sentGSA
	case "GPGSV":
		d.sentType = sentGPGSV
	case "GLGSV":
		d.sentType = sentGLGSV
	case "GPZDA":
		d.sentType = sentZDA
	case "PUBX":
		d.sentType = sentPUBX
	default:
		d.sentType = sentOther
	}
}

// Dispatch keys combine the sentence tag and 0-based field index. PUBX
// sentences fold their sub-message number into the tag so that PUBX,00 and
// PUBX,04 have distinct rows. Field meanings follow NMEA-0183 and the
// u-blox PUBX description; the table is the contract.
func combine(tag uint32, term uint8) uint32 { return tag<<5 | uint32(term) }

func ubx(msg uint32) uint32 { return uint32(sentPUBX)<<5 | msg }

func (d *Decoder) dispatch() {
	tag := uint32(d.sentType)
	if d.sentType == sentPUBX {
		tag = ubx(d.ubxType)
	}
	term := d.term[:d.termLen]

	switch combine(tag, d.termNumber) {
	case combine(uint32(sentRMC), 1), // time hhmmss.ss
		combine(uint32(sentGGA), 1),
		combine(uint32(sentGNS), 1),
		combine(uint32(sentZDA), 1),
		combine(ubx(0), 2),
		combine(ubx(4), 2):
		d.newTime = uint32(parseDecimal(term))
		d.newTimeFix = d.now()

	case combine(uint32(sentRMC), 2): // A=valid, V=void
		d.dataGood = term[0] == 'A'

	case combine(uint32(sentRMC), 3), // latitude ddmm.mmmm
		combine(uint32(sentGGA), 2),
		combine(uint32(sentGNS), 2),
		combine(ubx(0), 3):
		d.newLatitude = parseDegrees(term)
		d.newPosFix = d.now()

	case combine(uint32(sentRMC), 4), // N/S
		combine(uint32(sentGGA), 3),
		combine(uint32(sentGNS), 3),
		combine(ubx(0), 4):
		if term[0] == 'S' {
			d.newLatitude = -d.newLatitude
		}

	case combine(uint32(sentRMC), 5), // longitude dddmm.mmmm
		combine(uint32(sentGGA), 4),
		combine(uint32(sentGNS), 4),
		combine(ubx(0), 5):
		d.newLongitude = parseDegrees(term)

	case combine(uint32(sentRMC), 6), // E/W
		combine(uint32(sentGGA), 5),
		combine(uint32(sentGNS), 5),
		combine(ubx(0), 6):
		if term[0] == 'W' {
			d.newLongitude = -d.newLongitude
		}

	case combine(uint32(sentGNS), 6): // constellation tag, up to 5 chars
		n := copy(d.constellations[:], term)
		d.constellationLen = uint8(n)

	case combine(uint32(sentRMC), 7), // speed over ground, knots
		combine(ubx(0), 11):
		d.newSpeed = uint32(parseDecimal(term))

	case combine(uint32(sentRMC), 8), // course over ground, degrees
		combine(ubx(0), 12):
		d.newCourse = uint32(parseDecimal(term))

	case combine(uint32(sentRMC), 9), // date ddmmyy
		combine(ubx(4), 3):
		d.newDate = uint32(atol(term))

	case combine(uint32(sentZDA), 2): // day
		d.newDay = uint32(atol(term))
		d.newDateFix = d.now()

	case combine(uint32(sentZDA), 3): // month
		d.newMonth = uint32(atol(term))
		d.newDateFix = d.now()

	case combine(uint32(sentZDA), 4): // full year
		d.newYear = uint32(atol(term))
		d.newDateFix = d.now()

	case combine(uint32(sentGGA), 6): // fix quality, 0 = no fix
		d.dataGood = term[0] > '0'

	case combine(uint32(sentGGA), 7), // satellites used
		combine(uint32(sentGNS), 7),
		combine(ubx(0), 18):
		d.newNumSats = uint8(atol(term))

	case combine(uint32(sentGGA), 8), // hdop
		combine(ubx(0), 15):
		d.newHDOP = uint32(parseDecimal(term))

	case combine(uint32(sentGGA), 9), // altitude, meters
		combine(ubx(0), 7):
		d.newAltitude = parseDecimal(term)

	case combine(ubx(0), 8): // nav status: G2/G3/D2/D3 good, DR/NF/TT not
		d.dataGood = term[0] == 'G' || (term[0] == 'D' && d.term[1] != 'R')

	case combine(uint32(sentGPGSV), 2), // continuation sequence number
		combine(uint32(sentGLGSV), 2):
		d.gsvSequence(term)

	case combine(uint32(sentGPGSV), 4), // PRN, one per 4-satellite block
		combine(uint32(sentGPGSV), 8),
		combine(uint32(sentGPGSV), 12),
		combine(uint32(sentGPGSV), 16),
		combine(uint32(sentGLGSV), 4),
		combine(uint32(sentGLGSV), 8),
		combine(uint32(sentGLGSV), 12),
		combine(uint32(sentGLGSV), 16):
		d.pendingPRN = int(atol(term))

	case combine(uint32(sentGPGSV), 7), // SNR dB; 0 clears the slot
		combine(uint32(sentGPGSV), 11),
		combine(uint32(sentGPGSV), 15),
		combine(uint32(sentGPGSV), 19),
		combine(uint32(sentGLGSV), 7),
		combine(uint32(sentGLGSV), 11),
		combine(uint32(sentGLGSV), 15),
		combine(uint32(sentGLGSV), 19):
		d.gsvStrength(term)
	}
}

// commit publishes the staged fields of a checksum-valid sentence.
//
// Time and date from RMC and PUBX,04 are published even when the sentence
// reports no fix; ZDA always publishes its full-year date. The rest of the
// staged fields are published only when the sentence's own validity
// indicator marked the data good. Fields a sentence type does not carry are
// left as previously published.
func (d *Decoder) commit() bool {
	if d.sentType == sentRMC || (d.sentType == sentPUBX && d.ubxType == 4) {
		d.time = d.newTime
		d.date = d.newDate
		d.lastTimeFix = d.newTimeFix
	}

	if d.sentType == sentZDA {
		d.time = d.newTime
		d.lastTimeFix = d.newTimeFix
		d.day = d.newDay
		d.month = d.newMonth
		d.year = d.newYear
		d.lastDateFix = d.newDateFix
	}

	if !d.dataGood {
		return false
	}

	d.goodSentences++
	d.lastTimeFix = d.newTimeFix
	d.lastPosFix = d.newPosFix

	switch d.sentType {
	case sentRMC:
		d.time = d.newTime
		d.date = d.newDate
		d.latitude = d.newLatitude
		d.longitude = d.newLongitude
		d.speed = d.newSpeed
		d.course = d.newCourse
	case sentGGA:
		d.altitude = d.newAltitude
		d.time = d.newTime
		d.latitude = d.newLatitude
		d.longitude = d.newLongitude
		d.numSats = d.newNumSats
		d.hdop = d.newHDOP
	case sentPUBX:
		if d.ubxType == 0 {
			d.time = d.newTime
			d.latitude = d.newLatitude
			d.longitude = d.newLongitude
			d.speed = d.newSpeed
			d.course = d.newCourse
			d.altitude = d.newAltitude
			d.numSats = d.newNumSats
			d.hdop = d.newHDOP
		}
	}
	return true
}

func (d *Decoder) age(last uint32) uint32 {
	if last == InvalidFixTime {
		return InvalidAge
	}
	return d.now() - last
}
