package nmea

// Speed conversion factors from knots.
const (
	mphPerKnot  = 1.15077945
	mpsPerKnot  = 0.51444444
	kmphPerKnot = 1.852
)

// Position returns latitude and longitude in millionths of a degree
// (signed) and the age of the position fix in milliseconds. InvalidAngle /
// InvalidAge are returned before the first validated fix.
func (d *Decoder) Position() (lat, lon int32, age uint32) {
	return d.latitude, d.longitude, d.age(d.lastPosFix)
}

// DateTime returns the date as ddmmyy, the UTC time as hhmmsscc, and the
// age of the time fix in milliseconds.
func (d *Decoder) DateTime() (date, tod uint32, age uint32) {
	return d.date, d.time, d.age(d.lastTimeFix)
}

// CrackDateTime splits DateTime into calendar components. Two-digit years
// above 80 are mapped into the 1900s, the rest into the 2000s.
func (d *Decoder) CrackDateTime() (year int, month, day, hour, minute, second, hundredths uint8, age uint32) {
	date, tod, age := d.DateTime()
	year = int(date % 100)
	if year > 80 {
		year += 1900
	} else {
		year += 2000
	}
	month = uint8(date / 100 % 100)
	day = uint8(date / 10000)
	hour = uint8(tod / 1000000)
	minute = uint8(tod / 10000 % 100)
	second = uint8(tod / 100 % 100)
	hundredths = uint8(tod % 100)
	return year, month, day, hour, minute, second, hundredths, age
}

// CalendarDateTime reports the full-year date tracked from ZDA sentences
// together with the cracked time of day. Its age is that of the date fix,
// which only ZDA updates; receivers that never emit ZDA report InvalidAge
// here and a zero date.
func (d *Decoder) CalendarDateTime() (year int, month, day, hour, minute, second, hundredths uint8, age uint32) {
	year = int(d.year)
	month = uint8(d.month)
	day = uint8(d.day)
	hour = uint8(d.time / 1000000)
	minute = uint8(d.time / 10000 % 100)
	second = uint8(d.time / 100 % 100)
	hundredths = uint8(d.time % 100)
	return year, month, day, hour, minute, second, hundredths, d.age(d.lastDateFix)
}

// Altitude returns the last GGA/PUBX altitude in signed centimeters.
func (d *Decoder) Altitude() int32 { return d.altitude }

// Course returns the course over ground in hundredths of a degree.
func (d *Decoder) Course() uint32 { return d.course }

// Speed returns the speed over ground in hundredths of a knot.
func (d *Decoder) Speed() uint32 { return d.speed }

// Satellites returns the satellite count from the last committed sentence
// carrying one (GGA or PUBX,00).
func (d *Decoder) Satellites() uint8 { return d.numSats }

// HDOP returns the horizontal dilution of precision in hundredths.
func (d *Decoder) HDOP() uint32 { return d.hdop }

// Constellations returns the GNGNS constellation tag (up to five
// characters), or "" if none has been seen.
func (d *Decoder) Constellations() string {
	return string(d.constellations[:d.constellationLen])
}

// Stats reports decoder counters: bytes fed, sentences committed with good
// data, and checksum failures.
func (d *Decoder) Stats() (bytes uint64, goodSentences, failedChecksum uint32) {
	return d.encodedBytes, d.goodSentences, d.failedChecksum
}

// PositionFloat is Position in decimal degrees.
func (d *Decoder) PositionFloat() (lat, lon float64, age uint32) {
	la, lo, age := d.Position()
	if la == InvalidAngle {
		return InvalidFAngle, InvalidFAngle, age
	}
	return float64(la) / 1000000.0, float64(lo) / 1000000.0, age
}

// AltitudeMeters is Altitude in meters.
func (d *Decoder) AltitudeMeters() float64 {
	if d.altitude == InvalidAltitude {
		return InvalidFAltitude
	}
	return float64(d.altitude) / 100.0
}

// CourseDegrees is Course in degrees.
func (d *Decoder) CourseDegrees() float64 {
	if d.course == InvalidCourse {
		return InvalidFAngle
	}
	return float64(d.course) / 100.0
}

// SpeedKnots is Speed in knots.
func (d *Decoder) SpeedKnots() float64 {
	if d.speed == InvalidSpeed {
		return InvalidFSpeed
	}
	return float64(d.speed) / 100.0
}

// SpeedMPH is Speed in statute miles per hour.
func (d *Decoder) SpeedMPH() float64 {
	kt := d.SpeedKnots()
	if kt == InvalidFSpeed {
		return InvalidFSpeed
	}
	return kt * mphPerKnot
}

// SpeedMPS is Speed in meters per second.
func (d *Decoder) SpeedMPS() float64 {
	kt := d.SpeedKnots()
	if kt == InvalidFSpeed {
		return InvalidFSpeed
	}
	return kt * mpsPerKnot
}

// SpeedKMPH is Speed in kilometers per hour.
func (d *Decoder) SpeedKMPH() float64 {
	kt := d.SpeedKnots()
	if kt == InvalidFSpeed {
		return InvalidFSpeed
	}
	return kt * kmphPerKnot
}

// Fix is the full published decoder state in one struct, fixed-point units
// as in the individual accessors.
type Fix struct {
	Time uint32 // hhmmsscc
	Date uint32 // ddmmyy

	Latitude  int32 // millionths of a degree
	Longitude int32
	Altitude  int32 // centimeters

	Speed  uint32 // hundredths of a knot
	Course uint32 // hundredths of a degree
	HDOP   uint32 // hundredths

	Satellites     uint8
	Constellations string

	Year  int // full year from ZDA, 0 if never seen
	Month uint8
	Day   uint8

	TimeAge     uint32 // ms, InvalidAge when never fixed
	PositionAge uint32
	DateAge     uint32
}

// Snapshot returns the whole published state at once; callers pick the
// fields they care about.
func (d *Decoder) Snapshot() Fix {
	return Fix{
		Time:           d.time,
		Date:           d.date,
		Latitude:       d.latitude,
		Longitude:      d.longitude,
		Altitude:       d.altitude,
		Speed:          d.speed,
		Course:         d.course,
		HDOP:           d.hdop,
		Satellites:     d.numSats,
		Constellations: d.Constellations(),
		Year:           int(d.year),
		Month:          uint8(d.month),
		Day:            uint8(d.day),
		TimeAge:        d.age(d.lastTimeFix),
		PositionAge:    d.age(d.lastPosFix),
		DateAge:        d.age(d.lastDateFix),
	}
}
