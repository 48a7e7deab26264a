// Package sim generates a deterministic NMEA byte stream for development
// and testing without a receiver: a circular track around a configured
// center, emitted as checksummed RMC, GGA and GSV sentences.
package sim

import (
	"fmt"
	"math"
	"time"
)

type Config struct {
	CenterLatDeg float64
	CenterLonDeg float64
	RadiusNm     float64
	Period       time.Duration
	GroundKt     int
}

// Position returns the simulated position and course at the given time:
// a circle of RadiusNm around the center, one revolution per Period.
func (c Config) Position(now time.Time) (latDeg, lonDeg, courseDeg float64) {
	period := c.Period
	if period <= 0 {
		period = 120 * time.Second
	}
	radiusNm := c.RadiusNm
	if radiusNm <= 0 {
		radiusNm = 0.5
	}
	radiusDeg := radiusNm / 60.0 // ~60 NM per degree of latitude

	phase := float64(now.UnixNano()%period.Nanoseconds()) / float64(period.Nanoseconds())
	w := 2 * math.Pi * phase

	latDeg = c.CenterLatDeg + radiusDeg*math.Sin(w)
	cosLat := math.Cos(c.CenterLatDeg * math.Pi / 180)
	if cosLat < 0.05 {
		cosLat = 0.05
	}
	lonDeg = c.CenterLonDeg + radiusDeg*math.Cos(w)/cosLat

	// tangent of a counter-clockwise circle traversed north-first
	courseDeg = math.Mod(360-phase*360+360, 360)
	return latDeg, lonDeg, courseDeg
}

// Sentences composes one batch of sentences (RMC, GGA, GSV) for the given
// instant, each with a valid checksum and CRLF terminator.
func (c Config) Sentences(now time.Time) []string {
	lat, lon, course := c.Position(now)
	hhmmss := now.UTC().Format("150405")
	ddmmyy := now.UTC().Format("020106")

	kt := c.GroundKt
	if kt <= 0 {
		kt = 30
	}

	latDM, ns := degreesToDM(lat, false)
	lonDM, ew := degreesToDM(lon, true)

	rmc := fmt.Sprintf("GPRMC,%s.00,A,%s,%c,%s,%c,%05.1f,%05.1f,%s,,",
		hhmmss, latDM, ns, lonDM, ew, float64(kt), course, ddmmyy)
	gga := fmt.Sprintf("GPGGA,%s.00,%s,%c,%s,%c,1,08,0.9,120.0,M,46.9,M,,",
		hhmmss, latDM, ns, lonDM, ew)
	// a stable set of tracked satellites; SNR wobbles with the second
	snr := 38 + now.Second()%5
	gsv := fmt.Sprintf("GPGSV,1,1,04,05,60,120,%02d,12,45,200,%02d,19,30,280,%02d,24,15,040,%02d",
		snr, snr+2, snr-3, snr+1)

	return []string{frame(rmc), frame(gga), frame(gsv)}
}

// frame wraps a payload with '$', the XOR checksum trailer and CRLF.
func frame(payload string) string {
	ck := byte(0)
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return fmt.Sprintf("$%s*%02X\r\n", payload, ck)
}

// degreesToDM renders decimal degrees as NMEA ddmm.mmmm (or dddmm.mmmm
// for longitude) plus the hemisphere letter.
func degreesToDM(deg float64, isLon bool) (string, byte) {
	hemi := byte('N')
	if isLon {
		hemi = 'E'
	}
	if deg < 0 {
		deg = -deg
		if isLon {
			hemi = 'W'
		} else {
			hemi = 'S'
		}
	}
	whole := int(deg)
	minutes := (deg - float64(whole)) * 60
	if isLon {
		return fmt.Sprintf("%03d%07.4f", whole, minutes), hemi
	}
	return fmt.Sprintf("%02d%07.4f", whole, minutes), hemi
}
