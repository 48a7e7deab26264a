// Package geo holds small closed-form geodesy helpers on decimal degrees.
package geo

import "math"

// earthRadiusM is the sphere radius used for great-circle math. Earth is
// not a sphere; expect errors up to ~0.5%.
const earthRadiusM = 6372795.0

// DistanceBetween returns the great-circle distance in meters between two
// positions given as signed decimal degrees.
func DistanceBetween(lat1, lon1, lat2, lon2 float64) float64 {
	delta := radians(lon1 - lon2)
	sdlon := math.Sin(delta)
	cdlon := math.Cos(delta)
	lat1 = radians(lat1)
	lat2 = radians(lat2)
	slat1 := math.Sin(lat1)
	clat1 := math.Cos(lat1)
	slat2 := math.Sin(lat2)
	clat2 := math.Cos(lat2)
	d := clat1*slat2 - slat1*clat2*cdlon
	d = d * d
	d += clat2 * sdlon * clat2 * sdlon
	d = math.Sqrt(d)
	denom := slat1*slat2 + clat1*clat2*cdlon
	return math.Atan2(d, denom) * earthRadiusM
}

// CourseTo returns the initial bearing in degrees (north = 0, east = 90)
// from position 1 to position 2, both in signed decimal degrees.
func CourseTo(lat1, lon1, lat2, lon2 float64) float64 {
	dlon := radians(lon2 - lon1)
	lat1 = radians(lat1)
	lat2 = radians(lat2)
	a1 := math.Sin(dlon) * math.Cos(lat2)
	a2 := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	b := math.Atan2(a1, a2)
	if b < 0 {
		b += 2 * math.Pi
	}
	return degrees(b)
}

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Cardinal maps a course in degrees to its 16-wind compass label.
func Cardinal(course float64) string {
	i := int((course + 11.25) / 22.5)
	return cardinals[i%16]
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
