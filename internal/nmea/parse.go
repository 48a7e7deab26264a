package nmea

// The field parsers below work on the raw bytes of a single field and stop
// at the first byte they do not understand; NMEA fields are short enough
// that error reporting buys nothing over the sentinel model.

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func fromHex(b byte) int {
	switch {
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b - '0')
	}
}

// atol parses a run of leading decimal digits; anything else ends the
// number. An empty or non-numeric field yields 0.
func atol(term []byte) int32 {
	var v int32
	for _, b := range term {
		if !isDigit(b) {
			break
		}
		v = 10*v + int32(b-'0')
	}
	return v
}

// parseDecimal parses an optionally signed decimal field into hundredths.
// At most two fractional digits are honored; "084.4" yields 8440 and a
// field with no fractional part is always a multiple of 100.
func parseDecimal(term []byte) int32 {
	i := 0
	neg := len(term) > 0 && term[0] == '-'
	if neg {
		i++
	}
	v := 100 * atol(term[i:])
	for i < len(term) && isDigit(term[i]) {
		i++
	}
	if i < len(term) && term[i] == '.' {
		if i+1 < len(term) && isDigit(term[i+1]) {
			v += 10 * int32(term[i+1]-'0')
			if i+2 < len(term) && isDigit(term[i+2]) {
				v += int32(term[i+2] - '0')
			}
		}
	}
	if neg {
		return -v
	}
	return v
}

// parseDegrees converts a ddmm.mmmm (or dddmm.mmmm) field into millionths
// of a degree: the last two integer digits plus the fraction are minutes,
// scaled to hundred-thousandths and divided by 6 with +3 rounding.
// Hemisphere negation is applied by the caller.
func parseDegrees(term []byte) int32 {
	left := uint32(atol(term))
	minutes := (left % 100) * 100000
	i := 0
	for i < len(term) && isDigit(term[i]) {
		i++
	}
	if i < len(term) && term[i] == '.' {
		mult := uint32(10000)
		for i++; i < len(term) && isDigit(term[i]); i++ {
			minutes += mult * uint32(term[i]-'0')
			mult /= 10
		}
	}
	return int32(left/100*1000000 + (minutes+3)/6)
}
