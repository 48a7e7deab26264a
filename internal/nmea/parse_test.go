package nmea

import "testing"

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"084.4", 8440},
		{"022.4", 2240},
		{"0.9", 90},
		{"545.4", 54540},
		{"123519", 12351900},
		{"160012.71", 16001271},
		{"3.14159", 314}, // third and later fractional digits ignored
		{"-12.5", -1250},
		{"7", 700},
		{"", 0},
	}
	for _, c := range cases {
		if got := parseDecimal([]byte(c.in)); got != c.want {
			t.Fatalf("parseDecimal(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseDegrees(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"4807.038", 48117300},
		{"01131.000", 11516667},
		{"3751.65", 37860833},
		{"14507.36", 145122667},
		{"0000.000", 0},
	}
	for _, c := range cases {
		if got := parseDegrees([]byte(c.in)); got != c.want {
			t.Fatalf("parseDegrees(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAtol(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"230394", 230394},
		{"08", 8},
		{"12abc", 12},
		{"", 0},
		{"x", 0},
	}
	for _, c := range cases {
		if got := atol([]byte(c.in)); got != c.want {
			t.Fatalf("atol(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFromHex(t *testing.T) {
	cases := []struct {
		in   byte
		want int
	}{
		{'0', 0}, {'9', 9}, {'A', 10}, {'F', 15}, {'a', 10}, {'f', 15},
	}
	for _, c := range cases {
		if got := fromHex(c.in); got != c.want {
			t.Fatalf("fromHex(%c) = %d, want %d", c.in, got, c.want)
		}
	}
}
