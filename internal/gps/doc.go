// Package gps feeds a GNSS byte stream into the streaming NMEA decoder and
// publishes fix snapshots for the daemon's outward surfaces.
//
// The byte source is a serial receiver by default; replay and simulator
// feeds plug in through the same io.Reader seam. The decoder itself is
// single-threaded, so exactly one goroutine reads and feeds; consumers see
// an atomically swapped Snapshot.
package gps
