// Package nmea is a streaming NMEA-0183 decoder for GNSS receivers.
//
// It consumes the raw serial byte stream one byte at a time and keeps the
// most recently validated fix in fixed-size state: no allocation while
// decoding, no buffering of whole sentences. It is aimed at the usual
// u-blox style output:
//   - RMC/GNRMC, GGA for position/velocity/time
//   - GNGNS, GSA/GNGSA, GPZDA
//   - GPGSV/GLGSV satellites-in-view (tracked in a 24-slot packed table)
//   - PUBX,00 and PUBX,04 proprietary sentences
//
// A Decoder is not safe for concurrent use; feed it from one goroutine.
package nmea
