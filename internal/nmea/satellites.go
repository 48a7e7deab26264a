package nmea

// The tracked-satellite table has a fixed slot per satellite position
// reported by GSV: slots 0-11 for the GPS/WAAS constellation (GPGSV),
// slots 12-23 for GLONASS (GLGSV). Each non-zero entry is packed as
//
//	bits 0-7   satellite id (PRN)
//	bits 8-14  signal strength, dB (max 99)
//	bit  15    reserved: used-in-solution
//
// A zero entry means no satellite in that slot. The packed form is part of
// the public API (TrackedSatellites); Satellite is the unpacked view.
const (
	satTableSize     = 24
	satBlockSlots    = 12
	glonassSlotStart = 12
)

// Satellite is one decoded entry of the tracking table.
type Satellite struct {
	Slot int   // table slot, 0-23
	PRN  uint8 // satellite id
	SNR  uint8 // signal strength, dB
}

// gsvSequence handles the continuation-sequence field of a GSV sentence.
// The first sentence of a talker group zeroes that constellation's block
// before the group repopulates it; every sentence positions the 4-satellite
// window it carries.
func (d *Decoder) gsvSequence(term []byte) {
	seq := int(atol(term)) - 1
	if seq == 0 {
		start := 0
		if d.sentType == sentGLGSV {
			start = glonassSlotStart
		}
		for i := start; i < start+satBlockSlots; i++ {
			d.sats[i] = 0
		}
	}
	d.satBlockIndex = seq * 4
	if d.sentType == sentGLGSV {
		d.satBlockIndex += glonassSlotStart
	}
}

// gsvStrength records the SNR field of one satellite block, pairing it with
// the PRN seen earlier in the same block. Zero strength clears the slot.
// Slots outside the table (malformed sequence numbers) are dropped.
func (d *Decoder) gsvStrength(term []byte) {
	slot := d.satBlockIndex + int(d.termNumber-7)/4
	if slot < 0 || slot >= satTableSize {
		return
	}
	snr := uint32(atol(term))
	if snr == 0 {
		d.sats[slot] = 0
		return
	}
	d.sats[slot] = uint32(d.pendingPRN)&0xFF | (snr&0x7F)<<8
}

// TrackedSatellites returns the raw 24-entry packed table.
func (d *Decoder) TrackedSatellites() [satTableSize]uint32 {
	return d.sats
}

// SatellitesInView unpacks the non-empty table entries.
func (d *Decoder) SatellitesInView() []Satellite {
	out := make([]Satellite, 0, satTableSize)
	for i, rec := range d.sats {
		if rec == 0 {
			continue
		}
		out = append(out, Satellite{
			Slot: i,
			PRN:  uint8(rec & 0xFF),
			SNR:  uint8(rec >> 8 & 0x7F),
		})
	}
	return out
}
