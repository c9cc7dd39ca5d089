package sor

import "encoding/binary"

// sorBuilder assembles a synthetic SOR byte buffer one block at a time,
// mirroring the hand-built-buffer style of createMockPacket in the lidar
// packet parser tests this package is modeled on.
type sorBuilder struct {
	blocks []sorBlock
}

type sorBlock struct {
	name    string
	version uint16
	data    []byte
}

func (b *sorBuilder) addBlock(name string, version uint16, data []byte) {
	b.blocks = append(b.blocks, sorBlock{name: name, version: version, data: data})
}

// build assembles the Map block header followed by every added block's raw
// bytes, in the order they were added.
func (b *sorBuilder) build(mapVersion uint16) []byte {
	var mapBody []byte
	for _, blk := range b.blocks {
		mapBody = appendCString(mapBody, blk.name)
		mapBody = appendU16(mapBody, blk.version)
		mapBody = appendU32(mapBody, uint32(len(blk.data)))
	}

	var mapHeader []byte
	mapHeader = appendU16(mapHeader, mapVersion)
	if mapVersion < 200 {
		// placeholder for nbytes, patched below; num_blocks follows it.
		mapHeader = appendU32(mapHeader, 0)
		mapHeader = appendU16(mapHeader, uint16(len(b.blocks)))
	} else {
		mapHeader = appendU32(mapHeader, 0)
	}

	nbytes := uint32(len(mapHeader) + len(mapBody))
	binary.LittleEndian.PutUint32(mapHeader[2:6], nbytes)

	out := append([]byte{}, mapHeader...)
	out = append(out, mapBody...)
	for _, blk := range b.blocks {
		out = append(out, blk.data...)
	}
	return out
}

func appendU16(buf []byte, v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return append(buf, b...)
}

func appendU32(buf []byte, v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return append(buf, b...)
}

func appendI16(buf []byte, v int16) []byte { return appendU16(buf, uint16(v)) }
func appendI32(buf []byte, v int32) []byte { return appendU32(buf, uint32(v)) }

func appendCString(buf []byte, s string) []byte {
	buf = append(buf, []byte(s)...)
	return append(buf, 0x00)
}

// buildSupParams builds a SupParams block body from its seven strings.
func buildSupParams(fields [7]string) []byte {
	var b []byte
	for _, f := range fields {
		b = appendCString(b, f)
	}
	return b
}

// buildGenParams builds a GenParams block body. v2 controls whether the
// user_offset_distance_01m field is included.
func buildGenParams(v2 bool) []byte {
	var b []byte
	b = appendCString(b, "EN")
	b = appendCString(b, "CABLE-1")
	b = appendCString(b, "FIBER-1")
	b = appendU16(b, 652)
	b = appendU16(b, 1550)
	b = appendCString(b, "Site A")
	b = appendCString(b, "Site B")
	b = appendCString(b, "CC1")
	b = append(b, []byte("BC")...)
	b = appendI32(b, 0)
	if v2 {
		b = appendI32(b, 0)
	}
	b = appendCString(b, "operator1")
	b = appendCString(b, "a comment")
	return b
}

// buildFxdParams builds a minimal FxdParams block body with one pulse
// width entry.
func buildFxdParams(v2 bool, groupIndexRaw uint32) []byte {
	var b []byte
	b = appendU32(b, 1700000000) // epoch seconds
	b = append(b, []byte("mt")...)
	b = appendU16(b, 1550) // actual wavelength
	b = appendI32(b, 0)    // acquisition offset
	if v2 {
		b = appendI32(b, 0)
	}
	b = appendU16(b, 1) // num_pulse_widths
	b = appendU16(b, 10000)
	b = appendU32(b, 10000)
	b = appendU32(b, 20000)
	b = appendU32(b, groupIndexRaw)
	b = appendU16(b, 800) // backscatter raw
	b = appendU32(b, 3)   // num averages
	b = appendU16(b, 30)  // averaging time s
	b = appendU32(b, 200000000)
	if v2 {
		b = appendI32(b, 0)
	}
	b = appendI32(b, 0)   // front panel offset
	b = appendU16(b, 100) // noise floor level
	b = appendU16(b, 1)   // noise floor scale
	b = appendU16(b, 0)   // power offset first point
	b = appendU16(b, 50)  // loss threshold raw
	b = appendU16(b, 50)  // reflectance threshold raw
	b = appendU16(b, 3000)
	if v2 {
		b = append(b, []byte("ST")...)
	}
	return b
}

// buildKeyEvents builds a KeyEvents block with n events and an optional
// trailing summary.
func buildKeyEvents(v2 bool, n int, withSummary bool) []byte {
	var b []byte
	b = appendU16(b, uint16(n))
	for i := 0; i < n; i++ {
		b = appendU16(b, uint16(i+1))
		b = appendU32(b, uint32(1000000*(i+1)))
		b = appendI16(b, -200)
		b = appendI16(b, -30)
		b = appendI32(b, -25000)
		b = append(b, []byte("1F000000")...)
		if v2 {
			for j := 0; j < 5; j++ {
				b = appendU32(b, 0)
			}
		}
		b = appendCString(b, "")
	}
	if withSummary {
		b = appendU32(b, 1234) // total loss
		b = appendI32(b, 0)    // fiber start position
		b = appendU32(b, 5000000)
		if v2 {
			b = appendI32(b, 0)
		}
		b = appendU16(b, 25000)
	}
	return b
}

// buildDataPts builds a DataPts block summary with no sample data.
func buildDataPts(numDataPoints uint32, numTraces uint16) []byte {
	var b []byte
	b = appendU32(b, numDataPoints)
	b = appendU16(b, numTraces)
	return b
}
