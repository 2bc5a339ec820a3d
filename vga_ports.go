// vga_ports.go - real IBM VGA I/O port protocol on top of VGAEngine
//
// video_vga.go's HandleRead/HandleWrite address a simplified memory-mapped
// register block; actual DOS programs talk to VGA through index/data port
// pairs (3C4/3C5 Sequencer, 3CE/3CF Graphics Controller, 3D4/3D5 CRTC,
// 3C7-3C9 DAC, 3C0/3C1 Attribute Controller with its read/write flip-flop,
// 3DA Input Status 1). This file is that protocol, operating directly on
// the same register arrays HandleRead/HandleWrite already maintain.

package main

// InPort reads a VGA I/O port. Returns (value, true) if addr is a VGA port,
// (0, false) otherwise so the caller can fall through to the rest of the
// port-I/O table.
func (v *VGAEngine) InPort(port uint16) (byte, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch port {
	case VGA_PORT_SEQ_INDEX:
		return v.seqIndex, true
	case VGA_PORT_SEQ_DATA:
		return v.seqRegs[v.seqIndex%VGA_SEQ_REG_COUNT], true

	case VGA_PORT_GC_INDEX:
		return v.gcIndex, true
	case VGA_PORT_GC_DATA:
		return v.gcRegs[v.gcIndex%VGA_GC_REG_COUNT], true

	case VGA_PORT_CRTC_INDEX_COLOR, VGA_PORT_CRTC_INDEX_MONO:
		return v.crtcIndex, true
	case VGA_PORT_CRTC_DATA_COLOR, VGA_PORT_CRTC_DATA_MONO:
		return v.crtcRegs[v.crtcIndex%VGA_CRTC_REG_COUNT], true

	case VGA_PORT_ATTR_INDEX_DATA:
		return v.attrIndex, true
	case VGA_PORT_ATTR_READ:
		return v.attrRegs[v.attrIndex%VGA_ATTR_REG_COUNT], true

	case VGA_PORT_DAC_PIXEL_MASK:
		return v.dacMask, true
	case VGA_PORT_DAC_READ_INDEX:
		return v.dacReadIndex, true
	case VGA_PORT_DAC_WRITE_INDEX:
		return v.dacWriteIndex, true
	case VGA_PORT_DAC_DATA:
		return byte(v.readDACDataLocked()), true

	case VGA_PORT_STATUS_COLOR, VGA_PORT_STATUS_MONO:
		// Reading Input Status 1 resets the attribute controller's
		// index/data flip-flop back to "expecting index".
		v.attrFlip = false
		return v.statusRegLocked(), true

	case VGA_PORT_MISC_OUTPUT_R:
		return 0x01, true // color mode, CRTC at 0x3Dx, 28.322MHz clock
	}
	return 0, false
}

// OutPort writes a VGA I/O port. Returns true if addr is a VGA port.
func (v *VGAEngine) OutPort(port uint16, value byte) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch port {
	case VGA_PORT_SEQ_INDEX:
		v.seqIndex = value & 0x1F
	case VGA_PORT_SEQ_DATA:
		v.seqRegs[v.seqIndex%VGA_SEQ_REG_COUNT] = value

	case VGA_PORT_GC_INDEX:
		v.gcIndex = value & 0x0F
	case VGA_PORT_GC_DATA:
		v.gcRegs[v.gcIndex%VGA_GC_REG_COUNT] = value

	case VGA_PORT_CRTC_INDEX_COLOR, VGA_PORT_CRTC_INDEX_MONO:
		v.crtcIndex = value & 0x3F
	case VGA_PORT_CRTC_DATA_COLOR, VGA_PORT_CRTC_DATA_MONO:
		v.crtcRegs[v.crtcIndex%VGA_CRTC_REG_COUNT] = value

	case VGA_PORT_ATTR_INDEX_DATA:
		// First write after a flip-flop reset is the index (bit 5 also
		// gates the palette-source/blank state on real hardware; not
		// modeled here), the next is data for that index.
		if !v.attrFlip {
			v.attrIndex = value & 0x1F
			v.attrFlip = true
		} else {
			v.attrRegs[v.attrIndex%VGA_ATTR_REG_COUNT] = value
			v.attrFlip = false
		}

	case VGA_PORT_DAC_PIXEL_MASK:
		v.dacMask = value
	case VGA_PORT_DAC_READ_INDEX:
		v.dacReadIndex = value
		v.dacReadPhase = 0
	case VGA_PORT_DAC_WRITE_INDEX:
		v.dacWriteIndex = value
		v.dacWritePhase = 0
	case VGA_PORT_DAC_DATA:
		v.writeDACDataLocked(value)

	case VGA_PORT_MISC_OUTPUT_W:
		// Bit 0 selects color (1) vs mono (0) CRTC address decode; this
		// engine always answers on both aliases, so nothing to latch.

	default:
		return false
	}
	return true
}

// writeDACDataLocked/readDACDataLocked mirror writeDACData/readDACData but
// assume the caller already holds v.mu (InPort/OutPort take it once for
// the whole port access rather than recursively).
func (v *VGAEngine) writeDACDataLocked(value uint8) {
	value &= 0x3F
	idx := int(v.dacWriteIndex)*3 + int(v.dacWritePhase)
	if idx < len(v.palette) {
		v.palette[idx] = value
		v.paletteDirty = true
	}
	v.dacWritePhase++
	if v.dacWritePhase >= 3 {
		v.dacWritePhase = 0
		v.dacWriteIndex++
	}
}

func (v *VGAEngine) readDACDataLocked() uint32 {
	idx := int(v.dacReadIndex)*3 + int(v.dacReadPhase)
	var value uint8
	if idx < len(v.palette) {
		value = v.palette[idx]
	}
	v.dacReadPhase++
	if v.dacReadPhase >= 3 {
		v.dacReadPhase = 0
		v.dacReadIndex++
	}
	return uint32(value)
}

// statusRegLocked builds Input Status 1: bit 0 is "display disabled"
// (horizontal or vertical retrace in progress), bit 3 is vertical retrace.
// Both are derived from the same free-running frame clock HandleRead's
// VGA_STATUS case already uses, so the guest's "wait for vsync" polling
// loops observe the same cadence through either path.
func (v *VGAEngine) statusRegLocked() byte {
	var s byte
	if v.vsync.Load() {
		s |= 0x01 | 0x08
	}
	return s
}
