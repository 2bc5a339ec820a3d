// dos_int10.go - INT 10h video services
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

// hleINT10 implements the video-services subset a DOS-era game or tool
// actually calls: mode switch, cursor get/set, teletype output, and
// enough VBE/EGA-info stubbing that probes fall through to "not
// supported" instead of crashing.
func hleINT10(c *CPU_X86) {
	vga := c.vgaOrNil()
	switch c.AH() {
	case 0x00: // set video mode
		if vga != nil {
			vga.SetVideoMode(c.AL())
		}
		c.bus.Write(bdaVideoMode, c.AL())
		c.bus.Write(bdaVideoCols, 80)

	case 0x01: // set cursor type: CH=start scan line, CL=end scan line
		busWrite16(c.bus, bdaCursorShape, c.CX())

	case 0x02: // set cursor position: BH=page, DH=row, DL=col
		page := uint32(c.BH()) & 0x07
		c.bus.Write(bdaCursorPos+2*page, c.DL())
		c.bus.Write(bdaCursorPos+2*page+1, c.DH())

	case 0x03: // get cursor position/shape
		page := uint32(c.BH()) & 0x07
		col := c.bus.Read(bdaCursorPos + 2*page)
		row := c.bus.Read(bdaCursorPos + 2*page + 1)
		c.SetDL(col)
		c.SetDH(row)
		c.SetCX(busRead16(c.bus, bdaCursorShape))

	case 0x05: // set active display page
		c.bus.Write(bdaActivePage, c.AL())

	case 0x06: // scroll window up
		scrollTextWindow(c, true)

	case 0x07: // scroll window down
		scrollTextWindow(c, false)

	case 0x09: // write char+attribute, CX times, cursor unmoved
		writeCharAttrN(c, c.AL(), c.BL(), int(c.CX()))

	case 0x0E: // teletype output
		teletypeOutput(c, c.AL())

	case 0x0F: // get video mode
		c.SetAL(c.bus.Read(bdaVideoMode))
		c.SetAH(c.bus.Read(bdaVideoCols))
		c.SetBH(c.bus.Read(bdaActivePage))

	case 0x11, 0x12, 0x1B: // EGA/VGA info / palette-loading sub-functions
		c.SetAL(0) // "function not supported" on most sub-calls
		c.setFlag(x86FlagCF, true)

	case 0x4F: // VESA BIOS extensions
		c.SetAL(0x4F) // function is recognized...
		c.SetAH(0x01) // ...but "call failed" (no VBE modes offered)

	default:
		c.setFlag(x86FlagCF, true)
	}
}

func (c *CPU_X86) vgaOrNil() *VGAEngine {
	mb := c.machineBus()
	if mb == nil {
		return nil
	}
	return mb.VGA()
}

// teletypeOutput implements AH=0Eh: CR/LF/BS/BEL handling, otherwise a
// plain character-and-attribute write at the cursor followed by cursor
// advance with wrap and scroll-on-bottom-row.
func teletypeOutput(c *CPU_X86, ch byte) {
	page := uint32(c.bus.Read(bdaActivePage)) & 0x07
	col := uint32(c.bus.Read(bdaCursorPos + 2*page))
	row := uint32(c.bus.Read(bdaCursorPos + 2*page + 1))

	switch ch {
	case '\r':
		col = 0
	case '\n':
		row++
	case 0x08: // backspace
		if col > 0 {
			col--
		}
	case 0x07: // bell; no host audio path wired for it, just swallow it
	default:
		addr := memVGAText + row*80*2 + col*2
		c.bus.Write(addr, ch)
		c.bus.Write(addr+1, 0x07) // light grey on black, BIOS default
		col++
		if col >= 80 {
			col = 0
			row++
		}
	}

	if row >= 25 {
		scrollTextWindow(c, true)
		row = 24
	}

	c.bus.Write(bdaCursorPos+2*page, byte(col))
	c.bus.Write(bdaCursorPos+2*page+1, byte(row))
}

// writeCharAttrN implements AH=09h: repeat a (char, attribute) pair CX
// times starting at the current cursor cell, without moving the cursor.
func writeCharAttrN(c *CPU_X86, ch, attr byte, count int) {
	page := uint32(c.bus.Read(bdaActivePage)) & 0x07
	col := uint32(c.bus.Read(bdaCursorPos + 2*page))
	row := uint32(c.bus.Read(bdaCursorPos + 2*page + 1))
	addr := memVGAText + row*80*2 + col*2
	for i := 0; i < count && addr+1 < memVGATextE; i += 1 {
		c.bus.Write(addr, ch)
		c.bus.Write(addr+1, attr)
		addr += 2
	}
}

// scrollTextWindow implements AH=06h/07h with the common case (whole
// screen, blank fill attribute from BH); windowed scroll regions smaller
// than the full screen are not modeled.
func scrollTextWindow(c *CPU_X86, up bool) {
	fillAttr := c.BH()
	lines := 25
	const cols = 80
	rowBytes := uint32(cols * 2)

	if up {
		for row := 0; row < lines-1; row++ {
			src := memVGAText + uint32(row+1)*rowBytes
			dst := memVGAText + uint32(row)*rowBytes
			for i := uint32(0); i < rowBytes; i++ {
				c.bus.Write(dst+i, c.bus.Read(src+i))
			}
		}
		clearTextRow(c, lines-1, fillAttr)
	} else {
		for row := lines - 1; row > 0; row-- {
			src := memVGAText + uint32(row-1)*rowBytes
			dst := memVGAText + uint32(row)*rowBytes
			for i := uint32(0); i < rowBytes; i++ {
				c.bus.Write(dst+i, c.bus.Read(src+i))
			}
		}
		clearTextRow(c, 0, fillAttr)
	}
}

func clearTextRow(c *CPU_X86, row int, attr byte) {
	addr := memVGAText + uint32(row)*80*2
	for i := 0; i < 80; i++ {
		c.bus.Write(addr, ' ')
		c.bus.Write(addr+1, attr)
		addr += 2
	}
}
