// dos_int16.go - INT 16h keyboard services
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

// hleINT16 implements the blocking/non-blocking read and shift-state
// query a DOS program polls the keyboard through. AH=00/10 is the
// "blocking" form; since this machine has no real blocking primitive
// inside a cooperative Step() loop, an empty queue rewinds the guest's
// return IP by 2 bytes so the same INT 16h instruction re-executes next
// batch, exactly as spec.md's concurrency model describes.
func hleINT16(c *CPU_X86) {
	kbd := c.keyboardOrNil()

	switch c.AH() {
	case 0x00, 0x10: // blocking read
		if kbd == nil {
			c.SetAX(0)
			return
		}
		sc, ascii, ok := kbd.PopKey()
		if !ok {
			c.rewindReturnIP(-2)
			return
		}
		c.SetAH(sc)
		c.SetAL(ascii)

	case 0x01, 0x11: // non-blocking peek
		if kbd == nil {
			c.setFlag(x86FlagZF, true)
			return
		}
		sc, ascii, ok := kbd.PeekKey()
		if !ok {
			c.setFlag(x86FlagZF, true)
			return
		}
		c.SetAH(sc)
		c.SetAL(ascii)
		c.setFlag(x86FlagZF, false)

	case 0x02: // get shift flags
		c.SetAL(c.bus.Read(bdaKeyboardFlags))

	case 0x05: // push key (BIOS buffer-full simulation)
		if kbd == nil {
			c.SetAL(1)
			return
		}
		kbd.PushKey(c.CH(), c.CL())
		c.SetAL(0)

	default:
		c.setFlag(x86FlagZF, true)
	}
}

func (c *CPU_X86) keyboardOrNil() *KeyboardController {
	mb := c.machineBus()
	if mb == nil {
		return nil
	}
	return mb.Keyboard()
}
