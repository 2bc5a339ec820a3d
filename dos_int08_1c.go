// dos_int08_1c.go - INT 08h timer tick, INT 1Ah time-of-day, INT 1Ch user hook
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

import "time"

// bootTime anchors INT 1Ah AH=00h's tick count to wall-clock time: AH=00h
// reports ticks elapsed since this process started, not the BDA counter
// that hleINT08 and AH=01h maintain.
var bootTime = time.Now()

// hleINT08 is PIC IRQ0's landing pad: bump the BDA tick counter at the
// standard 18.2065 Hz cadence, roll the day-overflow flag at 1573040
// ticks (24h worth), then chain into INT 1Ch the way real BIOS does so a
// guest's TSR hook still runs once a tick.
func hleINT08(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		return
	}
	ticks := busRead32(c.bus, bdaTimerTicks)
	ticks++
	if ticks >= 0x1800B0 { // 1,573,040 ticks/day
		ticks = 0
		c.bus.Write(bdaTimerOverflow, 1)
	}
	busWrite32(c.bus, bdaTimerTicks, ticks)
	c.callChainedVector(0x1C)
}

// hleINT09 is PIC IRQ1's landing pad. The scancode is already sitting in
// KeyboardController's queue (the host input backend pushed it directly),
// so there's no 8042 handshake to emulate; this exists purely so guest
// code that hooks INT 09h itself still gets invoked once per keystroke.
func hleINT09(c *CPU_X86) {
	c.callChainedVector(0x09)
}

// callChainedVector re-enters the guest's own handler for vec, if it has
// installed one that differs from our HLE stub, by jumping CS:IP straight
// to it -- the frame dispatchHLE's caller already has on the stack (pushed
// by whatever delivered this interrupt, hardware IRQ or software INT
// alike) is left alone, since the guest handler's own IRET is what's
// supposed to pop it. Setting c.hleChained tells dispatchHLE to skip its
// own synthesized IRET so that frame isn't popped twice. If the guest
// never hooked vec (the IVT entry still points at our stub), this is a
// no-op and dispatchHLE's normal epilogue runs instead.
func (c *CPU_X86) callChainedVector(vec byte) {
	ivt := uint32(vec) * 4
	off := busRead16(c.bus, ivt)
	seg := busRead16(c.bus, ivt+2)
	if seg == hleBase {
		return // still points at our own stub, nothing to chain to
	}
	c.SetIP(off)
	c.CS = seg
	c.hleChained = true
}

func busRead32(bus X86Bus, addr uint32) uint32 {
	return uint32(busRead16(bus, addr)) | uint32(busRead16(bus, addr+2))<<16
}

// hleINT1A implements the time-of-day services: AH=00h returns the tick
// count derived from wall-clock elapsed time (so it agrees with whatever
// hleINT08 would have accumulated even if IF was never enabled to let the
// PIC-driven path run), AH=01h sets it, everything else reports "not
// supported" rather than touching a real-time clock this machine lacks.
func hleINT1A(c *CPU_X86) {
	switch c.AH() {
	case 0x00:
		elapsed := time.Since(bootTime)
		ticks := uint32(elapsed.Milliseconds()) * 182 / 10000
		c.SetCX(uint16(ticks >> 16))
		c.SetDX(uint16(ticks))
		c.bus.Write(bdaTimerOverflow, 0)
	case 0x01:
		ticks := uint32(c.CX())<<16 | uint32(c.DX())
		busWrite32(c.bus, bdaTimerTicks, ticks)
	default:
		c.setFlag(x86FlagCF, true)
	}
}

// hleINT1C is the user-hookable idle tick. By itself it does nothing; a
// guest that replaces its IVT entry gets chained to from hleINT08 via
// callChainedVector before this stub ever runs (InstallHLEVectors only
// claims the entry until the guest overwrites it).
func hleINT1C(c *CPU_X86) {
}
