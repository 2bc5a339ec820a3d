// dos_int20_28_2f_33.go - program terminate, idle, shell dispatch, mouse absent
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

// hleINT20 is the original DOS program-terminate trap (every PSP's byte
// 0 is "CD 20" so a COM program can just RET into it). Equivalent to
// INT 21h AH=4Ch with an implicit exit code of 0.
func hleINT20(c *CPU_X86) {
	c.RebootShell = true
	c.Halted = true
}

// hleINT28 is the DOS idle interrupt, polled by TSRs waiting for the
// keyboard to go quiet; nothing here hooks it, so it's a pure no-op.
func hleINT28(c *CPU_X86) {
}

// hleINT2F is the multiplex back-door the built-in mini-shell uses to
// hand an edited command line to the host: AX on entry holds a
// shell-private function number (AH=0xFE by convention here, since real
// DOS reserves most of the 2Fh multiplex space for TSR identification),
// DS:DX points at a zero-terminated command string. The service copies
// it into the CPU's pending-shell-command slot for the main loop to pick
// up between batches; everything else reports "not installed" (AL=0)
// the way an unclaimed multiplex function should.
func hleINT2F(c *CPU_X86) {
	switch c.AH() {
	case 0xFE:
		addr := physAddr(c.DS, c.DX())
		c.PendingShellCommand = readCString(c.bus, addr, 127)
	case 0x16, 0x43: // Windows and XMS "are you there" probes
		c.SetAL(0)
	default:
		c.SetAL(0)
	}
}

// hleINT33 is the mouse driver detection call: AX=0 on entry asks "is a
// mouse driver installed", and reporting AX=0 back means "no".
func hleINT33(c *CPU_X86) {
	c.SetAX(0)
}
