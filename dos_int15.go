// dos_int15.go - INT 15h system services
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

import "time"

func hleINT15(c *CPU_X86) {
	switch c.AH() {
	case 0x88: // extended memory size, KiB, AX
		c.SetAX(15360)
		c.setFlag(x86FlagCF, false)

	case 0x86: // wait CX:DX microseconds
		us := uint64(c.CX())<<16 | uint64(c.DX())
		time.Sleep(time.Duration(us) * time.Microsecond)
		c.setFlag(x86FlagCF, false)

	case 0xC0: // get system configuration table, ES:BX -> table
		addr := physAddr(c.ES, c.BX())
		// 8-byte minimal table: length(2)=08, model(1)=FC, submodel(1)=00,
		// BIOS revision(1)=00, feature byte 1(1)=0x40 (wait for ext int),
		// feature bytes 2-3(2)=0.
		busWrite16(c.bus, addr, 8)
		c.bus.Write(addr+2, 0xFC)
		c.bus.Write(addr+3, 0x00)
		c.bus.Write(addr+4, 0x00)
		c.bus.Write(addr+5, 0x40)
		c.bus.Write(addr+6, 0x00)
		c.bus.Write(addr+7, 0x00)
		c.SetAH(0x00)
		c.setFlag(x86FlagCF, false)

	default:
		c.SetAH(0x86) // "function not supported"
		c.setFlag(x86FlagCF, true)
	}
}
