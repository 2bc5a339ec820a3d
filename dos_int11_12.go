// dos_int11_12.go - INT 11h equipment list, INT 12h memory size
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

// equipmentWord reports: bit 0 = floppy installed, bit 1 = FPU installed,
// bits 4-5 = 10b (80x25 color initial video mode), bits 6-7 = 00b (one
// floppy drive, stored as count-1).
const equipmentWord = 0x0023

func hleINT11(c *CPU_X86) {
	c.SetAX(equipmentWord)
}

func hleINT12(c *CPU_X86) {
	c.SetAX(640) // KiB of conventional memory
}
