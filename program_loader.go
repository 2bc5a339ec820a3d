// program_loader.go - COM/MZ-EXE image loading and PSP construction
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

/*
program_loader.go turns a host file into a running guest program: a .COM
image is a flat binary dropped at offset 0x100 of its segment, an MZ .EXE
carries a header plus a relocation table that has to be walked and
applied before the entry point means anything. Both paths finish by
writing a PSP at the front of the segment and pointing CS:IP/SS:SP at the
image per spec's fixed convention -- 0x1000:0x100 for a top-level COM,
with EXEC (dos_int21.go) loading children at a different scratch segment
so a parent and its child don't collide in the same memory.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	comLoadSegment   = 0x1000
	comEntryOffset   = 0x0100
	comStackTop      = 0xFFFE
	pspEnvSegOffset  = 0x2C
	pspTopMemOffset  = 0x02
	pspCmdTailLenOff = 0x80
	pspCmdTailOff    = 0x81
	maxComSize       = 0xFF00 // 64 KiB segment minus PSP and a stack margin
)

// writePSP lays out the 256-byte Program Segment Prefix at the start of
// segment pspSeg: the INT 20h opcode every COM program can RET into,
// the paragraph one past the program's allocated memory, the inherited
// environment segment, and the verbatim command tail (decision (b) in
// the design ledger: no re-tokenization, just a length-prefixed copy).
func writePSP(bus X86Bus, pspSeg, topParagraph, envSeg uint16, cmdTail string) {
	base := physAddr(pspSeg, 0)
	bus.Write(base+0x00, 0xCD)
	bus.Write(base+0x01, 0x20)
	busWrite16(bus, base+pspTopMemOffset, topParagraph)
	busWrite16(bus, base+pspEnvSegOffset, envSeg)

	if len(cmdTail) > 126 {
		cmdTail = cmdTail[:126]
	}
	bus.Write(base+pspCmdTailLenOff, byte(len(cmdTail)))
	for i := 0; i < len(cmdTail); i++ {
		bus.Write(base+pspCmdTailOff+uint32(i), cmdTail[i])
	}
	bus.Write(base+pspCmdTailOff+uint32(len(cmdTail)), 0x0D)
}

// LoadProgram reads path from the host filesystem and loads it as either
// a flat COM image or an MZ EXE, at the fixed top-level load segment,
// with the fixed top-level environment segment env. InstallHLEVectors is
// called here rather than once at startup, so a RebootShell reload (the
// shell image reloading itself into segment 0) gets a fresh, correctly
// pointed IVT every time.
func LoadProgram(bus *MachineBus, cpu *CPU_X86, path string, cmdTail string, envSeg uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	InstallHLEVectors(bus)
	if len(data) >= 2 && data[0] == 'M' && data[1] == 'Z' {
		return loadEXE(bus, cpu, data, comLoadSegment, cmdTail, envSeg)
	}
	return loadCOM(bus, cpu, data, comLoadSegment, cmdTail, envSeg)
}

// loadCOM places a flat binary at seg:0x100, zeroing the rest of the
// segment first (a COM program that reads its own uninitialized BSS
// before writing it is depending on this).
func loadCOM(bus X86Bus, cpu *CPU_X86, data []byte, seg uint16, cmdTail string, envSeg uint16) error {
	if len(data) > maxComSize {
		return fmt.Errorf("program_loader: COM image %d bytes exceeds 64KiB segment budget", len(data))
	}
	base := physAddr(seg, 0)
	for i := uint32(0); i < 0x10000; i++ {
		bus.Write(base+i, 0)
	}
	for i, b := range data {
		bus.Write(base+uint32(comEntryOffset)+uint32(i), b)
	}
	writePSP(bus, seg, seg+0x1000, envSeg, cmdTail)

	cpu.CS = seg
	cpu.DS = seg
	cpu.ES = seg
	cpu.SS = seg
	cpu.SetIP(comEntryOffset)
	cpu.SetSP(comStackTop)
	cpu.Halted = false
	cpu.RebootShell = false
	return nil
}

// mzHeader is the fixed 28-byte-or-more portion of an MZ EXE this loader
// actually consumes; fields past e_ovno (overlay number) exist in the
// real format but this machine never reads them.
type mzHeader struct {
	lastPageBytes  uint16
	pagesInFile    uint16
	relocCount     uint16
	headerParas    uint16
	minAlloc       uint16
	maxAlloc       uint16
	initSS         uint16
	initSP         uint16
	checksum       uint16
	initIP         uint16
	initCS         uint16
	relocTableOfs  uint16
	overlayNumber  uint16
}

func parseMZHeader(data []byte) mzHeader {
	u16 := func(off int) uint16 { return binary.LittleEndian.Uint16(data[off:]) }
	return mzHeader{
		lastPageBytes: u16(2),
		pagesInFile:   u16(4),
		relocCount:    u16(6),
		headerParas:   u16(8),
		minAlloc:      u16(10),
		maxAlloc:      u16(12),
		initSS:        u16(14),
		initSP:        u16(16),
		checksum:      u16(18),
		initIP:        u16(20),
		initCS:        u16(22),
		relocTableOfs: u16(24),
		overlayNumber: u16(26),
	}
}

// loadEXE parses the MZ header, copies the load image starting at
// loadSeg (the PSP occupies the paragraph immediately below it, so the
// image itself starts one paragraph higher than a COM's data), applies
// every relocation entry, and sets CS:IP/SS:SP from the header fields
// offset by loadSeg.
func loadEXE(bus X86Bus, cpu *CPU_X86, data []byte, pspSeg uint16, cmdTail string, envSeg uint16) error {
	if len(data) < 28 {
		return fmt.Errorf("program_loader: EXE header truncated")
	}
	h := parseMZHeader(data)

	headerSize := uint32(h.headerParas) * 16
	imageSize := uint32(h.pagesInFile) * 512
	if h.lastPageBytes != 0 {
		imageSize -= 512 - uint32(h.lastPageBytes)
	}
	if headerSize > uint32(len(data)) || imageSize > uint32(len(data)) || imageSize < headerSize {
		return fmt.Errorf("program_loader: EXE header/page fields inconsistent with file size")
	}

	loadSeg := pspSeg + 0x10 // one paragraph (16 bytes = PSP size / 16) above the PSP
	image := data[headerSize:imageSize]
	base := physAddr(loadSeg, 0)
	for i, b := range image {
		bus.Write(base+uint32(i), b)
	}

	relocs := data[h.relocTableOfs:]
	for i := 0; i < int(h.relocCount); i++ {
		off := i * 4
		if off+4 > len(relocs) {
			break
		}
		relocOff := binary.LittleEndian.Uint16(relocs[off:])
		relocSeg := binary.LittleEndian.Uint16(relocs[off+2:])
		addr := physAddr(loadSeg+relocSeg, relocOff)
		cur := busRead16(bus, addr)
		busWrite16(bus, addr, cur+loadSeg)
	}

	topParagraph := loadSeg + uint16(len(image)/16) + 0x1000
	writePSP(bus, pspSeg, topParagraph, envSeg, cmdTail)

	cpu.CS = loadSeg + h.initCS
	cpu.DS = pspSeg
	cpu.ES = pspSeg
	cpu.SS = loadSeg + h.initSS
	cpu.SetIP(h.initIP)
	cpu.SetSP(h.initSP)
	cpu.Halted = false
	cpu.RebootShell = false
	return nil
}
