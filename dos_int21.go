// dos_int21.go - INT 21h DOS kernel services
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

import (
	"os"
	"strings"
)

func hleINT21(c *CPU_X86) {
	switch c.AH() {
	case 0x02: // display character, DL
		teletypeOutput(c, c.DL())
	case 0x09: // display '$'-terminated string, DS:DX
		s := dollarString(c.bus, physAddr(c.DS, c.DX()), 4096)
		for i := 0; i < len(s); i++ {
			teletypeOutput(c, s[i])
		}
	case 0x0E: // set default drive, DL=drive (0=A)
		c.SetAL(1) // one drive installed
	case 0x19: // get default drive, 0-based
		c.SetAL(2) // C:
	case 0x1A: // set DTA, DS:DX
		mb := c.machineBus()
		if mb != nil {
			mb.SetDTA(c.DS, c.DX())
		}
	case 0x25: // set interrupt vector AL, DS:DX
		ivt := uint32(c.AL()) * 4
		busWrite16(c.bus, ivt, c.DX())
		busWrite16(c.bus, ivt+2, c.DS)
	case 0x29: // parse filename into FCB, DS:SI -> ES:DI
		hleParseFilename(c)
	case 0x2F: // get DTA -> ES:BX
		mb := c.machineBus()
		if mb != nil {
			seg, off := mb.DTA()
			c.ES = seg
			c.SetBX(off)
		}
	case 0x30: // get DOS version
		c.SetAL(5)
		c.SetAH(0)
		c.SetBX(0)
		c.SetCX(0)
	case 0x35: // get interrupt vector AL -> ES:BX
		ivt := uint32(c.AL()) * 4
		c.SetBX(busRead16(c.bus, ivt))
		c.ES = busRead16(c.bus, ivt+2)
	case 0x36: // disk free space
		c.SetAX(64)     // sectors per cluster
		c.SetBX(16000)  // free clusters
		c.SetCX(512)    // bytes per sector
		c.SetDX(32000)  // total clusters
	case 0x3C:
		hleCreateFile(c)
	case 0x3D:
		hleOpenFile(c)
	case 0x3E:
		hleCloseFile(c)
	case 0x3F:
		hleReadFile(c)
	case 0x40:
		hleWriteFile(c)
	case 0x41:
		hleDeleteFile(c)
	case 0x42:
		hleLseekFile(c)
	case 0x43:
		hleFileAttributes(c)
	case 0x47: // get current directory, DL=drive, DS:SI -> buffer
		addr := physAddr(c.DS, c.SI())
		c.bus.Write(addr, 0) // root of C:, empty path string
		c.setFlag(x86FlagCF, false)
	case 0x4A: // resize memory block; this machine never denies a resize
		c.setFlag(x86FlagCF, false)
	case 0x4B:
		hleExec(c)
	case 0x4C:
		c.RebootShell = true
		c.Halted = true
	case 0x4E:
		hleFindFirst(c)
	case 0x4F:
		hleFindNext(c)
	default:
		c.SetAX(0x01) // "invalid function"
		c.setFlag(x86FlagCF, true)
	}
}

func hleCreateFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	path := readCString(c.bus, physAddr(c.DS, c.DX()), 128)
	handle, errCode, ok := mb.Disk().Create(path)
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	c.SetAX(handle)
	c.setFlag(x86FlagCF, false)
}

func hleOpenFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	path := readCString(c.bus, physAddr(c.DS, c.DX()), 128)
	handle, errCode, ok := mb.Disk().Open(path, c.AL())
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	c.SetAX(handle)
	c.setFlag(x86FlagCF, false)
}

func hleCloseFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	errCode, ok := mb.Disk().Close(c.BX())
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	c.setFlag(x86FlagCF, false)
}

func hleReadFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	handle := c.BX()
	count := int(c.CX())
	addr := physAddr(c.DS, c.DX())

	if handle == 0 { // stdin: drain the keyboard queue as raw ASCII
		n := 0
		kbd := mb.Keyboard()
		for n < count && kbd != nil {
			_, ascii, ok := kbd.PopKey()
			if !ok {
				break
			}
			c.bus.Write(addr+uint32(n), ascii)
			n++
		}
		c.SetAX(uint16(n))
		c.setFlag(x86FlagCF, false)
		return
	}

	buf := make([]byte, count)
	n, errCode, ok := mb.Disk().Read(handle, buf)
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	for i := 0; i < n; i++ {
		c.bus.Write(addr+uint32(i), buf[i])
	}
	c.SetAX(uint16(n))
	c.setFlag(x86FlagCF, false)
}

func hleWriteFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	handle := c.BX()
	count := int(c.CX())
	addr := physAddr(c.DS, c.DX())

	if handle == 1 || handle == 2 { // stdout/stderr go to the video teletype
		for i := 0; i < count; i++ {
			teletypeOutput(c, c.bus.Read(addr+uint32(i)))
		}
		c.SetAX(uint16(count))
		c.setFlag(x86FlagCF, false)
		return
	}

	buf := make([]byte, count)
	for i := 0; i < count; i++ {
		buf[i] = c.bus.Read(addr + uint32(i))
	}
	n, errCode, ok := mb.Disk().Write(handle, buf)
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	c.SetAX(uint16(n))
	c.setFlag(x86FlagCF, false)
}

func hleDeleteFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	path := readCString(c.bus, physAddr(c.DS, c.DX()), 128)
	errCode, ok := mb.Disk().Delete(path)
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	c.setFlag(x86FlagCF, false)
}

func hleLseekFile(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	offset := int32(uint32(c.CX())<<16 | uint32(c.DX()))
	pos, errCode, ok := mb.Disk().Seek(c.BX(), offset, int(c.AL()))
	if !ok {
		c.SetAX(errCode)
		c.setFlag(x86FlagCF, true)
		return
	}
	c.SetDX(uint16(pos >> 16))
	c.SetAX(uint16(pos))
	c.setFlag(x86FlagCF, false)
}

func hleFileAttributes(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	path := readCString(c.bus, physAddr(c.DS, c.DX()), 128)
	if c.AL() == 0x00 { // get
		attr, errCode, ok := mb.Disk().GetAttributes(path)
		if !ok {
			c.SetAX(errCode)
			c.setFlag(x86FlagCF, true)
			return
		}
		c.SetCX(uint16(attr))
		c.setFlag(x86FlagCF, false)
		return
	}
	// set: accepted and silently ignored, the host filesystem's mode bits
	// are the source of truth and this machine doesn't remount read-only.
	c.setFlag(x86FlagCF, false)
}

// hleParseFilename implements AH=29h minimally: split the ASCIIZ string
// at DS:SI into an 11-byte unopened FCB at ES:DI (drive byte left 0 for
// "default", since this machine only ever has one drive).
func hleParseFilename(c *CPU_X86) {
	s := readCString(c.bus, physAddr(c.DS, c.SI()), 64)
	pat := normalizePattern(s)
	fcb := toFCBPattern(pat)
	dst := physAddr(c.ES, c.DI())
	c.bus.Write(dst, 0)
	for i, b := range fcb {
		c.bus.Write(dst+1+uint32(i), b)
	}
	c.SetAL(0)
}

// hleExec implements AH=4Bh AL=00h (load and execute). The child runs to
// completion synchronously inside this call -- there's only one CPU, so
// "EXEC" means "suspend the parent's register file, run the child until
// it terminates, restore the parent" rather than real multitasking.
func hleExec(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil || c.AL() != 0x00 {
		c.SetAX(0x01)
		c.setFlag(x86FlagCF, true)
		return
	}
	path := readCString(c.bus, physAddr(c.DS, c.DX()), 128)
	paramBlock := physAddr(c.ES, c.BX())
	envSeg := busRead16(c.bus, paramBlock)
	if envSeg == 0 {
		envSeg = busRead16(c.bus, physAddr(c.DS, 0)+pspEnvSegOffset)
	}
	tailOff := busRead16(c.bus, paramBlock+2)
	tailSeg := busRead16(c.bus, paramBlock+4)
	tailLen := c.bus.Read(physAddr(tailSeg, tailOff))
	tail := readCString(c.bus, physAddr(tailSeg, tailOff+1), int(tailLen))

	const childSeg = 0x5000
	snap := snapshotCPU(c)
	if err := loadChildProgram(mb, c, path, tail, envSeg, childSeg); err != nil {
		restoreCPU(c, snap)
		c.SetAX(0x02)
		c.setFlag(x86FlagCF, true)
		return
	}

	for !c.Halted && !c.RebootShell {
		if c.Step() == 0 {
			break
		}
	}

	restoreCPU(c, snap)
	c.setFlag(x86FlagCF, false)
	c.SetAX(0)
}

// loadChildProgram is LoadProgram's in-memory sibling for EXEC: the data
// is already read once LoadProgram's file-path form isn't convenient
// since a child load must not call InstallHLEVectors again.
func loadChildProgram(mb *MachineBus, c *CPU_X86, path, cmdTail string, envSeg uint16, seg uint16) error {
	full, sane := mb.Disk().sanitizePath(path)
	if !sane {
		full = path
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return err
	}
	if len(data) >= 2 && data[0] == 'M' && data[1] == 'Z' {
		return loadEXE(mb, c, data, seg, cmdTail, envSeg)
	}
	return loadCOM(mb, c, data, seg, cmdTail, envSeg)
}

// cpuSnapshot captures the register-level state EXEC's child run must
// not leak back into the parent. Interrupt/decoder/prefix bookkeeping
// fields are intentionally excluded: they're transient within one Step()
// and never meaningful across an HLE call boundary.
type cpuSnapshot struct {
	eax, ebx, ecx, edx, esi, edi, ebp, esp uint32
	eip                                    uint32
	cs, ds, es, ss                         uint16
	flags                                  uint32
	halted, reboot                         bool
}

func snapshotCPU(c *CPU_X86) cpuSnapshot {
	return cpuSnapshot{
		eax: c.EAX, ebx: c.EBX, ecx: c.ECX, edx: c.EDX,
		esi: c.ESI, edi: c.EDI, ebp: c.EBP, esp: c.ESP,
		eip: c.EIP, cs: c.CS, ds: c.DS, es: c.ES, ss: c.SS,
		flags: c.Flags, halted: c.Halted, reboot: c.RebootShell,
	}
}

func restoreCPU(c *CPU_X86, s cpuSnapshot) {
	c.EAX, c.EBX, c.ECX, c.EDX = s.eax, s.ebx, s.ecx, s.edx
	c.ESI, c.EDI, c.EBP, c.ESP = s.esi, s.edi, s.ebp, s.esp
	c.EIP, c.CS, c.DS, c.ES, c.SS = s.eip, s.cs, s.ds, s.es, s.ss
	c.Flags = s.flags
	c.Halted = s.halted
	c.RebootShell = s.reboot
}

// hleFindFirst and hleFindNext share the DTA layout writer; the
// controller itself never remembers a cursor (see disk_controller.go),
// so both calls recompute the whole matching list and index into it.
func hleFindFirst(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	pattern := readCString(c.bus, physAddr(c.DS, c.DX()), 64)
	attr := c.CL()
	findAndWriteDTA(c, mb, pattern, attr, 0)
}

func hleFindNext(c *CPU_X86) {
	mb := c.machineBus()
	if mb == nil {
		c.setFlag(x86FlagCF, true)
		return
	}
	seg, off := mb.DTA()
	dta := physAddr(seg, off)
	attr := c.bus.Read(dta + 12)
	index := busRead16(c.bus, dta+13)
	var fcb [11]byte
	for i := range fcb {
		fcb[i] = c.bus.Read(dta + 1 + uint32(i))
	}
	pattern := reconstructFCBPattern(fcb)
	findAndWriteDTA(c, mb, pattern, attr, int(index)+1)
}

func findAndWriteDTA(c *CPU_X86, mb *MachineBus, pattern string, attr byte, index int) {
	norm := normalizePattern(pattern)
	entries, err := mb.Disk().ListDir("", norm, attr)
	if err != nil || index >= len(entries) {
		c.SetAX(dosErrNoMoreFiles)
		c.setFlag(x86FlagCF, true)
		return
	}
	e := entries[index]

	seg, off := mb.DTA()
	dta := physAddr(seg, off)
	fcb := toFCBPattern(norm)

	c.bus.Write(dta+0, 3) // drive byte: 3 = C
	for i, b := range fcb {
		c.bus.Write(dta+1+uint32(i), b)
	}
	c.bus.Write(dta+12, attr)
	busWrite16(c.bus, dta+13, uint16(index))
	for i := uint32(0); i < 6; i++ {
		c.bus.Write(dta+15+i, 0)
	}
	busWrite16(c.bus, dta+15, uint16(index))
	c.bus.Write(dta+21, e.Attr)
	busWrite16(c.bus, dta+22, e.DosTime)
	busWrite16(c.bus, dta+24, e.DosDate)
	busWrite32(c.bus, dta+26, e.Size)

	name := e.Name
	if len(name) > 12 {
		name = name[:12]
	}
	for i := 0; i < 13; i++ {
		if i < len(name) {
			c.bus.Write(dta+30+uint32(i), name[i])
		} else {
			c.bus.Write(dta+30+uint32(i), 0)
		}
	}

	c.SetAX(0)
	c.setFlag(x86FlagCF, false)
}

// fcbField and toFCBPattern/reconstructFCBPattern translate between the
// wildcard pattern DOS passes around as a string and the fixed-width
// 11-byte FCB form the DTA persists as its search cookie.
func fcbField(s string, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		out[i] = ' '
	}
	pos := 0
	for i := 0; i < len(s) && pos < width; i++ {
		if s[i] == '*' {
			for pos < width {
				out[pos] = '?'
				pos++
			}
			break
		}
		out[pos] = s[i]
		pos++
	}
	return out
}

func toFCBPattern(pattern string) [11]byte {
	var buf [11]byte
	for i := range buf {
		buf[i] = ' '
	}
	stem, ext := pattern, ""
	if i := strings.LastIndex(pattern, "."); i >= 0 {
		stem, ext = pattern[:i], pattern[i+1:]
	}
	copy(buf[0:8], fcbField(stem, 8))
	copy(buf[8:11], fcbField(ext, 3))
	return buf
}

func reconstructFCBPattern(fcb [11]byte) string {
	stem := strings.TrimRight(string(fcb[0:8]), " ")
	ext := strings.TrimRight(string(fcb[8:11]), " ")
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}
