// machine_bus.go - system bus for the real-mode DOS machine
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

/*
machine_bus.go ties a flat 1MiB memory array to the handful of devices a
real DOS-era PC exposes through I/O ports: the 8259 PIC, the 8253 PIT, the
8042 keyboard controller's output port, the PC speaker gate, and VGA. The
CPU only ever sees this type through the X86Bus interface (Read/Write for
memory, In/Out for ports); everything else is internal wiring.

Memory map (spec-mandated, not configurable):

	0x00000-0x003FF  interrupt vector table (256 x far pointer)
	0x00400-0x004FF  BIOS data area
	0x00500-0x9FFFF  conventional RAM (program image, PSP, stack, heap)
	0xA0000-0xAFFFF  VGA graphics aperture (planar/chain-4, mode dependent)
	0xB0000-0xB7FFF  unused (MDA aperture on real hardware; not modeled)
	0xB8000-0xBFFFF  VGA text aperture
	0xC0000-0xEFFFF  unused (ROM BASIC / option ROM space on real hardware)
	0xF0000-0xFFFFF  HLE landing pad for the synthetic FE 38 xx CF trap and
	                 the BIOS/DOS low-memory stubs the loader points the IVT at
*/

package main

import (
	"log"
	"sync"
	"sync/atomic"
)

const (
	memVectorTable  = 0x00000
	memBDA          = 0x00400
	memConventional = 0x00500
	memVGAGraphics  = 0xA0000
	memVGAGraphicsE = 0xB0000
	memVGAText      = 0xB8000
	memVGATextE     = 0xC0000
	memHLEPad       = 0xF0000
)

// BDA field offsets this module actually populates (IBM PC BIOS Data Area,
// segment 0x0040). Guest code that peeks at these directly (rather than
// going through INT 10h/16h/1Ah) sees the same values the HLE services
// report.
const (
	bdaEquipmentWord  = 0x0010
	bdaMemSizeKB      = 0x0013
	bdaKeyboardFlags  = 0x0017
	bdaKeyboardHead   = 0x001A
	bdaKeyboardTail   = 0x001C
	bdaKeyboardBuffer = 0x001E // 32 bytes, 16 two-byte scancode/ASCII slots
	bdaVideoMode      = 0x0049
	bdaVideoCols      = 0x004A
	bdaCursorPos      = 0x0050 // 8 pages x 2 bytes (col, row)
	bdaCursorShape    = 0x0060
	bdaActivePage     = 0x0062
	bdaCRTCPort       = 0x0063
	bdaTimerTicks     = 0x006C
	bdaTimerOverflow  = 0x0070
)

// MachineBus is the x86 CPU's view of the machine: flat memory plus the
// port-routed devices wired into In/Out.
type MachineBus struct {
	mu     sync.Mutex
	memory [x86MemorySize]byte

	vga  *VGAEngine
	pic  *pic8259
	pit  *pit8253
	kbd  *KeyboardController
	spk  *pcSpeaker
	disk *DiskController

	dtaSeg, dtaOff uint16

	ticks atomic.Uint64
}

// NewMachineBus creates the bus with its fixed complement of devices.
// Any of vga/kbd may be nil (useful for CPU-only unit tests); pic/pit/spk
// are always created since nothing outside this file depends on them.
// diskRoot is the host directory that stands in for drive C:.
func NewMachineBus(vga *VGAEngine, kbd *KeyboardController, diskRoot string) *MachineBus {
	pic := newPIC8259()
	pit := newPIT8253()
	pit.pic = pic
	b := &MachineBus{
		vga:  vga,
		pic:  pic,
		pit:  pit,
		kbd:  kbd,
		spk:  &pcSpeaker{},
		disk: NewDiskController(diskRoot),
	}
	return b
}

// GetMemory exposes the backing array for the program loader and debug
// tooling; callers that aren't the loader should prefer Read8/Write8.
func (bus *MachineBus) GetMemory() []byte {
	return bus.memory[:]
}

// VGA, Keyboard and Speaker give the HLE handlers (which only see the
// narrow X86Bus interface through CPU_X86.bus) a way back to the
// concrete devices. HLE handlers reach these through machineBus(), a
// type-asserting helper on CPU_X86 that degrades to a no-op when the
// bus under test isn't a *MachineBus.
func (bus *MachineBus) VGA() *VGAEngine               { return bus.vga }
func (bus *MachineBus) Keyboard() *KeyboardController { return bus.kbd }
func (bus *MachineBus) Speaker() *pcSpeaker           { return bus.spk }
func (bus *MachineBus) PIT() *pit8253                 { return bus.pit }
func (bus *MachineBus) Disk() *DiskController         { return bus.disk }
func (bus *MachineBus) PIC() *pic8259                 { return bus.pic }

// SetKeyboard completes construction when the keyboard controller needs
// the bus's own PIC to raise IRQ1 (NewKeyboardController(bus.PIC())),
// which can only happen after the bus exists.
func (bus *MachineBus) SetKeyboard(kbd *KeyboardController) { bus.kbd = kbd }

// SetDTA/DTA track the guest-set Disk Transfer Area pointer (INT 21h
// AH=1Ah/2Fh) -- part of the bus's "guest peripherals state" per the
// component table, alongside the PIT/PIC/speaker/keyboard shadows.
func (bus *MachineBus) SetDTA(seg, off uint16) { bus.dtaSeg, bus.dtaOff = seg, off }
func (bus *MachineBus) DTA() (seg, off uint16) { return bus.dtaSeg, bus.dtaOff }

// AttachCPU wires the PIC's IRQ lines into the CPU's interrupt-pending
// flag, using the BIOS's fixed master-PIC vector remap (IRQ n -> INT
// 08h+n). Called once by the loader after both the bus and CPU exist;
// until it's called the PIC still tracks mask/pending state, it just has
// nobody to deliver to (useful for bus-only unit tests).
func (bus *MachineBus) AttachCPU(cpu *CPU_X86) {
	bus.pic.onIRQ = func(irq uint) {
		cpu.SetIRQ(true, byte(0x08+irq))
	}
}

func (bus *MachineBus) Reset() {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i := range bus.memory {
		bus.memory[i] = 0
	}
}

// Read implements X86Bus.Read: memory reads, with the VGA apertures routed
// to planar/text VRAM instead of backing RAM.
func (bus *MachineBus) Read(addr uint32) byte {
	switch {
	case addr >= memVGAGraphics && addr < memVGAGraphicsE && bus.vga != nil:
		return byte(bus.vga.HandleVRAMRead(addr))
	case addr >= memVGAText && addr < memVGATextE && bus.vga != nil:
		return byte(bus.vga.HandleTextRead(addr))
	}
	if addr >= uint32(len(bus.memory)) {
		return 0
	}
	return bus.Read8(addr)
}

func (bus *MachineBus) Write(addr uint32, value byte) {
	switch {
	case addr >= memVGAGraphics && addr < memVGAGraphicsE && bus.vga != nil:
		bus.vga.HandleVRAMWrite(addr, uint32(value))
		return
	case addr >= memVGAText && addr < memVGATextE && bus.vga != nil:
		bus.vga.HandleTextWrite(addr, uint32(value))
		return
	}
	if addr >= uint32(len(bus.memory)) {
		return
	}
	bus.Write8(addr, value)
}

// Read8/Write8 touch backing RAM directly, bypassing VGA aperture routing.
// The loader and debug tooling use these to poke the IVT/BDA/program image
// without going through the VRAM special case.
func (bus *MachineBus) Read8(addr uint32) byte {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if addr >= uint32(len(bus.memory)) {
		return 0
	}
	return bus.memory[addr]
}

func (bus *MachineBus) Write8(addr uint32, value byte) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if addr >= uint32(len(bus.memory)) {
		return
	}
	bus.memory[addr] = value
}

func (bus *MachineBus) Read16(addr uint32) uint16 {
	return uint16(bus.Read8(addr)) | uint16(bus.Read8(addr+1))<<8
}

func (bus *MachineBus) Write16(addr uint32, value uint16) {
	bus.Write8(addr, byte(value))
	bus.Write8(addr+1, byte(value>>8))
}

func (bus *MachineBus) Read32(addr uint32) uint32 {
	return uint32(bus.Read16(addr)) | uint32(bus.Read16(addr+2))<<16
}

func (bus *MachineBus) Write32(addr uint32, value uint32) {
	bus.Write16(addr, uint16(value))
	bus.Write16(addr+2, uint16(value>>16))
}

// WriteString null-terminates nothing; it copies bytes verbatim starting
// at addr, for the loader placing a guest string (command tail, PSP
// fields) into memory.
func (bus *MachineBus) WriteString(addr uint32, s string) {
	for i := 0; i < len(s); i++ {
		bus.Write8(addr+uint32(i), s[i])
	}
}

// ReadCString reads a NUL-terminated string starting at addr, capped at
// max bytes as a guard against a guest forgetting the terminator.
func (bus *MachineBus) ReadCString(addr uint32, max int) string {
	buf := make([]byte, 0, 64)
	for i := 0; i < max; i++ {
		b := bus.Read8(addr + uint32(i))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// In implements X86Bus.In: port reads.
func (bus *MachineBus) In(port uint16) byte {
	if bus.vga != nil {
		if v, ok := bus.vga.InPort(port); ok {
			return v
		}
	}
	switch {
	case port == 0x0060: // keyboard controller data port
		if bus.kbd != nil {
			return bus.kbd.ReadData()
		}
	case port == 0x0061: // PPI port B: speaker gate/data + refresh toggle
		return bus.spk.readPortB()
	case port == 0x0064: // keyboard controller status port
		if bus.kbd != nil {
			return bus.kbd.ReadStatus()
		}
	case port >= 0x0040 && port <= 0x0043: // 8253 PIT
		return bus.pit.in(port)
	case port == 0x0020 || port == 0x0021: // 8259 PIC (master)
		return bus.pic.in(port)
	case port == 0x00A0 || port == 0x00A1: // 8259 PIC (slave, present but unused)
		return bus.pic.in(port)
	}
	return 0xFF
}

func (bus *MachineBus) Out(port uint16, value byte) {
	if bus.vga != nil {
		if bus.vga.OutPort(port, value) {
			return
		}
	}
	switch {
	case port == 0x0061:
		bus.spk.writePortB(value)
	case port >= 0x0040 && port <= 0x0043:
		bus.pit.out(port, value)
	case port == 0x0020 || port == 0x0021:
		bus.pic.out(port, value)
	case port == 0x00A0 || port == 0x00A1:
		bus.pic.out(port, value)
	}
}

// LogString and Logf are the bus's one logging seam: HLE handlers and
// device models that hit a degraded-but-recoverable condition (an
// unsupported INT 21h subfunction, a malformed FCB, a VGA register
// write the model doesn't implement) report through here rather than
// each owning its own output stream.
func (bus *MachineBus) LogString(s string) {
	log.Print(s)
}

func (bus *MachineBus) Logf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Tick advances the PIT by the given instruction-cycle count, raising
// IRQ0 through the PIC whenever channel 0 rolls over. This machine's
// timing is instruction-count-based rather than cycle-accurate (spec
// Non-goal), so one "tick" is one executed instruction's worth of
// cycles as reported by Step().
func (bus *MachineBus) Tick(cycles int) {
	bus.ticks.Add(uint64(cycles))
	bus.pit.tick(cycles)
}
