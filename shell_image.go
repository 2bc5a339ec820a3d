// shell_image.go - embedded assembly mini-shell and its command dispatch
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

import "strings"

/*
shellImage is the opaque "embedded guest bootloader shell program" the
spec treats as a binary asset: a tiny hand-assembled .COM image that
prints a "C>" prompt, reads a line one keystroke at a time through INT
16h AH=00 (letting the CPU's rewind-and-re-execute trick do the actual
blocking), echoes each key through INT 21h AH=02, and on CR hands the
finished line to INT 2Fh AH=FEh -- the shell dispatch back-door that
queues it in CPU.PendingShellCommand for the main loop to interpret.

Byte layout (relative to the image start, loaded at offset 0x100):

	 0  BA 35 01        MOV DX, 0x0135       ; prompt string
	 3  B4 09           MOV AH, 0x09
	 5  CD 21           INT 0x21              ; print "C>\r\n$"
	 7  BF 3A 01        MOV DI, 0x013A       ; cmdbuf (zeroed BSS, past image end)
	10  B4 00           MOV AH, 0x00
	12  CD 16           INT 0x16              ; blocking key read
	14  3C 0D           CMP AL, 0x0D
	16  74 0B           JE  +0x0B             ; -> endline (29)
	18  8A D0           MOV DL, AL
	20  B4 02           MOV AH, 0x02
	22  CD 21           INT 0x21              ; echo the character
	24  88 05           MOV [DI], AL
	26  47              INC DI
	27  EB ED           JMP -0x13             ; -> readchar (10)
	29  C6 05 00        MOV BYTE [DI], 0      ; terminate the line
	32  B2 0A           MOV DL, 0x0A
	34  B4 02           MOV AH, 0x02
	36  CD 21           INT 0x21
	38  B2 0D           MOV DL, 0x0D
	40  B4 02           MOV AH, 0x02
	42  CD 21           INT 0x21              ; CR LF after the echoed line
	44  BA 3A 01        MOV DX, 0x013A       ; cmdbuf
	47  B4 FE           MOV AH, 0xFE
	49  CD 2F           INT 0x2F              ; shell dispatch back-door
	51  EB CB           JMP -0x35             ; -> start (0)
	53  "C>\r\n$"                             ; prompt, 5 bytes
*/

var shellImage = []byte{
	0xBA, 0x35, 0x01,
	0xB4, 0x09,
	0xCD, 0x21,
	0xBF, 0x3A, 0x01,
	0xB4, 0x00,
	0xCD, 0x16,
	0x3C, 0x0D,
	0x74, 0x0B,
	0x8A, 0xD0,
	0xB4, 0x02,
	0xCD, 0x21,
	0x88, 0x05,
	0x47,
	0xEB, 0xED,
	0xC6, 0x05, 0x00,
	0xB2, 0x0A,
	0xB4, 0x02,
	0xCD, 0x21,
	0xB2, 0x0D,
	0xB4, 0x02,
	0xCD, 0x21,
	0xBA, 0x3A, 0x01,
	0xB4, 0xFE,
	0xCD, 0x2F,
	0xEB, 0xCB,
	'C', '>', 0x0D, 0x0A, '$',
}

const shellSegment = comLoadSegment

// LoadShell places the embedded mini-shell at the machine's fixed
// top-level load segment, the same segment every top-level COM/EXE
// loads at: spec.md describes RebootShell as reloading "into segment
// 0", which would collide with the IVT/BDA, so this treats that as
// shorthand for "reload the shell the same way any top-level program
// loads" rather than literally targeting physical segment 0.
func LoadShell(bus *MachineBus, cpu *CPU_X86) error {
	InstallHLEVectors(bus)
	return loadCOM(bus, cpu, shellImage, shellSegment, "", 0)
}

// DrainShellCommand checks for a command queued by the mini-shell's INT
// 2Fh AH=FEh back-door and interprets it: a recognized built-in runs
// in-place and prints its own output through teletypeOutput, anything
// else is treated as a program name to load (replacing the running
// shell image until that program terminates and RebootShell reloads
// the shell). Returns true if a command was drained this call.
func DrainShellCommand(bus *MachineBus, cpu *CPU_X86) bool {
	cmd := cpu.PendingShellCommand
	if cmd == "" {
		return false
	}
	cpu.PendingShellCommand = ""

	switch strings.ToUpper(strings.TrimSpace(cmd)) {
	case "":
		return true
	case "CLS":
		if vga := bus.VGA(); vga != nil {
			vga.ClearScreen()
		}
		return true
	case "VER":
		printShellLine(cpu, "RUSTDOS [Version 5.00]")
		return true
	case "DIR":
		runShellDir(bus, cpu)
		return true
	case "EXIT":
		cpu.Halted = true
		return true
	}

	fields := strings.Fields(cmd)
	if len(fields) > 0 && strings.EqualFold(fields[0], "TYPE") && len(fields) > 1 {
		runShellType(bus, cpu, fields[1])
		return true
	}

	if err := LoadProgram(bus, cpu, cmd, "", 0); err != nil {
		printShellLine(cpu, "Bad command or file name")
	}
	return true
}

func printShellLine(c *CPU_X86, s string) {
	for i := 0; i < len(s); i++ {
		teletypeOutput(c, s[i])
	}
	teletypeOutput(c, 0x0D)
	teletypeOutput(c, 0x0A)
}

func runShellDir(bus *MachineBus, c *CPU_X86) {
	entries, err := bus.Disk().ListDir("", "*.*", 0)
	if err != nil {
		printShellLine(c, "Invalid directory")
		return
	}
	for _, e := range entries {
		line := e.Name
		if e.IsDir {
			line += "  <DIR>"
		}
		printShellLine(c, line)
	}
}

func runShellType(bus *MachineBus, c *CPU_X86, name string) {
	handle, errCode, ok := bus.Disk().Open(name, 0)
	if !ok {
		printShellLine(c, dosErrMessage(errCode))
		return
	}
	defer bus.Disk().Close(handle)
	buf := make([]byte, 512)
	for {
		n, _, ok := bus.Disk().Read(handle, buf)
		if !ok || n == 0 {
			break
		}
		for i := 0; i < n; i++ {
			teletypeOutput(c, buf[i])
		}
	}
}

func dosErrMessage(code uint16) string {
	switch code {
	case dosErrFileNotFound:
		return "File not found"
	case dosErrPathNotFound:
		return "Path not found"
	default:
		return "Unable to read file"
	}
}
