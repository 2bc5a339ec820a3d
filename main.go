// main.go - entry point: device wiring and the cooperative main loop
//
// (c) 2024 - 2026 Zayn Otley
// License: GPLv3 or later

package main

import (
	"fmt"
	"os"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\ndosbox16 -- a real-mode DOS machine")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("License: GPLv3 or later")
}

const (
	defaultSampleRate    = 44100
	instructionsPerBatch = 30000 // one main-loop tick's worth of guest execution
)

// parseArgs reads the argv-minimal command line spec.md describes: an
// optional program path (falling back to the embedded shell when
// absent) and an optional "-c dir" drive-root override, with no flags
// dependency for this binary.
func parseArgs(args []string) (program string, driveRoot string, err error) {
	driveRoot = "."
	var positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			if i+1 >= len(args) {
				return "", "", fmt.Errorf("-c requires a directory argument")
			}
			driveRoot = args[i+1]
			i++
			continue
		}
		positional = append(positional, args[i])
	}
	if len(positional) > 1 {
		return "", "", fmt.Errorf("usage: dosbox16 [-c drive-dir] [program.com|program.exe]")
	}
	if len(positional) == 1 {
		program = positional[0]
	}
	return program, driveRoot, nil
}

// activeCPU gives the video backend's window-close handler (it runs on
// ebiten's own goroutine, with no other path back into this package's
// locals) something to reset on a host-initiated quit.
var activeCPU *CPU_X86

func main() {
	boilerPlate()

	program, driveRoot, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	vga := NewVGAEngine(nil)
	bus := NewMachineBus(vga, nil, driveRoot)
	kbd := NewKeyboardController(bus.PIC())
	bus.SetKeyboard(kbd)

	cpu := NewCPU_X86(bus)
	activeCPU = cpu
	bus.AttachCPU(cpu)

	if program != "" {
		if err := LoadProgram(bus, cpu, program, "", 0); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", program, err)
			os.Exit(1)
		}
	} else if err := LoadShell(bus, cpu); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load embedded shell: %v\n", err)
		os.Exit(1)
	}

	video, err := NewVideoOutput(VIDEO_BACKEND_EBITEN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize video: %v\n", err)
		os.Exit(1)
	}
	w, h := vga.GetModeDimensions()
	if err := video.SetDisplayConfig(DisplayConfig{Width: w, Height: h, Scale: 2, PixelFormat: PixelFormatRGBA, VSync: true}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure display: %v\n", err)
		os.Exit(1)
	}
	if kh, ok := video.(KeyboardInput); ok {
		kh.SetKeyHandler(NewKeyboardShim(kbd, bus).HandleByte)
	}

	runner := NewCPUX86Runner(cpu, bus)
	dbg := NewDebugX86(cpu, runner)
	dbg.SetWorkerHooks(func() { cpu.SetRunning(false) }, func() { cpu.SetRunning(true) })
	monitor := NewMachineMonitor(bus)
	monitor.RegisterCPU("X86", dbg)
	monitor.StartBreakpointListener()
	if mh, ok := video.(MonitorHost); ok {
		mh.SetMonitor(monitor)
	}

	chip := NewSoundChip(bus.PIT(), bus.Speaker(), defaultSampleRate)
	chip.Start()
	player, err := NewOtoPlayer(defaultSampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	player.SetupPlayer(chip)
	player.Start()
	defer player.Close()

	if err := video.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start video: %v\n", err)
		os.Exit(1)
	}
	defer video.Stop()

	cpu.SetRunning(true)
	runMainLoop(bus, cpu, video)
}

// runMainLoop is the ~60Hz cooperative tick spec.md describes: drain
// host input (already flowing in on the video backend's own goroutine
// via the keyboard shim), execute one batch of guest instructions,
// drain the shell's queued command, then render a frame. Audio has no
// pump of its own -- oto pulls samples from SoundChip on its own
// callback goroutine whenever its buffer runs low. WaitForVSync (fed by
// EbitenOutput's own Draw callback) paces the loop to the window's
// actual refresh rate rather than a free-running ticker.
func runMainLoop(bus *MachineBus, cpu *CPU_X86, video VideoOutput) {
	for video.IsStarted() {
		for n := 0; n < instructionsPerBatch; n++ {
			if cpu.Step() == 0 {
				break
			}
		}

		DrainShellCommand(bus, cpu)

		if cpu.RebootShell {
			if err := LoadShell(bus, cpu); err != nil {
				bus.Logf("main: failed to reload shell: %v", err)
				return
			}
			cpu.SetRunning(true)
		}

		frame := bus.VGA().RenderFrame()
		_ = video.UpdateFrame(frame)
		if err := video.WaitForVSync(); err != nil {
			return
		}
	}
}
