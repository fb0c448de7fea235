// Command goadvance is a headless driver for the core: it loads a ROM
// (and optional save/BIOS), wires up a gba.GameBoyAdvance, and exposes a
// pprof endpoint and an optional telemetry/chart dump, mirroring how the
// teacher's cmd/goboy bootstraps its emulator before handing off to a
// (here, absent) display loop.
package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/thelolagemann/goadvance/internal/gba"
	"github.com/thelolagemann/goadvance/pkg/chart"
	"github.com/thelolagemann/goadvance/pkg/log"
	"github.com/thelolagemann/goadvance/pkg/telemetry"
	"github.com/thelolagemann/goadvance/pkg/utils"
)

func main() {
	go func() {
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			log.New().Errorf("pprof listener: %v", err)
		}
	}()

	romFile := flag.String("rom", "", "the ROM file to load (prompted for if empty)")
	saveFile := flag.String("save", "", "the save file to load")
	biosFile := flag.String("bios", "", "the BIOS file to load")
	telemetryAddr := flag.String("telemetry", "", "address to serve a bus-trace websocket on, e.g. :6061")
	chartFile := flag.String("chart", "", "write a PNG of the cycle lookup tables here and exit")
	steps := flag.Int("steps", 0, "number of pipeline advances to run before exiting")
	flag.Parse()

	path := *romFile
	if path == "" {
		chosen, err := utils.AskForFile("Select a ROM", ".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "goadvance: no ROM selected:", err)
			os.Exit(1)
		}
		path = chosen
	}

	rom, err := utils.LoadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "goadvance: loading ROM:", err)
		os.Exit(1)
	}

	var opts []gba.Opt
	if *biosFile != "" {
		bios, err := utils.LoadFile(*biosFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "goadvance: loading BIOS:", err)
			os.Exit(1)
		}
		opts = append(opts, gba.WithBIOS(bios))
	}
	if *saveFile != "" {
		save, err := utils.LoadFile(*saveFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "goadvance: loading save:", err)
			os.Exit(1)
		}
		opts = append(opts, gba.WithSave(save))
	}

	var sink *telemetry.Sink
	if *telemetryAddr != "" {
		sink = telemetry.NewSink()
		done := make(chan struct{})
		go sink.Run(done)
		go func() {
			if err := http.ListenAndServe(*telemetryAddr, sink.Handler()); err != nil {
				log.New().Errorf("telemetry listener: %v", err)
			}
		}()
		opts = append(opts, gba.WithTelemetry(sink))
	}

	machine, err := gba.New(rom, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "goadvance: building emulator:", err)
		os.Exit(1)
	}

	fmt.Printf("%s [%s]\n", machine.Cartridge.Header.String(), machine.Cartridge.ROMHash)

	if *chartFile != "" {
		img, err := chart.RenderCycleTables(machine.Bus.Cycles(), 1024, 600)
		if err != nil {
			fmt.Fprintln(os.Stderr, "goadvance: rendering chart:", err)
			os.Exit(1)
		}
		if err := utils.SaveImagePNG(*chartFile, img); err != nil {
			fmt.Fprintln(os.Stderr, "goadvance: saving chart:", err)
			os.Exit(1)
		}
		return
	}

	for i := 0; i < *steps; i++ {
		machine.CPU.Advance()
	}
}
