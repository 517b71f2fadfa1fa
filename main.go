package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config overlaying the embedded defaults")
	headless := flag.Bool("headless", false, "run without a window and exit")
	steps := flag.Int("steps", 1000, "number of steps in headless mode")
	csvPath := flag.String("csv", "", "telemetry CSV output path (headless mode)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *headless && *csvPath != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Path = *csvPath
	}

	if *headless {
		runHeadless(cfg, *steps)
		return
	}

	updateChan := make(chan PlotData, 2)
	controlChan := make(chan ControlMsg, 16)

	sim, err := NewSimulation(cfg, updateChan, controlChan)
	if err != nil {
		log.Fatalf("Failed to initialize simulation: %v", err)
	}
	sim.Run()
	defer sim.Close()

	myApp := app.New()
	win := myApp.NewWindow("Quantum Canvas")
	ui := setupMainUI(myApp, cfg, updateChan, controlChan, win)
	win.SetContent(ui.Container)
	win.Resize(fyne.NewSize(900, 700))
	win.CenterOnScreen()

	log.Println("Starting UI")
	win.ShowAndRun()
}

// runHeadless advances the simulation without a window, for profiling and
// telemetry capture.
func runHeadless(cfg *Config, steps int) {
	sim, err := NewSimulation(cfg, nil, nil)
	if err != nil {
		log.Fatalf("Failed to initialize simulation: %v", err)
	}
	if err := sim.RunSteps(steps); err != nil {
		log.Fatalf("Step failed: %v", err)
	}
	st := sim.State()
	log.Printf("Ran %d steps: t=%.6f, norm=%.6f", steps, st.Time(), st.Norm())

	if rec := sim.Recorder(); rec != nil && cfg.Telemetry.Path != "" {
		if err := rec.WriteCSV(cfg.Telemetry.Path); err != nil {
			log.Fatalf("Telemetry write failed: %v", err)
		}
		log.Printf("Wrote %d telemetry records to %s", len(rec.Records()), cfg.Telemetry.Path)
	}
}
