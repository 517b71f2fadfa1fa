package main

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// paintableRaster wraps a raster so the canvas receives taps, drags and
// hover positions for brush painting and the coordinate readout.
type paintableRaster struct {
	widget.BaseWidget
	raster    *canvas.Raster
	onPaint   func(pos fyne.Position)
	onHovered func(pos fyne.Position, exited bool)
}

func newPaintableRaster(raster *canvas.Raster, paint func(fyne.Position), hovered func(fyne.Position, bool)) *paintableRaster {
	p := &paintableRaster{raster: raster, onPaint: paint, onHovered: hovered}
	p.ExtendBaseWidget(p)
	return p
}

func (p *paintableRaster) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

func (p *paintableRaster) Tapped(ev *fyne.PointEvent) {
	if p.onPaint != nil {
		p.onPaint(ev.Position)
	}
}

func (p *paintableRaster) Dragged(ev *fyne.DragEvent) {
	if p.onPaint != nil {
		p.onPaint(ev.Position)
	}
}

func (p *paintableRaster) DragEnd() {}

func (p *paintableRaster) MouseIn(ev *desktop.MouseEvent) {
	if p.onHovered != nil {
		p.onHovered(ev.Position, false)
	}
}

func (p *paintableRaster) MouseMoved(ev *desktop.MouseEvent) {
	if p.onHovered != nil {
		p.onHovered(ev.Position, false)
	}
}

func (p *paintableRaster) MouseOut() {
	if p.onHovered != nil {
		p.onHovered(fyne.Position{}, true)
	}
}

// AppUI owns the widgets and the GUI-side copy of the latest snapshot.
type AppUI struct {
	App    fyne.App
	Window fyne.Window

	densityPlot *canvas.Raster
	phasePlot   *canvas.Raster
	timeLabel   *widget.Label
	normLabel   *widget.Label
	coordLabel  *widget.Label

	lastPlotData PlotData
	plotMutex    sync.Mutex
	plotWidth    int
	plotHeight   int

	// Brush settings mirrored from the sliders; sent with every paint.
	brushRadius float64
	brushEnergy float64

	// Packet parameters offered in the reset form.
	packet struct{ x0, y0, px, py, sigma float64 }

	updateChan  <-chan PlotData
	controlChan chan<- ControlMsg

	Container fyne.CanvasObject
}

// setupMainUI builds the window content: density and phase plots, brush
// and parameter controls, and the boundary/preset selectors. It starts the
// GUI update loop goroutine.
func setupMainUI(a fyne.App, cfg *Config, updateChan <-chan PlotData, controlChan chan<- ControlMsg, win fyne.Window) *AppUI {
	params := cfg.Params()
	ui := &AppUI{
		App:         a,
		Window:      win,
		updateChan:  updateChan,
		controlChan: controlChan,
		plotWidth:   512,
		plotHeight:  512,
		brushRadius: params.BrushRadius,
		brushEnergy: params.BrushEnergy,
	}
	ui.packet.x0, ui.packet.y0 = params.X0, params.Y0
	ui.packet.px, ui.packet.py = params.Px, params.Py
	ui.packet.sigma = params.Sigma

	ui.timeLabel = widget.NewLabel("t = 0.000000")
	ui.timeLabel.Alignment = fyne.TextAlignTrailing
	ui.normLabel = widget.NewLabel("norm = 1.000")
	ui.coordLabel = widget.NewLabel("cell: (---, ---)")

	startButton := widget.NewButton("Start", func() {
		ui.send(ControlMsg{Command: cmdStart})
	})
	stopButton := widget.NewButton("Stop", func() {
		ui.send(ControlMsg{Command: cmdStop})
	})
	resetButton := widget.NewButton("Reset...", func() {
		ui.showResetForm()
	})

	brightLabel := widget.NewLabel(fmt.Sprintf("%.2f", params.Brightness))
	brightSlider := widget.NewSlider(0.05, 20)
	brightSlider.SetValue(params.Brightness)
	brightSlider.Step = 0.05
	brightSlider.OnChanged = func(val float64) {
		brightLabel.SetText(fmt.Sprintf("%.2f", val))
		ui.send(ControlMsg{Command: cmdBrightness, Value: val})
	}

	radiusSlider := widget.NewSlider(1, 30)
	radiusSlider.SetValue(ui.brushRadius)
	radiusSlider.OnChanged = func(val float64) { ui.brushRadius = val }

	energySlider := widget.NewSlider(-params.WallEnergy/5, params.WallEnergy/5)
	energySlider.SetValue(ui.brushEnergy)
	energySlider.OnChanged = func(val float64) { ui.brushEnergy = val }

	presets := Presets()
	presetNames := make([]string, len(presets))
	for i, p := range presets {
		presetNames[i] = p.String()
	}
	presetSelect := widget.NewSelect(presetNames, func(name string) {
		for i, p := range presets {
			if presetNames[i] == name {
				ui.send(ControlMsg{Command: cmdPreset, Preset: p})
				return
			}
		}
	})
	presetSelect.PlaceHolder = "Potential preset"

	boundarySelect := widget.NewSelect([]string{"reflective", "absorbing", "both"}, func(name string) {
		mode, err := ParseBoundaryMode(name)
		if err != nil {
			log.Printf("Bad boundary selection %q: %v", name, err)
			return
		}
		ui.send(ControlMsg{Command: cmdSetBoundary, Boundary: mode})
	})
	boundarySelect.SetSelected(params.Boundary.String())

	ui.densityPlot = canvas.NewRaster(ui.drawDensity)
	ui.densityPlot.SetMinSize(fyne.NewSize(float32(ui.plotWidth), float32(ui.plotHeight)))
	ui.phasePlot = canvas.NewRaster(ui.drawPhase)
	ui.phasePlot.SetMinSize(fyne.NewSize(float32(ui.plotWidth)/2, float32(ui.plotHeight)/2))

	paintLayer := newPaintableRaster(ui.densityPlot, ui.handlePaint, ui.handleHover)

	buttons := container.NewHBox(startButton, stopButton, resetButton)
	brightRow := container.NewBorder(nil, nil, widget.NewLabel("Brightness:"), brightLabel, brightSlider)
	brushRow := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel("Brush radius:"), nil, radiusSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Brush energy:"), nil, energySlider),
	)
	selects := container.NewGridWithColumns(2, presetSelect, boundarySelect)
	status := container.NewBorder(nil, nil, ui.coordLabel, container.NewHBox(ui.normLabel, ui.timeLabel))
	controls := container.NewVBox(buttons, brightRow, brushRow, selects, status)

	plots := container.NewBorder(nil, nil, nil,
		container.NewVBox(widget.NewLabelWithStyle("Phase", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}), ui.phasePlot),
		paintLayer)
	ui.Container = container.NewBorder(nil, controls, nil, nil, plots)

	// Arrow keys shift the packet by whole cells (wrap at the edges).
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		const cells = 4
		switch ev.Name {
		case fyne.KeyLeft:
			ui.send(ControlMsg{Command: cmdShift, ShiftX: -cells, Edge: EdgeWrap})
		case fyne.KeyRight:
			ui.send(ControlMsg{Command: cmdShift, ShiftX: cells, Edge: EdgeWrap})
		case fyne.KeyUp:
			ui.send(ControlMsg{Command: cmdShift, ShiftY: -cells, Edge: EdgeWrap})
		case fyne.KeyDown:
			ui.send(ControlMsg{Command: cmdShift, ShiftY: cells, Edge: EdgeWrap})
		}
	})

	go ui.guiUpdateLoop()
	log.Println("Main UI ready")
	return ui
}

// send forwards a control message without blocking the GUI thread.
func (ui *AppUI) send(msg ControlMsg) {
	select {
	case ui.controlChan <- msg:
	default:
		log.Printf("Control channel full, dropping %q", msg.Command)
	}
}

// guiUpdateLoop receives snapshots and refreshes the plots.
func (ui *AppUI) guiUpdateLoop() {
	for pd := range ui.updateChan {
		if pd.Err != nil {
			log.Printf("Snapshot carries error: %v", pd.Err)
			dialog.ShowError(pd.Err, ui.Window)
			continue
		}
		ui.plotMutex.Lock()
		ui.lastPlotData = pd
		ui.plotMutex.Unlock()

		ui.timeLabel.SetText(fmt.Sprintf("t = %.6f", pd.Time))
		ui.normLabel.SetText(fmt.Sprintf("norm = %.3f", pd.Norm))
		ui.densityPlot.Refresh()
		ui.phasePlot.Refresh()
	}
	log.Println("GUI update loop finished (update channel closed)")
}

func (ui *AppUI) drawDensity(w, h int) image.Image {
	ui.plotMutex.Lock()
	pd := ui.lastPlotData
	ui.plotMutex.Unlock()
	ui.plotWidth, ui.plotHeight = w, h
	return densityImage(&pd, w, h)
}

func (ui *AppUI) drawPhase(w, h int) image.Image {
	ui.plotMutex.Lock()
	pd := ui.lastPlotData
	ui.plotMutex.Unlock()
	return phaseImage(&pd, w, h)
}

// cellAt converts a plot position to grid cell coordinates.
func (ui *AppUI) cellAt(pos fyne.Position) (int, int, bool) {
	ui.plotMutex.Lock()
	gw, gh := ui.lastPlotData.Width, ui.lastPlotData.Height
	ui.plotMutex.Unlock()
	if gw <= 0 || gh <= 0 || ui.plotWidth < 1 || ui.plotHeight < 1 {
		return 0, 0, false
	}
	cx := int(float64(pos.X) / float64(ui.plotWidth) * float64(gw))
	cy := int(float64(pos.Y) / float64(ui.plotHeight) * float64(gh))
	if cx < 0 || cx >= gw || cy < 0 || cy >= gh {
		return 0, 0, false
	}
	return cx, cy, true
}

// handlePaint paints the potential brush at the pointer position.
func (ui *AppUI) handlePaint(pos fyne.Position) {
	cx, cy, ok := ui.cellAt(pos)
	if !ok {
		return
	}
	ui.send(ControlMsg{
		Command: cmdPaint,
		CellX:   cx,
		CellY:   cy,
		Radius:  ui.brushRadius,
		Energy:  ui.brushEnergy,
	})
}

// handleHover updates the coordinate readout.
func (ui *AppUI) handleHover(pos fyne.Position, exited bool) {
	if exited {
		ui.coordLabel.SetText("cell: (---, ---)")
		return
	}
	if cx, cy, ok := ui.cellAt(pos); ok {
		ui.coordLabel.SetText(fmt.Sprintf("cell: (%d, %d)", cx, cy))
	}
}

// showResetForm asks for new packet parameters and sends a reset.
func (ui *AppUI) showResetForm() {
	x0 := widget.NewEntry()
	x0.SetText(strconv.FormatFloat(ui.packet.x0, 'g', -1, 64))
	y0 := widget.NewEntry()
	y0.SetText(strconv.FormatFloat(ui.packet.y0, 'g', -1, 64))
	px := widget.NewEntry()
	px.SetText(strconv.FormatFloat(ui.packet.px, 'g', -1, 64))
	py := widget.NewEntry()
	py.SetText(strconv.FormatFloat(ui.packet.py, 'g', -1, 64))
	sigma := widget.NewEntry()
	sigma.SetText(strconv.FormatFloat(ui.packet.sigma, 'g', -1, 64))

	items := []*widget.FormItem{
		widget.NewFormItem("x0", x0),
		widget.NewFormItem("y0", y0),
		widget.NewFormItem("px", px),
		widget.NewFormItem("py", py),
		widget.NewFormItem("sigma", sigma),
	}
	dialog.ShowForm("Reset wave packet", "Reset", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		vals := make([]float64, 5)
		for i, e := range []*widget.Entry{x0, y0, px, py, sigma} {
			v, err := strconv.ParseFloat(e.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid number %q: %v", e.Text, err), ui.Window)
				return
			}
			vals[i] = v
		}
		ui.packet.x0, ui.packet.y0 = vals[0], vals[1]
		ui.packet.px, ui.packet.py = vals[2], vals[3]
		ui.packet.sigma = vals[4]
		ui.send(ControlMsg{
			Command: cmdReset,
			X0:      vals[0], Y0: vals[1],
			Px: vals[2], Py: vals[3],
			Sigma: vals[4],
		})
	}, ui.Window)
}
