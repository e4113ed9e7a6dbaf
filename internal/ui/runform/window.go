package runform

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/ui/preferences"
)

// Window collects the inputs for a run.
type Window struct {
	window   fyne.Window
	settings preferences.Settings
	onStart  func(preferences.Settings) error
	total    *widget.Entry
	interval *widget.Entry
	repeats  *widget.Entry
	derived  *widget.Label
}

// New creates the run form pre-filled from settings. onStart receives the
// edited settings; a returned error is shown to the user and keeps the form
// open.
func New(app fyne.App, settings preferences.Settings, onStart func(preferences.Settings) error) *Window {
	window := app.NewWindow("Interval Timer")

	total := widget.NewEntry()
	interval := widget.NewEntry()
	repeats := widget.NewEntry()
	repeats.SetPlaceHolder("auto")
	derived := widget.NewLabel("")

	form := container.NewVBox(
		container.NewHBox(widget.NewLabel("Total time"), total, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Interval"), interval, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Repeats"), repeats, derived),
	)

	startButton := widget.NewButton("Start", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(startButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 200))

	runForm := &Window{
		window:   window,
		settings: settings,
		onStart:  onStart,
		total:    total,
		interval: interval,
		repeats:  repeats,
		derived:  derived,
	}
	runForm.fill(settings)

	total.OnChanged = func(string) { runForm.refreshDerived() }
	interval.OnChanged = func(string) { runForm.refreshDerived() }
	startButton.OnTapped = runForm.handleStart
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)

	return runForm
}

// Show displays the form.
func (runForm *Window) Show() {
	runForm.window.Show()
	runForm.window.RequestFocus()
}

func (runForm *Window) fill(settings preferences.Settings) {
	runForm.total.SetText(strconv.Itoa(settings.TotalMinutes))
	runForm.interval.SetText(strconv.Itoa(settings.IntervalSeconds))
	if settings.Repeats > 0 {
		runForm.repeats.SetText(strconv.Itoa(settings.Repeats))
	} else {
		runForm.repeats.SetText("")
	}
	runForm.refreshDerived()
}

func (runForm *Window) refreshDerived() {
	minutes, _ := strconv.Atoi(runForm.total.Text)
	seconds, _ := strconv.Atoi(runForm.interval.Text)
	count, err := model.ComputeRepeatCount(minutes*60, seconds)
	if err != nil {
		runForm.derived.SetText("")
		return
	}
	runForm.derived.SetText(fmt.Sprintf("(fits %d)", count))
}

func (runForm *Window) handleStart() {
	settings := runForm.settings
	settings.TotalMinutes, _ = strconv.Atoi(runForm.total.Text)
	settings.IntervalSeconds, _ = strconv.Atoi(runForm.interval.Text)
	settings.Repeats = 0
	if repeats, err := strconv.Atoi(runForm.repeats.Text); err == nil && repeats > 0 {
		settings.Repeats = repeats
	}

	if runForm.onStart != nil {
		if err := runForm.onStart(settings); err != nil {
			dialog.ShowError(err, runForm.window)
			return
		}
	}
	runForm.settings = settings
	runForm.window.Hide()
}
