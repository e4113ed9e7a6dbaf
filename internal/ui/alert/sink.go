package alert

import (
	"fyne.io/fyne/v2"

	"intervaltimer/internal/core/notify"
)

// Sink posts a desktop notification for each expired interval.
type Sink struct {
	app     fyne.App
	title   string
	message string
}

var _ notify.Sink = (*Sink)(nil)

// New creates a notification sink bound to app.
func New(app fyne.App, title, message string) *Sink {
	return &Sink{app: app, title: title, message: message}
}

// Fire hands the notification to the UI goroutine and returns immediately.
func (sink *Sink) Fire() {
	notification := fyne.NewNotification(sink.title, sink.message)
	fyne.Do(func() {
		sink.app.SendNotification(notification)
	})
}
