package runform

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/ui/preferences"
)

func TestNewFillsFromSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	form := New(app, preferences.DefaultSettings(), nil)

	assert.Equal(t, "30", form.total.Text)
	assert.Equal(t, "90", form.interval.Text)
	assert.Equal(t, "", form.repeats.Text)
	assert.Equal(t, "(fits 20)", form.derived.Text)
}

func TestDerivedHintFollowsInput(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	form := New(app, preferences.DefaultSettings(), nil)
	test.Type(form.interval, "0")
	assert.Equal(t, "900", form.interval.Text)
	assert.Equal(t, "(fits 2)", form.derived.Text)

	form.interval.SetText("0")
	form.refreshDerived()
	assert.Equal(t, "", form.derived.Text)
}

func TestStartPassesEditedSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var got preferences.Settings
	calls := 0
	form := New(app, preferences.DefaultSettings(), func(settings preferences.Settings) error {
		calls++
		got = settings
		return nil
	})

	form.total.SetText("2")
	form.interval.SetText("30")
	form.repeats.SetText("3")
	form.handleStart()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, got.TotalMinutes)
	assert.Equal(t, 30, got.IntervalSeconds)
	assert.Equal(t, 3, got.Repeats)
	assert.Equal(t, "Time is up!", got.NotificationMessage)
	assert.Equal(t, got, form.settings)
}

func TestStartIgnoresInvalidRepeats(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var got preferences.Settings
	form := New(app, preferences.Settings{TotalMinutes: 1, IntervalSeconds: 20, Repeats: 2}, func(settings preferences.Settings) error {
		got = settings
		return nil
	})
	assert.Equal(t, "2", form.repeats.Text)

	form.repeats.SetText("many")
	form.handleStart()
	assert.Equal(t, 0, got.Repeats)
}

func TestRejectedStartKeepsPreviousSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	defaults := preferences.DefaultSettings()
	form := New(app, defaults, func(preferences.Settings) error {
		return &model.ValidationError{Err: model.ErrInvalidInterval}
	})

	form.interval.SetText("0")
	form.handleStart()
	assert.Equal(t, defaults, form.settings)
}
