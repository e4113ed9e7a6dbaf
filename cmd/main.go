package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intervaltimer/internal/controller"
	"intervaltimer/internal/core/notify"
	"intervaltimer/internal/core/schedule"
	"intervaltimer/internal/platform"
	"intervaltimer/internal/storage"
	"intervaltimer/internal/ui/alert"
	"intervaltimer/internal/ui/preferences"
	"intervaltimer/internal/ui/runform"
	"intervaltimer/internal/ui/tray"
)

const appName = "IntervalTimer"

func main() {
	settings, loadErr := storage.LoadSettings(appName)
	applyFlags(&settings)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: settings.SlogLevel()}))
	if loadErr != nil {
		logger.Warn("using default settings", slog.String("error", loadErr.Error()))
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Error("single instance", slog.String("error", err.Error()))
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.intervaltimer.app")
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	registry := prometheus.NewRegistry()
	scheduler := schedule.NewSystem(schedule.Config{TickInterval: schedule.TickInterval})
	defer scheduler.Close()

	sink := notify.Multi(
		alert.New(fyneApp, settings.NotificationTitle, settings.NotificationMessage),
		notify.NewLogSink(logger, "interval finished"),
	)
	timer := controller.New(scheduler, sink,
		controller.WithLogger(logger),
		controller.WithMetricsRegistry(registry),
		controller.WithGraceDelay(settings.GraceDelay),
	)

	if settings.MetricsAddr != "" {
		go serveMetrics(logger, settings.MetricsAddr, registry)
	}

	startRun := func(updated preferences.Settings) error {
		_, err := timer.Start(updated.TotalSeconds(), updated.IntervalSeconds, updated.StartOptions()...)
		if err != nil {
			return err
		}
		settings = updated
		return nil
	}

	form := runform.New(fyneApp, settings, startRun)

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnConfigure: form.Show,
		OnStart: func() {
			if err := startRun(settings); err != nil {
				form.Show()
			}
		},
		OnStop: timer.Stop,
		OnQuit: func() {
			timer.Close()
			fyneApp.Quit()
		},
	})

	events := timer.Subscribe(16)
	go func() {
		for event := range events {
			state := event.State
			fyne.Do(func() {
				trayManager.Update(state)
			})
		}
	}()

	form.Show()
	fyneApp.Run()
}

func applyFlags(settings *preferences.Settings) {
	totalMinutes := flag.Int("total-minutes", settings.TotalMinutes, "Total session time in minutes")
	intervalSeconds := flag.Int("interval", settings.IntervalSeconds, "Interval length in seconds")
	repeats := flag.Int("repeats", settings.Repeats, "Repeat count override (0 derives it from the total)")
	logLevel := flag.String("log-level", settings.LogLevel, "Logging level (trace|debug|info|warning|error)")
	metricsAddr := flag.String("metrics-addr", settings.MetricsAddr, "Address for the Prometheus /metrics endpoint (empty disables it)")
	flag.Parse()

	settings.TotalMinutes = *totalMinutes
	settings.IntervalSeconds = *intervalSeconds
	settings.Repeats = *repeats
	settings.LogLevel = *logLevel
	settings.MetricsAddr = *metricsAddr
}

func serveMetrics(logger *slog.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server", slog.String("error", err.Error()))
	}
}
