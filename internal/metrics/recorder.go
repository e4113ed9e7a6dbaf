package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"intervaltimer/internal/core/countdown"
	"intervaltimer/internal/core/model"
)

// Recorder turns countdown events into Prometheus series.
type Recorder struct {
	runsStarted      prometheus.Counter
	runsFinished     *prometheus.CounterVec
	StartsRejected   *prometheus.CounterVec
	Notifications    prometheus.Counter
	repeatsCompleted prometheus.Counter
	remainingSeconds prometheus.Gauge
	repeatIndex      prometheus.Gauge
	phase            *prometheus.GaugeVec
}

var phases = []countdown.Phase{
	countdown.PhaseIdle,
	countdown.PhaseRunning,
	countdown.PhaseAwaitingReset,
	countdown.PhaseCompleted,
}

// New creates a Recorder and registers its collectors with registry.
func New(registry prometheus.Registerer) *Recorder {
	recorder := &Recorder{
		runsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "interval_timer_runs_started_total",
				Help: "Total number of runs started",
			},
		),
		runsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interval_timer_runs_finished_total",
				Help: "Total number of runs that left the active phases, by reason",
			},
			[]string{"reason"},
		),
		StartsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interval_timer_starts_rejected_total",
				Help: "Total number of start requests rejected by validation",
			},
			[]string{"kind"},
		),
		Notifications: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "interval_timer_notifications_total",
				Help: "Total number of interval expiry cues fired",
			},
		),
		repeatsCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "interval_timer_repeats_completed_total",
				Help: "Total number of repeats that ran through their grace window",
			},
		),
		remainingSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "interval_timer_remaining_seconds",
				Help: "Seconds left in the current interval",
			},
		),
		repeatIndex: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "interval_timer_repeat_index",
				Help: "Zero-based index of the current repeat",
			},
		),
		phase: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "interval_timer_phase",
				Help: "1 for the engine's current phase, 0 otherwise",
			},
			[]string{"phase"},
		),
	}

	registry.MustRegister(
		recorder.runsStarted,
		recorder.runsFinished,
		recorder.StartsRejected,
		recorder.Notifications,
		recorder.repeatsCompleted,
		recorder.remainingSeconds,
		recorder.repeatIndex,
		recorder.phase,
	)
	recorder.setPhase(countdown.PhaseIdle)
	return recorder
}

// Observe updates the series for one event.
func (recorder *Recorder) Observe(event countdown.Event) {
	recorder.remainingSeconds.Set(float64(event.State.RemainingSeconds))
	recorder.repeatIndex.Set(float64(event.State.RepeatIndex))

	switch event.Type {
	case countdown.EventExpired:
		recorder.Notifications.Inc()
	case countdown.EventRepeatCompleted:
		recorder.repeatsCompleted.Inc()
	case countdown.EventStateChange:
		if event.State.Phase == countdown.PhaseRunning && event.State.RepeatIndex == 0 {
			recorder.runsStarted.Inc()
		}
		if event.State.Phase == countdown.PhaseIdle && event.Message != "" {
			recorder.runsFinished.WithLabelValues(event.Message).Inc()
		}
	}
	recorder.setPhase(event.State.Phase)
}

// Rejected counts a start request that failed validation.
func (recorder *Recorder) Rejected(err error) {
	kind := "other"
	switch {
	case errors.Is(err, model.ErrInvalidInterval):
		kind = "invalid_interval"
	case errors.Is(err, model.ErrInsufficientTotalTime):
		kind = "insufficient_total_time"
	}
	recorder.StartsRejected.WithLabelValues(kind).Inc()
}

func (recorder *Recorder) setPhase(current countdown.Phase) {
	for _, phase := range phases {
		value := 0.0
		if phase == current {
			value = 1
		}
		recorder.phase.WithLabelValues(string(phase)).Set(value)
	}
}
