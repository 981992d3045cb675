// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "momentum"

const (
	TaskCreated   = "created"
	TaskUpdated   = "updated"
	TaskDeleted   = "deleted"
	TaskCompleted = "completed"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route template and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	taskEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_events_total",
		Help:      "Successful task mutations by kind.",
	}, []string{"event"})
	workoutMarks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workout_marks_total",
		Help:      "Workout log updates by reported outcome.",
	}, []string{"did_workout"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, taskEvents, workoutMarks)
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordTaskEvent(event string) {
	taskEvents.WithLabelValues(event).Inc()
}

func RecordWorkoutMark(didWorkout bool) {
	workoutMarks.WithLabelValues(strconv.FormatBool(didWorkout)).Inc()
}
