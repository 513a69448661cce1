package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	BridgeTasksSubmittedTotal metric.Int64Counter
	BridgeTasksCompletedTotal metric.Int64Counter
	BridgeTaskDurationSeconds metric.Float64Histogram
	BridgeRunTimeoutsTotal    metric.Int64Counter
	BridgeTasksInFlight       metric.Int64UpDownCounter

	ChatRequestsTotal      metric.Int64Counter
	ChatDurationSeconds    metric.Float64Histogram
	FlightLookupsTotal     metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics creates every instrument on the given meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	if m.BridgeTasksSubmittedTotal, err = meter.Int64Counter(
		"bridge_tasks_submitted_total",
		metric.WithDescription("Total number of tasks submitted to the async bridge"),
		metric.WithUnit("{task}"),
	); err != nil {
		return nil, fmt.Errorf("bridge_tasks_submitted_total: %w", err)
	}

	if m.BridgeTasksCompletedTotal, err = meter.Int64Counter(
		"bridge_tasks_completed_total",
		metric.WithDescription("Total number of async bridge tasks resolved, by outcome"),
		metric.WithUnit("{task}"),
	); err != nil {
		return nil, fmt.Errorf("bridge_tasks_completed_total: %w", err)
	}

	if m.BridgeTaskDurationSeconds, err = meter.Float64Histogram(
		"bridge_task_duration_seconds",
		metric.WithDescription("Time from submission to resolution of async bridge tasks"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("bridge_task_duration_seconds: %w", err)
	}

	if m.BridgeRunTimeoutsTotal, err = meter.Int64Counter(
		"bridge_run_timeouts_total",
		metric.WithDescription("Total number of blocking runs that gave up waiting"),
		metric.WithUnit("{timeout}"),
	); err != nil {
		return nil, fmt.Errorf("bridge_run_timeouts_total: %w", err)
	}

	if m.BridgeTasksInFlight, err = meter.Int64UpDownCounter(
		"bridge_tasks_in_flight",
		metric.WithDescription("Tasks queued or running on the async bridge"),
		metric.WithUnit("{task}"),
	); err != nil {
		return nil, fmt.Errorf("bridge_tasks_in_flight: %w", err)
	}

	if m.ChatRequestsTotal, err = meter.Int64Counter(
		"chat_requests_total",
		metric.WithDescription("Total number of chat queries processed"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("chat_requests_total: %w", err)
	}

	if m.ChatDurationSeconds, err = meter.Float64Histogram(
		"chat_duration_seconds",
		metric.WithDescription("Duration of chat queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("chat_duration_seconds: %w", err)
	}

	if m.FlightLookupsTotal, err = meter.Int64Counter(
		"flight_lookups_total",
		metric.WithDescription("Total number of flight API lookups"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("flight_lookups_total: %w", err)
	}

	if m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("db_query_duration_seconds: %w", err)
	}

	if m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("db_query_errors_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("LankaTravelGuide")
		m, err := NewAppMetrics(meter)
		if err != nil {
			log.Fatalf("Metrics: Failed to create instruments: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
