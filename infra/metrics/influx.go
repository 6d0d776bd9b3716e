package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/powerplan/core/events"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/infra/logger"
)

// InfluxConfig holds the connection settings of the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes production plans to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes a production_plan point and one plant_setpoint point per
// committed plant.
func (s *InfluxSink) RecordPlan(rec coremetrics.PlanRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("production_plan").
		AddTag("plan_id", rec.PlanID).
		AddTag("strategy", rec.Strategy).
		AddTag("feasible", strconv.FormatBool(rec.Feasible)).
		AddField("load_mw", round3(rec.Load)).
		AddField("committed_mw", round3(rec.Entries.Total())).
		AddField("plants", len(rec.Entries)).
		AddField("co2_tons", round3(rec.CO2Tons)).
		AddField("duration_ms", round3(float64(rec.Duration)/float64(time.Millisecond))).
		SetTime(rec.Time)
	if rec.Error != "" {
		p = p.AddField("error", rec.Error)
	}
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for _, e := range rec.Entries {
		sp := write.NewPointWithMeasurement("plant_setpoint").
			AddTag("plan_id", rec.PlanID).
			AddTag("plant", e.Name).
			AddField("power_mw", round3(e.Power)).
			SetTime(rec.Time)
		if err := s.writeAPI.WritePoint(ctx, sp); err != nil {
			return err
		}
	}
	return nil
}

// RecordStrategyFallback records an LP failure.
func (s *InfluxSink) RecordStrategyFallback(ev coremetrics.StrategyFallback) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("strategy_fallback").
		AddTag("plan_id", ev.PlanID).
		AddTag("component", "plan_manager").
		AddField("reason", ev.Reason).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordStrategyEvent writes a dispatcher selection event received on the bus.
func (s *InfluxSink) RecordStrategyEvent(ev events.StrategyEvent, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("dispatch_strategy").
		AddTag("plan_id", ev.PlanID).
		AddTag("action", ev.Action)
	if ev.Err != nil {
		p = p.AddField("error", ev.Err.Error())
	} else {
		p = p.AddField("error", "")
	}
	return s.writeAPI.WritePoint(ctx, p.SetTime(at))
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
