package report

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

	corereport "github.com/kilianp07/fuelstats/core/report"
	"github.com/kilianp07/fuelstats/infra/logger"
)

// InfluxConfig holds the InfluxDB v2 connection settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes reports to InfluxDB: one point per year and one summary
// point, all stamped with the report generation time.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given endpoint.
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

// NewInfluxSinkWithFallback pings InfluxDB first and returns a NopSink when
// the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) corereport.Sink {
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
		return corereport.NopSink{}
	}
	return sink
}

// Publish writes the report points in one request.
func (s *InfluxSink) Publish(ctx context.Context, r corereport.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, reportPoints(r)...)
}

func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func reportPoints(r corereport.Report) []*write.Point {
	liters := make(map[int]float64, len(r.LitersPerYear))
	for _, y := range r.LitersPerYear {
		liters[y.Year] = y.Total
	}
	points := make([]*write.Point, 0, len(r.CostPerYear)+1)
	for _, y := range r.CostPerYear {
		p := write.NewPointWithMeasurement("fuel_year").
			AddTag("source", r.Source).
			AddTag("year", strconv.Itoa(y.Year)).
			AddTag("run_id", r.RunID).
			AddField("cost", round3(y.Total)).
			AddField("liters", round3(liters[y.Year])).
			SetTime(r.GeneratedAt)
		points = append(points, p)
	}
	summary := write.NewPointWithMeasurement("fuel_summary").
		AddTag("source", r.Source).
		AddTag("run_id", r.RunID).
		AddField("records", r.Records).
		AddField("kilometers", r.Kilometers).
		AddField("liters", round3(r.TotalLiters)).
		AddField("cost", round3(r.TotalCost)).
		AddField("price_per_liter", round3(r.AveragePrice)).
		AddField("consumption_per_100km", round3(r.Consumption)).
		AddField("cost_per_100km", round3(r.CostPer100km)).
		SetTime(r.GeneratedAt)
	return append(points, summary)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
