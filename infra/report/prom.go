package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	corereport "github.com/kilianp07/fuelstats/core/report"
	"github.com/kilianp07/fuelstats/infra/logger"
)

// PromConfig selects where the gauges end up. Both targets may be set.
type PromConfig struct {
	// Textfile is written in the exposition format, for the node exporter
	// textfile collector.
	Textfile string `json:"textfile"`
	// PushgatewayURL receives the gauges under Job.
	PushgatewayURL string `json:"pushgateway_url"`
	Job            string `json:"job"`
}

// PromSink exposes the report as Prometheus gauges. A batch run has no
// scrape endpoint, so the gauges are written out on Publish.
type PromSink struct {
	cfg PromConfig
	reg *prometheus.Registry
	log logger.Logger

	costPerYear   *prometheus.GaugeVec
	litersPerYear *prometheus.GaugeVec
	distance      prometheus.Gauge
	liters        prometheus.Gauge
	cost          prometheus.Gauge
	price         prometheus.Gauge
	consumption   prometheus.Gauge
	costPer100km  prometheus.Gauge
	records       prometheus.Gauge
}

// NewPromSink registers the report gauges on a private registry.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	if cfg.Textfile == "" && cfg.PushgatewayURL == "" {
		return nil, fmt.Errorf("prometheus sink needs textfile or pushgateway_url")
	}
	if cfg.Job == "" {
		cfg.Job = "fuelstats"
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	}
	s := &PromSink{
		cfg: cfg,
		reg: prometheus.NewRegistry(),
		log: logger.New("prom-sink"),
		costPerYear: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fuel_cost_per_year",
			Help: "Money spent on fuel per calendar year",
		}, []string{"year"}),
		litersPerYear: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fuel_liters_per_year",
			Help: "Liters filled per calendar year",
		}, []string{"year"}),
		distance:     gauge("fuel_distance_km", "Distance between first and last odometer reading"),
		liters:       gauge("fuel_liters_total", "Liters filled over the whole log"),
		cost:         gauge("fuel_cost_total", "Money spent over the whole log"),
		price:        gauge("fuel_price_per_liter", "Total cost divided by total liters"),
		consumption:  gauge("fuel_consumption_liters_per_100km", "Liters used per 100 km"),
		costPer100km: gauge("fuel_cost_per_100km", "Money spent per 100 km"),
		records:      gauge("fuel_log_records", "Number of entries in the fuel log"),
	}
	for _, c := range []prometheus.Collector{
		s.costPerYear, s.litersPerYear, s.distance, s.liters, s.cost,
		s.price, s.consumption, s.costPer100km, s.records,
	} {
		if err := s.reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Publish sets the gauges and writes them to the configured targets.
func (s *PromSink) Publish(ctx context.Context, r corereport.Report) error {
	s.costPerYear.Reset()
	s.litersPerYear.Reset()
	for _, y := range r.CostPerYear {
		s.costPerYear.WithLabelValues(strconv.Itoa(y.Year)).Set(y.Total)
	}
	for _, y := range r.LitersPerYear {
		s.litersPerYear.WithLabelValues(strconv.Itoa(y.Year)).Set(y.Total)
	}
	s.distance.Set(float64(r.Kilometers))
	s.liters.Set(r.TotalLiters)
	s.cost.Set(r.TotalCost)
	s.price.Set(r.AveragePrice)
	s.consumption.Set(r.Consumption)
	s.costPer100km.Set(r.CostPer100km)
	s.records.Set(float64(r.Records))

	if s.cfg.Textfile != "" {
		if err := prometheus.WriteToTextfile(s.cfg.Textfile, s.reg); err != nil {
			return fmt.Errorf("write textfile: %w", err)
		}
		s.log.Infof("metrics written to %s", s.cfg.Textfile)
	}
	if s.cfg.PushgatewayURL != "" {
		err := push.New(s.cfg.PushgatewayURL, s.cfg.Job).
			Gatherer(s.reg).
			Grouping("source", r.Source).
			PushContext(ctx)
		if err != nil {
			return fmt.Errorf("push metrics: %w", err)
		}
		s.log.Infof("metrics pushed to %s", s.cfg.PushgatewayURL)
	}
	return nil
}

func (s *PromSink) Close() error { return nil }
