package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"fuelgauge/internal/config"
	"fuelgauge/internal/max17048"
	"fuelgauge/internal/poller"
	"fuelgauge/internal/sensor"
	"fuelgauge/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: fuelgauge <config.yaml>")
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting fuelgauge")

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	bus, err := i2creg.Open(cfg.I2C.Bus)
	if err != nil {
		log.Fatalf("failed to open I2C: %v", err)
	}
	defer bus.Close()

	mx, err := max17048.NewMAX17048(bus, cfg.I2C.Address, logger)
	if err != nil {
		log.Fatalf("failed to init MAX17048: %v", err)
	}
	gauge := max17048.NewComponent(mx, cfg.UpdateInterval)

	src := server.Sources{Charge: gauge, Diagnostics: gauge}
	if sc := cfg.Sensors.BatteryVoltage; sc != nil {
		s := sensor.NewBatteryVoltage(sc.Name)
		s.AddOnStateCallback(logState(logger, s))
		gauge.SetBatteryVoltageSensor(s)
		src.Voltage = s
	}
	if sc := cfg.Sensors.BatteryLevel; sc != nil {
		s := sensor.NewBatteryLevel(sc.Name)
		s.AddOnStateCallback(logState(logger, s))
		gauge.SetBatteryLevelSensor(s)
		src.Level = s
	}
	if sc := cfg.Sensors.BatteryChargeRate; sc != nil {
		s := sensor.NewBatteryChargeRate(sc.Name)
		s.AddOnStateCallback(logState(logger, s))
		gauge.SetBatteryChargeRateSensor(s)
		src.ChargeRate = s
	}

	sched := poller.New(logger)
	if err := sched.Register(gauge); err != nil {
		log.Fatalf("register MAX17048: %v", err)
	}
	sched.Setup()

	logger.Info("hardware initialized", "bus", bus.String(), "addr", mx.Addr())

	checkGauge(logger, mx)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Run(ctx)
	}()

	if port := cfg.Server.Port; port != 0 {
		if err := server.New(src, logger).Run(ctx, port); err != nil {
			logger.Error("server failed", "err", err)
			stop()
		}
	}

	wg.Wait()
	logger.Info("stopped")
}

type statusReader interface {
	GetStatus() (voltage float64, soc float64, err error)
}

// checkGauge reads the gauge once with errors surfaced. Polling reports a
// failed read as zero, so this is the only place a dead bus shows up.
func checkGauge(logger *slog.Logger, g statusReader) bool {
	v, soc, err := g.GetStatus()
	if err != nil {
		logger.Warn("MAX17048 not responding, readings will be zero", "err", err)
		return false
	}
	logger.Info("MAX17048 responding", "voltage", v, "soc", soc)
	return true
}

func logState(logger *slog.Logger, s *sensor.Sensor) func(float64) {
	return func(v float64) {
		logger.Debug("state", "sensor", s.Name(), "value", v, "unit", s.Unit())
	}
}
