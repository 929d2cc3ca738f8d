package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fuelgauge/internal/max17048"
)

// StateReader is a published sensor value, before presentation rounding.
type StateReader interface {
	RawState() (float64, bool)
}

// ChargeIndicator reports the charge direction. ok is false while unknown.
type ChargeIndicator interface {
	Charging() (charging bool, ok bool)
}

// DiagnosticsSource exposes the gauge's setup-time diagnostics.
type DiagnosticsSource interface {
	Diagnostics() max17048.Diagnostics
}

// Sources holds the optional sensors to report. Nil fields are omitted.
type Sources struct {
	Voltage     StateReader
	Level       StateReader
	ChargeRate  StateReader
	Charge      ChargeIndicator
	Diagnostics DiagnosticsSource
}

type BatteryResponse struct {
	Level      int     `json:"sensor.battery_level"`
	Voltage    float64 `json:"sensor.battery_voltage"`
	ChargeRate float64 `json:"sensor.battery_charge_rate"`
	State      string  `json:"sensor.battery_state"`
	IsCharging bool    `json:"sensor.is_charging"`
}

type DiagnosticsResponse struct {
	ICVersion      string `json:"ic_version"`
	ChipID         string `json:"chip_id"`
	Failed         bool   `json:"failed"`
	UpdateInterval string `json:"update_interval"`
}

type Server struct {
	src Sources
	log *slog.Logger
}

func New(src Sources, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{src: src, log: logger.With("component", "server")}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.rootHandler)
	mux.HandleFunc("GET /diagnostics", s.diagnosticsHandler)
	return mux
}

// Run serves on port until ctx is done.
func (s *Server) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	// Defaults
	resp := BatteryResponse{
		State: "Discharging",
	}

	// Truncated, so Full means the gauge reports at least 100%.
	if v, ok := read(s.src.Level); ok {
		resp.Level = int(v)
	}
	if v, ok := read(s.src.Voltage); ok {
		resp.Voltage = v
	}
	if v, ok := read(s.src.ChargeRate); ok {
		resp.ChargeRate = v
	}

	charging := false
	if s.src.Charge != nil {
		charging, _ = s.src.Charge.Charging()
	}

	switch {
	case charging:
		resp.State = "Charging"
	case resp.Level >= 100:
		resp.State = "Full"
	}

	resp.IsCharging = (resp.State == "Charging")

	writeJSON(w, resp)
}

func (s *Server) diagnosticsHandler(w http.ResponseWriter, r *http.Request) {
	if s.src.Diagnostics == nil {
		http.Error(w, "no diagnostics", http.StatusNotFound)
		return
	}
	d := s.src.Diagnostics.Diagnostics()
	writeJSON(w, DiagnosticsResponse{
		ICVersion:      fmt.Sprintf("0x%04X", d.ICVersion),
		ChipID:         fmt.Sprintf("0x%02X", d.ChipID),
		Failed:         d.Failed,
		UpdateInterval: d.UpdateInterval.String(),
	})
}

func read(r StateReader) (float64, bool) {
	if r == nil {
		return 0, false
	}
	return r.RawState()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
