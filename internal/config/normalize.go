package config

// Normalize applies defaults.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.I2C.Address == 0 {
		cfg.I2C.Address = DefaultAddress
	}
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = DefaultUpdateInterval
	}

	// Omitted server block keeps the historical port; an explicit 0
	// disables the server.
	if cfg.Server == nil {
		cfg.Server = &ServerConfig{Port: DefaultPort}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	s := &cfg.Sensors
	if s.BatteryVoltage != nil && s.BatteryVoltage.Name == "" {
		s.BatteryVoltage.Name = "Battery Voltage"
	}
	if s.BatteryLevel != nil && s.BatteryLevel.Name == "" {
		s.BatteryLevel.Name = "Battery Level"
	}
	if s.BatteryChargeRate != nil && s.BatteryChargeRate.Name == "" {
		s.BatteryChargeRate.Name = "Battery Charge Rate"
	}
}
