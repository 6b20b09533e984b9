package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.RequestTimeoutSecs == 0 {
		cfg.Server.RequestTimeoutSecs = 60
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 20 << 20
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Analysis.DefaultThreshold == nil {
		t := DefaultThresholdValue
		cfg.Analysis.DefaultThreshold = &t
	}
	if cfg.Analysis.MaxDocuments == 0 {
		cfg.Analysis.MaxDocuments = 5
	}
	if cfg.Analysis.Extensions == nil {
		cfg.Analysis.Extensions = []string{".pdf", ".docx", ".txt"}
	}
	if cfg.Analysis.BlockSize == 0 {
		cfg.Analysis.BlockSize = 64
	}
	// Abbreviation guard defaults to true when unset (nil).
	if cfg.Analysis.AbbreviationGuard == nil {
		t := true
		cfg.Analysis.AbbreviationGuard = &t
	}
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
