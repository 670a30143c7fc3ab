package config

const (
	defaultDataDir           = "~/.local/share/tablehash"
	defaultCSVSampleBytes    = 2048
	defaultDecimalSampleRows = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Loader: Loader{
			CSVSampleBytes:    defaultCSVSampleBytes,
			DecimalSampleRows: defaultDecimalSampleRows,
			GuessFallback:     true,
		},
		Fingerprint: Fingerprint{
			StoreHistory: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
