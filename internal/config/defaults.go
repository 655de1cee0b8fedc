package config

const (
	defaultDataDir                = "~/.local/share/episodemap"
	defaultLogDir                 = "~/.local/share/episodemap/logs"
	defaultSourceMode             = SourceModeAPI
	defaultSourceAPIURL           = "https://cyclowiki.org/w/api.php"
	defaultSourceIndexURL         = "https://cyclowiki.org/w/index.php"
	defaultSourcePage             = "Выпуски_телепередачи_«Орёл_и_решка»"
	defaultSourceSection          = 2
	defaultSourceUserAgent        = "episodemap/dev"
	defaultSourceTimeoutSeconds   = 30
	defaultSourceRequestsPerSec   = 1.0
	defaultGeocoderBaseURL        = "https://nominatim.openstreetmap.org"
	defaultGeocoderUserAgent      = "orel-reshka-map"
	defaultGeocoderMinDelayMillis = 1000
	defaultGeocoderTimeoutSeconds = 15
	defaultGeocoderRequestsPerSec = 1.0
	defaultCacheBackend           = CacheBackendSQLite
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Source modes.
const (
	SourceModeAPI  = "api"
	SourceModeEdit = "edit"
	SourceModeFile = "file"
)

// Cache backends.
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendJSON   = "json"
	CacheBackendMemory = "memory"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Source: Source{
			Mode:              defaultSourceMode,
			APIURL:            defaultSourceAPIURL,
			IndexURL:          defaultSourceIndexURL,
			Page:              defaultSourcePage,
			Section:           defaultSourceSection,
			UserAgent:         defaultSourceUserAgent,
			TimeoutSeconds:    defaultSourceTimeoutSeconds,
			RequestsPerSecond: defaultSourceRequestsPerSec,
		},
		Geocoder: Geocoder{
			BaseURL:           defaultGeocoderBaseURL,
			UserAgent:         defaultGeocoderUserAgent,
			MinDelayMillis:    defaultGeocoderMinDelayMillis,
			TimeoutSeconds:    defaultGeocoderTimeoutSeconds,
			RequestsPerSecond: defaultGeocoderRequestsPerSec,
		},
		Cache: Cache{
			Backend: defaultCacheBackend,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
