package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	ArchiveDir   string        `yaml:"archiveDir"`
	ArchiveTTL   time.Duration `yaml:"archiveTTL"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type TrackerConfig struct {
	DefaultMode         string        `yaml:"defaultMode" validate:"required|in:normal,ramadan"`
	HistoryLimit        int           `yaml:"historyLimit"`
	CheckInterval       time.Duration `yaml:"checkInterval" validate:"required|min:1"`
	FallbackIshaMinutes int           `yaml:"fallbackIshaMinutes"`
}

type PrayerConfig struct {
	URL       string  `yaml:"url"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Method    int     `yaml:"method"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PushConfig struct {
	Subject    string `yaml:"subject"`
	PublicKey  string `yaml:"publicKey"`
	PrivateKey string `yaml:"privateKey"`
}

type CronConfig struct {
	Secret string `yaml:"secret"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Tracker     TrackerConfig `yaml:"tracker"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Prayer      PrayerConfig  `yaml:"prayer"`
	Redis       RedisConfig   `yaml:"redis"`
	Push        PushConfig    `yaml:"push"`
	Cron        CronConfig    `yaml:"cron"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
