package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"tickd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "TICKD_LOG_LEVEL")
	viper.BindEnv("redis.addr", "TICKD_REDIS_ADDR")
	viper.BindEnv("redis.password", "TICKD_REDIS_PASSWORD")
	viper.BindEnv("push.subject", "TICKD_VAPID_SUBJECT")
	viper.BindEnv("push.publicKey", "TICKD_VAPID_PUBLIC_KEY")
	viper.BindEnv("push.privateKey", "TICKD_VAPID_PRIVATE_KEY")
	viper.BindEnv("cron.secret", "TICKD_CRON_SECRET")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	applyDefaults(&conf)

	conf.AppName = "TickReminderDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Tracker.HistoryLimit <= 0 {
		conf.Tracker.HistoryLimit = 30
	}
	if conf.Tracker.FallbackIshaMinutes <= 0 {
		// 20:30, used when the timings lookup is unreachable
		conf.Tracker.FallbackIshaMinutes = 20*60 + 30
	}
	if conf.Prayer.URL == "" {
		conf.Prayer.URL = "https://api.aladhan.com/v1/timings"
	}
}
