package bot

import (
	"github.com/spf13/viper"
)

type Config struct {
	Token             string `mapstructure:"TOKEN"`
	Prefix            string `mapstructure:"PREFIX"`
	ReminderChannelID string `mapstructure:"REMINDER_CHANNEL_ID"`
}

// LoadConfig reads bot settings from bot.yaml (working directory) with
// environment-variable overrides.
func LoadConfig() (Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("bot")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetDefault("PREFIX", "!")

	if err := viper.ReadInConfig(); err != nil {
		// a missing file is fine when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
