package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Mail struct {
		BaseURL              string `mapstructure:"base_url"`
		ServiceID            string `mapstructure:"service_id"`
		PublicKey            string `mapstructure:"public_key"`
		LowStockTemplate     string `mapstructure:"low_stock_template"`
		AppointmentTemplate  string `mapstructure:"appointment_template"`
		CancellationTemplate string `mapstructure:"cancellation_template"`
	} `mapstructure:"mail"`

	Notifier struct {
		Enabled      bool
		AdminEmail   string        `mapstructure:"admin_email"`
		PollInterval time.Duration `mapstructure:"poll_interval"`
	} `mapstructure:"notifier"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Notifier.PollInterval <= 0 {
		c.Notifier.PollInterval = 5 * time.Minute
	}
	return c, nil
}
