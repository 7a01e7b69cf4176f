package main

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	internalhttp "github.com/onboardly/dirprov/internal/api/http"
	"github.com/onboardly/dirprov/internal/audit"
	"github.com/onboardly/dirprov/internal/directory"
	"github.com/spf13/viper"
)

type Config struct {
	Log       LogConfig           `mapstructure:"log"`
	Http      internalhttp.Config `mapstructure:"http"`
	Database  audit.Config        `mapstructure:"database"`
	Directory directory.Config    `mapstructure:"directory"`
	Provision ProvisionConfig     `mapstructure:"provision"`
	Notify    NotifyConfig        `mapstructure:"notify"`
}

// ProvisionConfig holds the non-secret workflow tuning. The workflow's own
// keys (tenant_id, credential_ref, notify_address) live under the same
// "provision" prefix and are resolved through the ConfigSource.
type ProvisionConfig struct {
	PropagationDelay time.Duration `mapstructure:"propagation_delay"`
}

type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

var config Config

func InitConfig() {
	var err error

	_ = godotenv.Load()

	viper.SetConfigName("application")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./cmd/dirprov-server")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("provision.propagation_delay", "10s")

	_ = viper.BindEnv("provision.tenant_id", "DIRPROV_TENANT_ID")
	_ = viper.BindEnv("provision.credential_ref", "DIRPROV_CREDENTIAL_REF")
	_ = viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		panic(err)
	}

	initLogger(config.Log.Level)
}
