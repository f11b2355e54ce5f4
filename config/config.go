package config

import (
	"fmt"
	"os"

	"github.com/exlinc/golang-utils/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// The app is in production or debug mode
	Mode                 string `envconfig:"MODE" default:"production"`
	ServerAddr           string `envconfig:"SERVER_ADDR" default:"0.0.0.0"`
	ServerPort           string `envconfig:"SERVER_PORT" default:"3355"`
	UploadDir            string `envconfig:"UPLOAD_DIR" default:"/tmp/ccuploads"`
	OutputDir            string `envconfig:"OUTPUT_DIR" default:"/tmp/ccoutputs"`
	MaxUploadMB          int64  `envconfig:"MAX_UPLOAD_MB" default:"200"`
	DefaultOrg           string `envconfig:"DEFAULT_ORG" default:"CanvasImport"`
	DefaultRun           string `envconfig:"DEFAULT_RUN" default:"Import"`
	SMTPFromName         string `envconfig:"SMTP_FROM_NAME" default:"Canvas Course Converter"`
	SMTPFromAddress      string `envconfig:"SMTP_FROM_ADDRESS" default:"noreply@example.com"`
	SMTPHost             string `envconfig:"SMTP_HOST"`
	SMTPConnectionString string `envconfig:"SMTP_CONNECTION_STRING"`
	SMTPUserName         string `envconfig:"SMTP_USER_NAME" default:"apikey"`
	SMTPPassword         string `envconfig:"SMTP_PASSWORD"`
}

var conf *Config

const (
	DebugMode      = "debug"
	ProductionMode = "production"
)

func init() {
	conf = &Config{}
	err := envconfig.Process("cc_olx", conf)
	if err != nil {
		fmt.Println("Fatal error processing configuration")
		panic(err)
	}
	l := conf.GetLogger()
	if !conf.IsDebugMode() && !conf.IsProductionMode() {
		l.Fatal("Invalid CC_OLX_MODE variable, it must be either `debug` or `production`")
	}
}

// Cfg returns the configuration - will panic if the config has not been loaded or is nil (which shouldn't happen as that's implicit in the package init)
func Cfg() *Config {
	if conf == nil {
		panic("Config is nil")
	}
	return conf
}

func (cfg *Config) GetLogger() *logrus.Logger {
	logLvl := logrus.InfoLevel
	if cfg.IsDebugMode() {
		logLvl = logrus.DebugLevel
	}
	var l = &logrus.Logger{
		Out:       os.Stderr,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logLvl,
	}
	return l
}

func (cfg *Config) IsDebugMode() bool {
	return cfg.Mode == DebugMode
}

func (cfg *Config) IsProductionMode() bool {
	return cfg.Mode == ProductionMode
}
