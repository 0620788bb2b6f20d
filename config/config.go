package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
	// PublicURL prefixes relative image paths when responses format
	// absolute URLs.
	PublicURL string `yaml:"public_url" json:"public_url"`
	Secret    string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type MailConfig struct {
	Enable   bool   `yaml:"enable" json:"enable"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
	Mail     MailConfig `yaml:"mail" json:"mail"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "mhrhci",
		Location: "Asia/Manila",
		Workdir:  "/var/mhrhci",
		Debug:    false,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		PublicURL: "http://127.0.0.1:1816",
		Secret:    "9b6de5cc-mhrhci-b9dd-0800200c9a66",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "mhrhci",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/mhrhci/mhrhci.log",
	},
	Mail: MailConfig{
		Enable: false,
		Host:   "127.0.0.1",
		Port:   25,
		From:   "noreply@mhrhci.local",
	},
}

func setEnvString(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvBool(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToBool(v)
	}
}

// LoadConfig reads the yaml config file when present and applies MHRHCI_*
// environment overrides on top.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err != nil {
				panic(fmt.Errorf("read config %s: %w", cfile, err))
			}
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(fmt.Errorf("parse config %s: %w", cfile, err))
			}
		}
	}

	setEnvString("MHRHCI_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBool("MHRHCI_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvString("MHRHCI_WEB_HOST", &cfg.Web.Host)
	setEnvInt("MHRHCI_WEB_PORT", &cfg.Web.Port)
	setEnvString("MHRHCI_WEB_PUBLIC_URL", &cfg.Web.PublicURL)
	setEnvString("MHRHCI_WEB_SECRET", &cfg.Web.Secret)
	setEnvString("MHRHCI_DB_TYPE", &cfg.Database.Type)
	setEnvString("MHRHCI_DB_HOST", &cfg.Database.Host)
	setEnvInt("MHRHCI_DB_PORT", &cfg.Database.Port)
	setEnvString("MHRHCI_DB_NAME", &cfg.Database.Name)
	setEnvString("MHRHCI_DB_USER", &cfg.Database.User)
	setEnvString("MHRHCI_DB_PASSWD", &cfg.Database.Passwd)
	setEnvString("MHRHCI_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("MHRHCI_MAIL_ENABLE", &cfg.Mail.Enable)
	setEnvString("MHRHCI_MAIL_HOST", &cfg.Mail.Host)
	setEnvInt("MHRHCI_MAIL_PORT", &cfg.Mail.Port)
	setEnvString("MHRHCI_MAIL_USERNAME", &cfg.Mail.Username)
	setEnvString("MHRHCI_MAIL_PASSWORD", &cfg.Mail.Password)
	setEnvString("MHRHCI_MAIL_FROM", &cfg.Mail.From)

	return cfg
}
