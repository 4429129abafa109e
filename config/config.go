package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port string `yaml:"port" json:"port"`
}

type DBConfig struct {
	// Type selects the storage backend: "mongodb" or "memory".
	Type string `yaml:"type" json:"type"`
	URL  string `yaml:"url" json:"url"`
	Name string `yaml:"name" json:"name"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Appid:    "micromarket",
		Workdir:  "/var/micromarket",
		Location: "UTC",
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: "8000",
	},
	Database: DBConfig{
		Type: "mongodb",
		URL:  "mongodb://localhost:27017",
		Name: "micromarket",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/micromarket/micromarket.log",
	},
}

// LoadConfig reads the yaml configuration file when it exists and applies
// environment overrides on top. A missing file is not an error; the defaults
// cover local development.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}
	setEnvValue("MONGO_URL", &cfg.Database.URL)
	setEnvValue("DB_NAME", &cfg.Database.Name)
	setEnvValue("DB_TYPE", &cfg.Database.Type)
	setEnvValue("WEB_HOST", &cfg.Web.Host)
	setEnvValue("WEB_PORT", &cfg.Web.Port)
	setEnvValue("LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("WORKDIR", &cfg.System.Workdir)
	return &cfg
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*val = v
	}
}
