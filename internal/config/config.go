package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Admin  AdminConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

// AdminConfig 管理員登入設定
// Password 為管理平台共用密碼，SessionSecret 用於簽署 session token
type AdminConfig struct {
	Password      string
	SessionSecret string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
