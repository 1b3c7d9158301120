// Package config はアプリ全体の設定を読み込みます
// 設定ファイル（config.yaml）が無くても既定値で動きます
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Difficulty は難易度ごとの盤面設定です
type Difficulty struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Mines  int `mapstructure:"mines"`
}

// ServerConfig はHTTPサーバーの設定です
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	StaticDir string `mapstructure:"static_dir"`
}

// Config はアプリ全体の設定です
type Config struct {
	Server       ServerConfig          `mapstructure:"server"`
	Difficulties map[string]Difficulty `mapstructure:"difficulties"`
}

var defaultDifficulties = map[string]Difficulty{
	"easy":     {Width: 9, Height: 9, Mines: 10},
	"medium":   {Width: 16, Height: 16, Mines: 40},
	"hard":     {Width: 30, Height: 16, Mines: 99},
	"ultimate": {Width: 30, Height: 24, Mines: 180},
}

// Load は設定ファイルを読み込みます
// path が空ならカレントディレクトリの config.yaml を探し、無ければ既定値だけで返します
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.static_dir", "static")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// 設定ファイルに無い難易度は既定値で埋める
	if cfg.Difficulties == nil {
		cfg.Difficulties = make(map[string]Difficulty, len(defaultDifficulties))
	}
	for name, d := range defaultDifficulties {
		if _, ok := cfg.Difficulties[name]; !ok {
			cfg.Difficulties[name] = d
		}
	}

	for name, d := range cfg.Difficulties {
		if d.Width <= 0 || d.Height <= 0 || d.Mines <= 0 || d.Mines >= d.Width*d.Height {
			return nil, fmt.Errorf("config: 難易度 %q の設定が不正です", name)
		}
	}
	return cfg, nil
}
