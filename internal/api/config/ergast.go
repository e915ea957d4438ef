package config

import "time"

// ErgastConfig представляет конфигурацию клиента Ergast F1 API.
type ErgastConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_ERGAST_BASE_URL" env-default:"https://ergast.com/api/f1"`
	Timeout time.Duration `yaml:"timeout" env:"API_ERGAST_TIMEOUT" env-default:"10s"`
}
