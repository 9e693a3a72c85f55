package config

import (
	"time"
)

type SearchConfig struct {
	RapidAPIKey  string        `yaml:"rapidapi_key"`
	RapidAPIHost string        `yaml:"rapidapi_host"`
	Timeout      time.Duration `yaml:"timeout"`
}

func loadSearchConfig() *SearchConfig {
	return &SearchConfig{
		RapidAPIKey:  getEnv("RAPIDAPI_KEY", ""),
		RapidAPIHost: getEnv("RAPIDAPI_HOST", ""),
		Timeout:      getEnvAsDuration("RAPIDAPI_TIMEOUT", 30*time.Second),
	}
}
