package config

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	Model        string `yaml:"model"`
}

func loadAIConfig() *AIConfig {
	return &AIConfig{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		Model:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}
