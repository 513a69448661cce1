package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	RAG    RAGConfig    `mapstructure:"rag"`
	Bridge BridgeConfig `mapstructure:"bridge"`
	Flight FlightConfig `mapstructure:"flights"`
}

// LLMConfig selects the hosted models and their generation parameters.
type LLMConfig struct {
	Model           string  `mapstructure:"model"`
	VisionModel     string  `mapstructure:"visionModel"`
	EmbeddingModel  string  `mapstructure:"embeddingModel"`
	Temperature     float32 `mapstructure:"temperature"`
	TopP            float32 `mapstructure:"topP"`
	TopK            float32 `mapstructure:"topK"`
	MaxOutputTokens int32   `mapstructure:"maxOutputTokens"`
	SystemPrompt    string  `mapstructure:"systemPrompt"`
}

type RAGConfig struct {
	MaxSourceDocs     int           `mapstructure:"maxSourceDocs"`
	ChunkSize         int           `mapstructure:"chunkSize"`
	ChunkOverlap      int           `mapstructure:"chunkOverlap"`
	MaxHistoryTokens  int           `mapstructure:"maxHistoryTokens"`
	EmbeddingCacheTTL time.Duration `mapstructure:"embeddingCacheTTL"`
	SessionTTL        time.Duration `mapstructure:"sessionTTL"`
	IngestConcurrency int           `mapstructure:"ingestConcurrency"`
}

// BridgeConfig tunes the async execution bridge shared by handlers and the CLI.
type BridgeConfig struct {
	DefaultTimeout  time.Duration `mapstructure:"defaultTimeout"`
	ChatTimeout     time.Duration `mapstructure:"chatTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	StartTimeout    time.Duration `mapstructure:"startTimeout"`
	CancelOnTimeout bool          `mapstructure:"cancelOnTimeout"`
}

type FlightConfig struct {
	BaseURL  string        `mapstructure:"baseURL"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cacheTTL"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// LoadEmbedded reads only the configuration compiled into the binary.
func LoadEmbedded() (Config, error) {
	var config Config
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
		return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
