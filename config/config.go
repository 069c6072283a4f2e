package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	Timezone          string
	DBPath            string
	LLMEndpoint       string
	LLMAPIKey         string
	LLMModel          string
	EmbEndpoint       string
	EmbAPIKey         string
	EmbModel          string
	WeatherEndpoint   string
	DefaultLanguage   string
	AdaptIntervalDays int
	ClimateXLSX       string
	KBAllowedDomains  string
	KBMaxPageBytes    int
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v, err := strconv.Atoi(os.Getenv(k)); err == nil && v > 0 {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		Timezone:          get("TZ", "Europe/Rome"),
		DBPath:            get("DB_PATH", "botanica.db"),
		LLMEndpoint:       get("LLM_ENDPOINT", ""),
		LLMAPIKey:         get("LLM_API_KEY", ""),
		LLMModel:          get("LLM_MODEL", "gpt-4o-mini"),
		EmbEndpoint:       get("EMB_ENDPOINT", ""),
		EmbAPIKey:         get("EMB_API_KEY", ""),
		EmbModel:          get("EMB_MODEL", "text-embedding-3-small"),
		WeatherEndpoint:   get("WEATHER_ENDPOINT", "https://api.open-meteo.com/v1/forecast"),
		DefaultLanguage:   get("DEFAULT_LANG", "en"),
		AdaptIntervalDays: getInt("ADAPT_INTERVAL_DAYS", 15),
		ClimateXLSX:       get("CLIMATE_XLSX", "./ClimateNormals.xlsx"),
		KBAllowedDomains:  get("KB_ALLOWED_DOMAINS", ""),
		KBMaxPageBytes:    getInt("KB_MAX_BYTES_PER_PAGE", 1500000),
	}
	log.Printf("[cfg] port=%s db=%s llm=%s weather=%s adapt_interval=%dd",
		cfg.Port, cfg.DBPath, cfg.LLMModel, cfg.WeatherEndpoint, cfg.AdaptIntervalDays)
	return cfg
}
