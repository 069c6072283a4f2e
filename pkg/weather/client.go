package weather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Current struct {
	Temperature float64 `json:"temperature_2m"`
	WeatherCode int     `json:"weather_code"`
}

type Daily struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	WeatherCode      []int     `json:"weather_code"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

type Forecast struct {
	Current Current `json:"current"`
	Daily   Daily   `json:"daily"`
}

type Client struct {
	endpoint string
	httpc    *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{endpoint: endpoint, httpc: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch retrieves the current condition plus a 7-day daily forecast.
// Callers treat failure as missing context, not as a fatal error.
func (c *Client) Fetch(lat, lon float64) (*Forecast, error) {
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,weather_code&daily=temperature_2m_max,temperature_2m_min,weather_code,precipitation_sum&forecast_days=7&timezone=auto",
		c.endpoint, lat, lon,
	)
	resp, err := c.httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather fetch: status %d", resp.StatusCode)
	}
	var out Forecast
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
