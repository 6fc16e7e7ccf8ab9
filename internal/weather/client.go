// Package weather is a thin Open-Meteo client for the dashboard's
// forecast widget.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.open-meteo.com/v1"

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Day is one day of forecast.
type Day struct {
	Date          string  `json:"date"`
	TempMin       float64 `json:"temp_min"`
	TempMax       float64 `json:"temp_max"`
	Precipitation float64 `json:"precipitation_mm"`
	WeatherCode   int     `json:"weather_code"`
}

// Forecast returns up to days daily forecasts for the coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) ([]Day, error) {
	if days <= 0 || days > 16 {
		days = 7
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "temperature_2m_min,temperature_2m_max,precipitation_sum,weather_code")
	q.Set("forecast_days", fmt.Sprint(days))
	q.Set("timezone", "Europe/Paris")

	endpoint := c.baseURL + "/forecast?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("forecast status %d: %s", resp.StatusCode, body)
	}

	var raw struct {
		Daily struct {
			Time          []string  `json:"time"`
			TempMin       []float64 `json:"temperature_2m_min"`
			TempMax       []float64 `json:"temperature_2m_max"`
			Precipitation []float64 `json:"precipitation_sum"`
			WeatherCode   []int     `json:"weather_code"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}

	out := make([]Day, 0, len(raw.Daily.Time))
	for i, date := range raw.Daily.Time {
		d := Day{Date: date}
		if i < len(raw.Daily.TempMin) {
			d.TempMin = raw.Daily.TempMin[i]
		}
		if i < len(raw.Daily.TempMax) {
			d.TempMax = raw.Daily.TempMax[i]
		}
		if i < len(raw.Daily.Precipitation) {
			d.Precipitation = raw.Daily.Precipitation[i]
		}
		if i < len(raw.Daily.WeatherCode) {
			d.WeatherCode = raw.Daily.WeatherCode[i]
		}
		out = append(out, d)
	}

	c.logger.Debug("weather.forecast.ok", "days", len(out))
	return out, nil
}
