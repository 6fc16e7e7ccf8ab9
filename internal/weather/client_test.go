package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastParsesDailySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "45.7640", r.URL.Query().Get("latitude"))
		_, _ = w.Write([]byte(`{
			"daily": {
				"time": ["2025-12-10", "2025-12-11"],
				"temperature_2m_min": [2.1, 3.4],
				"temperature_2m_max": [8.0, 9.5],
				"precipitation_sum": [0.0, 4.2],
				"weather_code": [3, 61]
			}
		}`))
	}))
	defer srv.Close()

	days, err := NewClient(srv.URL, nil).Forecast(context.Background(), 45.764, 4.8357, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-12-10", days[0].Date)
	assert.Equal(t, 8.0, days[0].TempMax)
	assert.Equal(t, 61, days[1].WeatherCode)
	assert.Equal(t, 4.2, days[1].Precipitation)
}

func TestForecastNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Forecast(context.Background(), 0, 0, 7)
	assert.Error(t, err)
}
