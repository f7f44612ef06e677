// Package openmeteo is a client for the Open-Meteo weather forecast API
// (https://open-meteo.com).  It needs no credentials.
package openmeteo

import (
	"context"

	"github.com/ThalesGroup/pariah"
)

// DefaultURL is the Open-Meteo API root.
const DefaultURL = "https://api.open-meteo.com/v1/"

// ForecastOptions selects the location and the variables to forecast.
// Hourly and Daily list variable names, e.g. "temperature_2m".  Out of range
// options fail with pariah.ErrInvalidParams before anything is sent.
type ForecastOptions struct {
	Latitude        float64  `url:"latitude" validate:"latitude"`
	Longitude       float64  `url:"longitude" validate:"longitude"`
	Hourly          []string `url:"hourly,omitempty"`
	Daily           []string `url:"daily,omitempty"`
	CurrentWeather  bool     `url:"current_weather,omitempty"`
	TemperatureUnit string   `url:"temperature_unit,omitempty" validate:"omitempty,oneof=celsius fahrenheit"`
	WindSpeedUnit   string   `url:"windspeed_unit,omitempty" validate:"omitempty,oneof=kmh ms mph kn"`
	Timezone        string   `url:"timezone,omitempty"`
	PastDays        int      `url:"past_days,omitempty" validate:"gte=0,lte=92"`
	ForecastDays    int      `url:"forecast_days,omitempty" validate:"gte=0,lte=16"`
}

// Forecast is a forecast response.  Hourly and Daily map each requested
// variable (plus "time") to its series.
type Forecast struct {
	Latitude             float64                  `json:"latitude"`
	Longitude            float64                  `json:"longitude"`
	Elevation            float64                  `json:"elevation"`
	GenerationTimeMS     float64                  `json:"generationtime_ms"`
	UTCOffsetSeconds     int                      `json:"utc_offset_seconds"`
	Timezone             string                   `json:"timezone"`
	TimezoneAbbreviation string                   `json:"timezone_abbreviation"`
	CurrentWeather       *CurrentWeather          `json:"current_weather,omitempty"`
	HourlyUnits          map[string]string        `json:"hourly_units,omitempty"`
	Hourly               map[string][]interface{} `json:"hourly,omitempty"`
	DailyUnits           map[string]string        `json:"daily_units,omitempty"`
	Daily                map[string][]interface{} `json:"daily,omitempty"`
}

// CurrentWeather is the current conditions.
type CurrentWeather struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
}

// Error is the body of a rejected request.
type Error struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Client calls the Open-Meteo API.
type Client struct {
	api *pariah.Pariah
}

// New returns a Client for DefaultURL.
func New(opts ...pariah.Option) (*Client, error) {
	return NewWithURL(DefaultURL, opts...)
}

// NewWithURL returns a Client for another base URL, e.g. a self-hosted
// instance.
func NewWithURL(baseURL string, opts ...pariah.Option) (*Client, error) {
	api, err := pariah.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// Forecast fetches a forecast.  A rejected request has a 400 status, and
// its reason can be decoded from Raw into an Error.
func (c *Client) Forecast(ctx context.Context, opts ForecastOptions) (*pariah.Data[Forecast], error) {
	params, err := pariah.QueryStruct(opts)
	if err != nil {
		return nil, err
	}
	return pariah.JSONContext[Forecast](ctx, c.api.Get, "/forecast", params)
}
