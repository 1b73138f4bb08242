package weather

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	client  *resty.Client
}

func NewClient(apiKey string) *Client {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  client,
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.baseURL = url
}

type weatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Message string `json:"message"`
}

// Current returns a short plain-text report for the location.
func (c *Client) Current(ctx context.Context, location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", fmt.Errorf("location cannot be empty")
	}

	var body weatherResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     location,
			"appid": c.apiKey,
			"units": "metric",
		}).
		SetResult(&body).
		Get(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("weather request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("weather error %d: %s", resp.StatusCode(), resp.String())
	}
	if len(body.Weather) == 0 {
		return "", fmt.Errorf("no conditions reported for %q", location)
	}

	return fmt.Sprintf("In %s, the current weather is %s with a temperature of %.1f°C (feels like %.1f°C), humidity %d%% and wind speed %.1f m/s.",
		body.Name,
		body.Weather[0].Description,
		body.Main.Temp,
		body.Main.FeelsLike,
		body.Main.Humidity,
		body.Wind.Speed,
	), nil
}
