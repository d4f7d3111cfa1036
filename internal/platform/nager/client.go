package nager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"holidaykeeper/internal/country"
	"holidaykeeper/internal/holiday"
)

// ErrExternalSource wraps every failure talking to the holiday source:
// transport errors, timeouts, non-2xx statuses and undecodable bodies.
var ErrExternalSource = errors.New("external holiday source error")

type Config struct {
	BaseURL string
	// CountriesPath is requested as-is.
	CountriesPath string
	// HolidaysPath may contain {year} and {countryCode}.
	HolidaysPath    string
	UserAgent       string
	ConnectTimeout  time.Duration
	ResponseTimeout time.Duration
	// RPS caps outbound requests per second. Zero disables the limiter.
	RPS int
}

func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://date.nager.at",
		CountriesPath:   "/api/v3/AvailableCountries",
		HolidaysPath:    "/api/v3/PublicHolidays/{year}/{countryCode}",
		UserAgent:       "holidaykeeper/1.0",
		ConnectTimeout:  5 * time.Second,
		ResponseTimeout: 10 * time.Second,
		RPS:             10,
	}
}

type Client struct {
	httpClient *http.Client
	cfg        Config
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ResponseTimeout,
		MaxIdleConnsPerHost:   16,
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Every(time.Second / time.Duration(cfg.RPS))
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.ConnectTimeout + cfg.ResponseTimeout,
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// countryDTO matches an AvailableCountries element.
type countryDTO struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

// holidayDTO matches a PublicHolidays element.
type holidayDTO struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	LaunchYear  *int     `json:"launchYear"`
	Types       []string `json:"types"`
}

func (c *Client) FetchCountries(ctx context.Context) ([]country.Country, error) {
	var res []countryDTO
	if err := c.get(ctx, c.cfg.CountriesPath, &res); err != nil {
		return nil, err
	}

	out := make([]country.Country, 0, len(res))
	for _, dto := range res {
		out = append(out, country.Country{Code: dto.CountryCode, Name: dto.Name})
	}
	return out, nil
}

func (c *Client) FetchHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error) {
	path := strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{countryCode}", countryCode,
	).Replace(c.cfg.HolidaysPath)

	var res []holidayDTO
	if err := c.get(ctx, path, &res); err != nil {
		return nil, err
	}

	out := make([]holiday.Holiday, 0, len(res))
	for _, dto := range res {
		d, err := time.Parse(time.DateOnly, dto.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q: %v", ErrExternalSource, dto.Date, err)
		}
		h := holiday.Holiday{
			Name:      dto.Name,
			LocalName: dto.LocalName,
			Date:      d,
			Fixed:     dto.Fixed,
			Global:    dto.Global,
			Counties:  dto.Counties,
			Types:     dto.Types,
		}
		if dto.LaunchYear != nil {
			ly := strconv.Itoa(*dto.LaunchYear)
			h.LaunchYear = &ly
		}
		out = append(out, h)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalSource, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalSource, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: unexpected status code: %d", ErrExternalSource, path, resp.StatusCode)
	}
	// Nager answers 204 for a country without data.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: GET %s: decode: %v", ErrExternalSource, path, err)
	}
	return nil
}
