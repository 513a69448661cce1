package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-chatbot/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

const APIKeyEnv = "AVIATIONSTACK_API_KEY"

var (
	ErrAccessDenied     = errors.New("API access denied. Please check if your API key is valid and has the required permissions")
	ErrRateLimited      = errors.New("API rate limit exceeded. Please try again later or upgrade your subscription")
	ErrUnknownAirport   = errors.New("could not identify airport")
	ErrUnparsableQuery  = errors.New("I couldn't understand your flight request. Please try a format like: 'flights from colombo to singapore tomorrow'")
	ErrMissingFlightRef = errors.New("a flight IATA code is required")
)

// APIError is the error object AviationStack returns in a 200 body.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	if e.Info == "" {
		return "API Error: " + e.Code
	}
	return "API Error: " + e.Info
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	FlightsByRoute(ctx context.Context, search types.FlightSearch) ([]types.Flight, error)
	FlightStatus(ctx context.Context, flightIATA string) ([]types.Flight, error)
	Search(ctx context.Context, query string) (types.FlightSearch, []types.Flight, error)
}

type ServiceImpl struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	lookup     *IATALookup
	cache      *cache.Cache
	now        func() time.Time
	logger     *slog.Logger
	metrics    *metrics.AppMetrics
}

// NewService reads the API key from AVIATIONSTACK_API_KEY. A missing key
// is not a construction error; lookups fail with types.ErrNoAPIKey.
func NewService(cfg config.FlightConfig, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	return NewServiceWithKey(cfg, os.Getenv(APIKeyEnv), logger, m)
}

func NewServiceWithKey(cfg config.FlightConfig, apiKey string, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	if apiKey == "" {
		logger.Warn("No AviationStack API key provided. Flight data will not be available.")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ServiceImpl{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		lookup:  NewIATALookup(),
		cache:   cache.New(ttl, 2*ttl),
		now:     time.Now,
		logger:  logger,
		metrics: m,
	}
}

type flightsResponse struct {
	Data  []types.Flight `json:"data"`
	Error *APIError      `json:"error"`
}

func (s *ServiceImpl) fetch(ctx context.Context, params url.Values) (flights []types.Flight, err error) {
	ctx, span := otel.Tracer("FlightService").Start(ctx, "fetch", trace.WithAttributes(
		attribute.String("flight.params", params.Encode()),
	))
	defer span.End()
	defer func() {
		if s.metrics == nil {
			return
		}
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		s.metrics.FlightLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	if s.apiKey == "" {
		return nil, types.ErrNoAPIKey
	}

	cacheKey := params.Encode()
	if v, ok := s.cache.Get(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return v.([]types.Flight), nil
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("access_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/flights?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build flights request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		s.logger.ErrorContext(ctx, "Error making request to AviationStack API", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch flight data: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusForbidden:
		return nil, ErrAccessDenied
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", types.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode flight data: %w", err)
	}
	if payload.Error != nil {
		span.SetStatus(codes.Error, payload.Error.Error())
		return nil, payload.Error
	}

	s.cache.SetDefault(cacheKey, payload.Data)
	span.SetAttributes(attribute.Int("flights.count", len(payload.Data)))
	return payload.Data, nil
}

// FlightsByRoute resolves both ends of the route and lists the flights on
// the given date, today when empty.
func (s *ServiceImpl) FlightsByRoute(ctx context.Context, search types.FlightSearch) ([]types.Flight, error) {
	dep, ok := s.lookup.Resolve(search.From)
	if !ok {
		return nil, fmt.Errorf("%w: departure %q", ErrUnknownAirport, search.From)
	}
	arr, ok := s.lookup.Resolve(search.To)
	if !ok {
		return nil, fmt.Errorf("%w: arrival %q", ErrUnknownAirport, search.To)
	}
	date := search.Date
	if date == "" {
		date = s.now().Format(time.DateOnly)
	}

	s.logger.DebugContext(ctx, "Searching flights by route",
		slog.String("dep_iata", dep.IATA),
		slog.String("arr_iata", arr.IATA),
		slog.String("flight_date", date))

	return s.fetch(ctx, url.Values{
		"dep_iata":    {dep.IATA},
		"arr_iata":    {arr.IATA},
		"flight_date": {date},
	})
}

func (s *ServiceImpl) FlightStatus(ctx context.Context, flightIATA string) ([]types.Flight, error) {
	flightIATA = strings.ToUpper(strings.TrimSpace(flightIATA))
	if flightIATA == "" {
		return nil, ErrMissingFlightRef
	}
	return s.fetch(ctx, url.Values{"flight_iata": {flightIATA}})
}

// Search parses a natural-language route query and runs it.
func (s *ServiceImpl) Search(ctx context.Context, query string) (types.FlightSearch, []types.Flight, error) {
	if s.apiKey == "" {
		return types.FlightSearch{}, nil, types.ErrNoAPIKey
	}
	search, err := ParseQuery(query, s.now())
	if err != nil {
		return types.FlightSearch{}, nil, err
	}
	flights, err := s.FlightsByRoute(ctx, search)
	return search, flights, err
}

var isoDate = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

var stopWords = map[string]bool{"today": true, "tomorrow": true, "on": true, "at": true, "for": true}

// ParseQuery extracts "from X to Y" plus an optional date ("today",
// "tomorrow" or YYYY-MM-DD).
func ParseQuery(query string, now time.Time) (types.FlightSearch, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	fromIdx, toIdx := -1, -1
	for i, w := range words {
		if w == "from" && fromIdx < 0 {
			fromIdx = i
		}
		if w == "to" && fromIdx >= 0 && toIdx < 0 {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 || toIdx-fromIdx < 2 {
		return types.FlightSearch{}, ErrUnparsableQuery
	}

	var arr []string
	for _, w := range words[toIdx+1:] {
		w = strings.Trim(w, "?.,!")
		if stopWords[w] || isoDate.MatchString(w) {
			break
		}
		if w != "" {
			arr = append(arr, w)
		}
	}
	if len(arr) == 0 {
		return types.FlightSearch{}, ErrUnparsableQuery
	}

	search := types.FlightSearch{
		From: strings.Trim(strings.Join(words[fromIdx+1:toIdx], " "), "?.,!"),
		To:   strings.Join(arr, " "),
	}
	switch {
	case isoDate.MatchString(query):
		search.Date = isoDate.FindString(query)
	case containsWord(words, "tomorrow"):
		search.Date = now.AddDate(0, 0, 1).Format(time.DateOnly)
	case containsWord(words, "today"):
		search.Date = now.Format(time.DateOnly)
	}
	return search, nil
}

func containsWord(words []string, want string) bool {
	for _, w := range words {
		if strings.Trim(w, "?.,!") == want {
			return true
		}
	}
	return false
}
