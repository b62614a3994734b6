package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

const (
	// DefaultOSRMURL is the public OSRM demo server.
	DefaultOSRMURL = "https://router.project-osrm.org"

	// osrmTimeout is the maximum duration for one OSRM call.
	osrmTimeout = 5 * time.Second

	httpMaxIdleConns    = 10
	httpIdleConnTimeout = 30 * time.Second

	// maxResponseBytes bounds how much of an OSRM body is read.
	maxResponseBytes = 4 << 20
)

// osrmProfiles maps travel modes to OSRM profile path segments.
var osrmProfiles = map[Mode]string{
	ModeDriving:   "driving",
	ModeWalking:   "foot",
	ModeBicycling: "bike",
}

// fallbackSpeedMPS is the straight-line estimate speed per mode.
var fallbackSpeedMPS = map[Mode]float64{
	ModeDriving:   30.0 / 3.6,
	ModeWalking:   5.0 / 3.6,
	ModeBicycling: 15.0 / 3.6,
}

// OSRMRouter implements Router against the OSRM HTTP route service.
type OSRMRouter struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOSRMRouter creates a Router backed by the OSRM server at baseURL.
func NewOSRMRouter(baseURL string, logger *slog.Logger) *OSRMRouter {
	if baseURL == "" {
		baseURL = DefaultOSRMURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	return &OSRMRouter{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout:   osrmTimeout,
			Transport: transport,
		},
	}
}

// Route calls OSRM and returns the primary route. On failure it logs the
// error and returns a straight-line estimate with IsFallback set.
func (o *OSRMRouter) Route(ctx context.Context, req RoutingRequest) (*RoutingResponse, error) {
	resp, err := o.callAPI(ctx, req)
	if err != nil {
		o.logger.Warn("osrm route failed, using straight-line fallback",
			"mode", req.Mode, "error", err)
		return straightLineFallback(req), nil
	}
	return resp, nil
}

func (o *OSRMRouter) routeURL(req RoutingRequest) (string, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeDriving
	}
	profile, ok := osrmProfiles[mode]
	if !ok {
		return "", fmt.Errorf("routing: osrm: unsupported mode %q", req.Mode)
	}
	// OSRM takes lon,lat pairs.
	return fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=polyline",
		o.baseURL, profile,
		req.Origin.Lng, req.Origin.Lat,
		req.Destination.Lng, req.Destination.Lat,
	), nil
}

func (o *OSRMRouter) callAPI(ctx context.Context, req RoutingRequest) (*RoutingResponse, error) {
	url, err := o.routeURL(req)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, osrmTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: osrm: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("routing: osrm: http: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("routing: osrm: read response: %w", err)
	}

	var apiResp osrmResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("routing: osrm: status %d: unmarshal response: %w", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode != http.StatusOK || apiResp.Code != "Ok" {
		return nil, fmt.Errorf("routing: osrm: status %d: code %q: %s", httpResp.StatusCode, apiResp.Code, apiResp.Message)
	}
	if len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("routing: osrm: no routes returned")
	}

	route := apiResp.Routes[0]
	return &RoutingResponse{
		Polyline:  route.Geometry,
		DistanceM: int(math.Round(route.Distance)),
		DurationS: int(math.Round(route.Duration)),
	}, nil
}

// straightLineFallback estimates distance and duration from the great-circle
// distance and the mode's typical speed.
func straightLineFallback(req RoutingRequest) *RoutingResponse {
	speed, ok := fallbackSpeedMPS[req.Mode]
	if !ok {
		speed = fallbackSpeedMPS[ModeDriving]
	}
	distM := geo.DistanceMeters(req.Origin, req.Destination)
	return &RoutingResponse{
		Polyline:   "",
		DistanceM:  int(distM),
		DurationS:  int(distM / speed),
		IsFallback: true,
	}
}

// --- JSON types for the OSRM route service ---

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}
