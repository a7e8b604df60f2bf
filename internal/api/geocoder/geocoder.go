package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/metrics"
	"github.com/langchou/garagebook/internal/models"
)

const (
	defaultAmapBaseURL      = "https://restapi.amap.com"
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

	maxCacheSize = 10000
)

// ErrNoResult 地址无法解析
var ErrNoResult = errors.New("no geocode result")

// Client 地理编码客户端
// 配置了高德 API Key 时使用高德，否则使用 Nominatim（OpenStreetMap）
type Client struct {
	amapAPIKey       string
	amapBaseURL      string
	nominatimBaseURL string
	httpClient       *http.Client
	logger           *zap.Logger

	// 缓存：避免重复请求相同地址
	cache   map[string]*models.Coordinates
	cacheMu sync.RWMutex

	// Nominatim 请求限流（每秒最多 1 次）
	minInterval          time.Duration
	lastNominatimRequest time.Time
	nominatimMu          sync.Mutex
}

// Option 客户端选项
type Option func(*Client)

// WithAmapBaseURL 替换高德 API 地址
func WithAmapBaseURL(baseURL string) Option {
	return func(c *Client) { c.amapBaseURL = strings.TrimRight(baseURL, "/") }
}

// WithNominatimBaseURL 替换 Nominatim API 地址
func WithNominatimBaseURL(baseURL string) Option {
	return func(c *Client) { c.nominatimBaseURL = strings.TrimRight(baseURL, "/") }
}

// WithMinInterval 设置 Nominatim 请求最小间隔
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// NewClient 创建地理编码客户端
func NewClient(amapAPIKey string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		amapAPIKey:       amapAPIKey,
		amapBaseURL:      defaultAmapBaseURL,
		nominatimBaseURL: defaultNominatimBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:      logger,
		cache:       make(map[string]*models.Coordinates),
		minInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode 地理编码：根据维修厂地址和城市获取经纬度
func (c *Client) Geocode(ctx context.Context, location, city string) (*models.Coordinates, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(location) + "|" + strings.TrimSpace(city))

	// 检查缓存
	c.cacheMu.RLock()
	if coords, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		return coords, nil
	}
	c.cacheMu.RUnlock()

	var coords *models.Coordinates
	var err error

	// 优先使用高德，没有配置则使用 Nominatim
	if c.amapAPIKey != "" {
		coords, err = c.geocodeAmap(ctx, location, city)
	} else {
		coords, err = c.geocodeNominatim(ctx, location, city)
	}

	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues(c.Provider(), "error").Inc()
		return nil, err
	}
	metrics.GeocodeRequestsTotal.WithLabelValues(c.Provider(), "ok").Inc()

	// 存入缓存
	c.cacheMu.Lock()
	if len(c.cache) >= maxCacheSize {
		c.cache = make(map[string]*models.Coordinates)
	}
	c.cache[cacheKey] = coords
	c.cacheMu.Unlock()

	return coords, nil
}

// Provider 返回当前使用的服务提供商
func (c *Client) Provider() string {
	if c.amapAPIKey != "" {
		return "amap"
	}
	return "nominatim"
}

// ============ 高德地图实现 ============

// AmapGeoResponse 高德地理编码响应
type AmapGeoResponse struct {
	Status   string        `json:"status"`
	Info     string        `json:"info"`
	InfoCode string        `json:"infocode"`
	Geocodes []AmapGeocode `json:"geocodes"`
}

// AmapGeocode 单条地理编码结果
type AmapGeocode struct {
	FormattedAddress string `json:"formatted_address"`
	Location         string `json:"location"` // "经度,纬度"
}

func (c *Client) geocodeAmap(ctx context.Context, location, city string) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("key", c.amapAPIKey)
	params.Set("address", location)
	params.Set("city", city)
	params.Set("output", "JSON")

	var result AmapGeoResponse
	if err := c.getJSON(ctx, c.amapBaseURL+"/v3/geocode/geo?"+params.Encode(), "amap", &result); err != nil {
		return nil, err
	}

	if result.Status != "1" {
		return nil, fmt.Errorf("amap api error: %s (code: %s)", result.Info, result.InfoCode)
	}
	if len(result.Geocodes) == 0 {
		return nil, ErrNoResult
	}

	// 高德返回经度在前，纬度在后
	lng, lat, ok := strings.Cut(result.Geocodes[0].Location, ",")
	if !ok {
		return nil, fmt.Errorf("malformed amap location %q", result.Geocodes[0].Location)
	}
	coords, err := parseCoordinates(lat, lng)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Geocoded via Amap",
		zap.String("location", location),
		zap.String("city", city),
		zap.String("address", result.Geocodes[0].FormattedAddress))

	return coords, nil
}

// ============ Nominatim (OpenStreetMap) 实现 ============

// NominatimPlace Nominatim 搜索结果
type NominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) geocodeNominatim(ctx context.Context, location, city string) (*models.Coordinates, error) {
	// Nominatim 限流
	c.nominatimMu.Lock()
	elapsed := time.Since(c.lastNominatimRequest)
	if elapsed < c.minInterval {
		select {
		case <-time.After(c.minInterval - elapsed):
		case <-ctx.Done():
			c.nominatimMu.Unlock()
			return nil, ctx.Err()
		}
	}
	c.lastNominatimRequest = time.Now()
	c.nominatimMu.Unlock()

	params := url.Values{}
	params.Set("q", location+", "+city)
	params.Set("format", "json")
	params.Set("limit", "1")

	var places []NominatimPlace
	if err := c.getJSON(ctx, c.nominatimBaseURL+"/search?"+params.Encode(), "nominatim", &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrNoResult
	}

	coords, err := parseCoordinates(places[0].Lat, places[0].Lon)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Geocoded via Nominatim",
		zap.String("location", location),
		zap.String("city", city),
		zap.String("address", places[0].DisplayName))

	return coords, nil
}

// ============ 工具函数 ============

func (c *Client) getJSON(ctx context.Context, apiURL, provider string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	// Nominatim 要求设置 User-Agent
	req.Header.Set("User-Agent", "GarageBook/1.0 (garage maintenance booking)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s api returned status %d", provider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseCoordinates(lat, lng string) (*models.Coordinates, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", lat, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", lng, err)
	}
	return &models.Coordinates{Latitude: latitude, Longitude: longitude}, nil
}

// ClearCache 清空缓存
func (c *Client) ClearCache() {
	c.cacheMu.Lock()
	c.cache = make(map[string]*models.Coordinates)
	c.cacheMu.Unlock()
}

// CacheSize 获取缓存大小
func (c *Client) CacheSize() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.cache)
}
