// Package hitokoto fetches a short aphorism from the hitokoto quote
// service. Quote unavailability must never block card generation, so
// every failure degrades to a fixed default.
package hitokoto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hcrm/internal/logger"
)

const (
	// DefaultEndpoint is the public hitokoto service.
	DefaultEndpoint = "https://v1.hitokoto.cn"

	// DefaultQuote is returned whenever the service cannot be reached
	// or answers with something unusable.
	DefaultQuote = "生活明朗，万物可爱。"

	userAgent      = "hcrm/1.0"
	requestTimeout = 5 * time.Second
)

// Category is a quote-source filter code accepted by the service.
type Category string

const (
	CategoryAnime      Category = "a" // 动画
	CategoryComic      Category = "b" // 漫画
	CategoryGame       Category = "c" // 游戏
	CategoryLiterature Category = "d" // 文学
	CategoryOriginal   Category = "e" // 原创
	CategoryInternet   Category = "f" // 来自网络
	CategoryOther      Category = "g" // 其他
	CategoryFilm       Category = "h" // 影视
	CategoryPoetry     Category = "i" // 诗词
	CategoryNetease    Category = "j" // 网易云
	CategoryPhilosophy Category = "k" // 哲学
	CategoryWitty      Category = "l" // 抖机灵
)

var validCategories = map[Category]bool{
	CategoryAnime: true, CategoryComic: true, CategoryGame: true,
	CategoryLiterature: true, CategoryOriginal: true, CategoryInternet: true,
	CategoryOther: true, CategoryFilm: true, CategoryPoetry: true,
	CategoryNetease: true, CategoryPhilosophy: true, CategoryWitty: true,
}

// ParseCategory validates a single-letter category code.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !validCategories[c] {
		return "", fmt.Errorf("unknown hitokoto category %q", s)
	}
	return c, nil
}

// Client fetches quotes from a hitokoto-compatible endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      *logger.Logger
}

// New returns a Client for endpoint (DefaultEndpoint when empty).
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
		log:      logger.PackageLogger("HITOKOTO", "💬 HITOKOTO"),
	}
}

// Fetch retrieves one quote filtered by the given categories. On any
// failure it logs a warning and returns DefaultQuote; it never returns
// an error to the caller.
func (c *Client) Fetch(ctx context.Context, categories []Category) string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		c.log.Warn("Bad hitokoto endpoint %q: %v", c.endpoint, err)
		return DefaultQuote
	}
	q := u.Query()
	q.Set("encode", "json")
	for _, cat := range categories {
		q.Add("c", string(cat))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		c.log.Warn("Hitokoto request build failed: %v", err)
		return DefaultQuote
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Hitokoto fetch failed: %v", err)
		return DefaultQuote
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Hitokoto fetch failed: status %d", resp.StatusCode)
		return DefaultQuote
	}

	var body struct {
		Hitokoto string `json:"hitokoto"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn("Hitokoto response malformed: %v", err)
		return DefaultQuote
	}
	if body.Hitokoto == "" {
		c.log.Warn("Hitokoto response missing quote field")
		return DefaultQuote
	}
	return body.Hitokoto
}
