package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yourorg/homesearch-api/listing"
)

// Tier names a rung of the fallback ladder.
type Tier string

const (
	TierFull    Tier = "full"
	TierMinimal Tier = "minimal"
	TierBasic   Tier = "basic"
)

// UpstreamError is a non-2xx answer from the provider. After the ladder is
// exhausted it carries the final tier's status and body verbatim so the
// boundary can echo them.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	Tier       Tier
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider error %d (tier %s): %s", e.StatusCode, e.Tier, e.Body)
}

// SearchResult is a successful search: the normalized records plus which tier
// and payload produced them.
type SearchResult struct {
	Records []listing.Record
	Tier    Tier
	Payload Payload
	Raw     []byte
}

type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option          { return func(c *Client) { c.baseURL = u } }
func WithLogger(l *zap.Logger) Option      { return func(c *Client) { c.log = l } }
func WithLimiter(l *rate.Limiter) Option   { return func(c *Client) { c.limiter = l } }

func NewClient(apiKey string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil
	// retry connection failures only; status-driven fallback belongs to the
	// tier ladder, which must see every non-2xx exactly once
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	c := &Client{
		key:     apiKey,
		baseURL: "https://realty-search.p.rapidapi.com",
		http:    rc,
		limiter: rate.NewLimiter(rate.Limit(5), 10), // protect provider quota
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search dispatches a payload through the fallback ladder:
//
//	FULL -> MINIMAL -> BASIC -> failure
//
// Each rung runs only after the previous one answered non-2xx; the tiers are
// strictly sequential, never concurrent, and there are no retries past BASIC.
// Any 2xx is terminal and its body is normalized into records.
func (c *Client) Search(ctx context.Context, p Payload) (*SearchResult, error) {
	attempts := []struct {
		tier  Tier
		build func(Payload) Payload
	}{
		{TierFull, func(p Payload) Payload { return p }},
		{TierMinimal, MinimalPayload},
		{TierBasic, BasicPayload},
	}

	var last *UpstreamError
	for _, a := range attempts {
		payload := a.build(p)
		raw, err := c.post(ctx, payload)
		if err == nil {
			records, err := Normalize(raw)
			if err != nil {
				return nil, err
			}
			return &SearchResult{Records: records, Tier: a.tier, Payload: payload, Raw: raw}, nil
		}

		var ue *UpstreamError
		if !errors.As(err, &ue) {
			// transport failure: the ladder only sheds filters on status
			// rejections, not on network errors
			return nil, err
		}
		ue.Tier = a.tier
		last = ue
		c.log.Warn("provider tier rejected",
			zap.String("tier", string(a.tier)),
			zap.Int("status", ue.StatusCode))
	}
	return nil, last
}

func (c *Client) post(ctx context.Context, p Payload) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/properties/v3/list", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := ioReadAllLimit(resp.Body, 1<<20)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: b}
	}
	return ioReadAllLimit(resp.Body, 4<<20) // 4MB guard
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
