package ratefeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/calc-hub/internal/cache"
	"github.com/Dan9191/calc-hub/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

const cacheKey = "ratefeed:mortgage"

// Rate is a reference mortgage rate derived from the central bank key rate
type Rate struct {
	KeyRate   float64   `json:"keyRate"`
	Margin    float64   `json:"margin"`
	Rate      float64   `json:"rate"`
	AsOf      string    `json:"asOf,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
	Cached    bool      `json:"cached"`
}

// Client fetches the key rate over SOAP
type Client struct {
	url    string
	margin float64
	ttl    time.Duration
	client *http.Client
	cache  cache.Cache
	log    *logrus.Logger
	now    func() time.Time
}

// NewClient initializes a new rate feed client
func NewClient(cfg *config.Config, c cache.Cache, log *logrus.Logger) *Client {
	return &Client{
		url:    cfg.RateFeedURL,
		margin: cfg.RateMargin,
		ttl:    cfg.RateCacheTTL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: c,
		log:   log,
		now:   time.Now,
	}
}

// buildSOAPRequest creates a SOAP request for the last 30 days of key rates
func (c *Client) buildSOAPRequest() string {
	now := c.now()
	fromDate := now.AddDate(0, 0, -30).Format("2006-01-02")
	toDate := now.Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

func (c *Client) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("Rate feed XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse returns the latest key rate and its date
func parseXMLResponse(rawBody []byte) (float64, string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, "", fmt.Errorf("failed to parse XML: %w", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return 0, "", fmt.Errorf("no key rate data found in XML")
	}

	// the feed lists newest first
	latest := krElements[0]
	rateElement := latest.FindElement("./Rate")
	if rateElement == nil {
		return 0, "", fmt.Errorf("rate element not found in XML")
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(rateElement.Text()), 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse rate: %w", err)
	}

	var asOf string
	if dt := latest.FindElement("./DT"); dt != nil {
		asOf = strings.TrimSpace(dt.Text())
		if t, err := time.Parse(time.RFC3339, asOf); err == nil {
			asOf = t.Format("2006-01-02")
		}
	}
	return rate, asOf, nil
}

// Fetch always queries the feed and refreshes the cache
func (c *Client) Fetch(ctx context.Context) (*Rate, error) {
	body, err := c.sendRequest(ctx, c.buildSOAPRequest())
	if err != nil {
		return nil, err
	}
	keyRate, asOf, err := parseXMLResponse(body)
	if err != nil {
		return nil, err
	}

	rate := &Rate{
		KeyRate:   keyRate,
		Margin:    c.margin,
		Rate:      keyRate + c.margin,
		AsOf:      asOf,
		FetchedAt: c.now().UTC(),
	}
	if c.cache != nil {
		if data, err := json.Marshal(rate); err == nil {
			if err := c.cache.Set(ctx, cacheKey, data, c.ttl); err != nil {
				c.log.Warnf("Failed to cache rate: %v", err)
			}
		}
	}

	c.log.Infof("Retrieved key rate: %.2f%% (mortgage reference %.2f%% with %.2f%% margin)", keyRate, rate.Rate, c.margin)
	return rate, nil
}

// MortgageRate returns the cached reference rate or fetches a fresh one
func (c *Client) MortgageRate(ctx context.Context) (*Rate, error) {
	if c.cache != nil {
		data, ok, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			c.log.Warnf("Rate cache unavailable: %v", err)
		}
		if ok {
			var rate Rate
			if err := json.Unmarshal(data, &rate); err == nil {
				rate.Cached = true
				return &rate, nil
			}
		}
	}
	return c.Fetch(ctx)
}
