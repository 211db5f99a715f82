package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Dan9191/calc-hub/internal/apperr"
	"github.com/Dan9191/calc-hub/internal/cache"
	"github.com/Dan9191/calc-hub/internal/games"
	"github.com/Dan9191/calc-hub/internal/integrations/ratefeed"
	"github.com/Dan9191/calc-hub/internal/service"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// RateSource provides the reference mortgage rate
type RateSource interface {
	MortgageRate(ctx context.Context) (*ratefeed.Rate, error)
}

// SitemapRenderer renders sitemap.xml
type SitemapRenderer interface {
	Render() ([]byte, error)
}

type Handler struct {
	svc     *service.Service
	table   *games.Table
	rates   RateSource
	sitemap SitemapRenderer
	cache   cache.Cache
	log     *logrus.Logger
}

// Deps groups the optional collaborators of the handler
type Deps struct {
	Table   *games.Table
	Rates   RateSource
	Sitemap SitemapRenderer
	Cache   cache.Cache
}

func NewHandler(svc *service.Service, log *logrus.Logger, deps Deps) *Handler {
	h := &Handler{
		svc:     svc,
		table:   deps.Table,
		rates:   deps.Rates,
		sitemap: deps.Sitemap,
		cache:   deps.Cache,
		log:     log,
	}
	if h.table == nil {
		h.table = games.NewTable(nil)
	}
	if h.cache == nil {
		h.cache = cache.NewMemoryCache()
	}
	return h
}

// Health returns service health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "calc-hub",
	})
}

// decode reads a JSON body into v
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.Invalid, "request body is required")
		}
		return apperr.Wrap(apperr.Invalid, err, "invalid request")
	}
	return nil
}

// fail logs server-side failures and writes the error response
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.log.WithFields(logrus.Fields{"path": r.URL.Path, "method": r.Method}).Errorf("Request failed: %v", err)
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	respondError(w, status, msg)
}

// calc runs a calculator and maps its validation errors to 400
func calc[T any](result T, err error) (T, error) {
	if err != nil {
		return result, apperr.InvalidInput(err)
	}
	return result, nil
}

// respondJSON writes a JSON response. The body is marshalled before the
// status goes out so an unencodable value becomes a 500 instead of an empty reply.
func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// oddsValue accepts odds as a JSON string ("5/2", "+150") or number (2.5)
type oddsValue string

func (v *oddsValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = oddsValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("odds must be a string or number")
	}
	*v = oddsValue(n.String())
	return nil
}
