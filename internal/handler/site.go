package handler

import (
	"net/http"
	"time"

	"github.com/Dan9191/calc-hub/internal/apperr"
)

const (
	sitemapCacheKey = "sitemap:xml"
	sitemapCacheTTL = time.Hour
)

// MortgageRate returns the reference rate from the central bank feed
func (h *Handler) MortgageRate(w http.ResponseWriter, r *http.Request) {
	if h.rates == nil {
		respondError(w, http.StatusServiceUnavailable, "rate feed not configured")
		return
	}
	rate, err := h.rates.MortgageRate(r.Context())
	if err != nil {
		h.fail(w, r, apperr.Wrap(apperr.Unavailable, err, "rate feed unavailable"))
		return
	}
	respondJSON(w, http.StatusOK, rate)
}

// Sitemap serves sitemap.xml, rendered at most once per cache TTL
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	if h.sitemap == nil {
		http.NotFound(w, r)
		return
	}

	data, ok, err := h.cache.Get(r.Context(), sitemapCacheKey)
	if err != nil {
		h.log.Warnf("Sitemap cache unavailable: %v", err)
	}
	if !ok {
		data, err = h.sitemap.Render()
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.cache.Set(r.Context(), sitemapCacheKey, data, sitemapCacheTTL); err != nil {
			h.log.Warnf("Failed to cache sitemap: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
