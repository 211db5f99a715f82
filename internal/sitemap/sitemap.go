package sitemap

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// Namespace is the sitemap protocol namespace
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Defaults for routes without overrides
const (
	HomePriority      = 1.0
	HomeChangeFreq    = "daily"
	DefaultPriority   = 0.7
	DefaultChangeFreq = "monthly"
)

//go:embed routes.yaml
var defaultRoutes []byte

var excluded = regexp.MustCompile(`^/admin(/|$)`)

var changeFreqs = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}

// Route is one entry of the route table
type Route struct {
	Path       string   `yaml:"path"`
	Priority   *float64 `yaml:"priority,omitempty"`
	ChangeFreq string   `yaml:"changefreq,omitempty"`
}

type routeTable struct {
	Routes []Route `yaml:"routes"`
}

// Entry is a rendered <url> element
type Entry struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   float64
}

// ParseRoutes decodes and checks a YAML route table
func ParseRoutes(data []byte) ([]Route, error) {
	var table routeTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to parse routes: %w", err)
	}
	for i, r := range table.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %d: path %q must start with /", i, r.Path)
		}
		if r.Priority != nil && (*r.Priority < 0 || *r.Priority > 1) {
			return nil, fmt.Errorf("route %s: priority %v out of [0,1]", r.Path, *r.Priority)
		}
		if r.ChangeFreq != "" && !changeFreqs[r.ChangeFreq] {
			return nil, fmt.Errorf("route %s: unknown changefreq %q", r.Path, r.ChangeFreq)
		}
	}
	return table.Routes, nil
}

// LoadRoutes reads a route table from path, or the built-in table when path is empty
func LoadRoutes(path string) ([]Route, error) {
	if path == "" {
		return ParseRoutes(defaultRoutes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes: %w", err)
	}
	return ParseRoutes(data)
}

// Generator renders the sitemap for a site
type Generator struct {
	baseURL string
	routes  []Route
	now     func() time.Time
}

// NewGenerator creates a generator for baseURL
func NewGenerator(baseURL string, routes []Route) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  routes,
		now:     time.Now,
	}
}

// Entries applies exclusion and defaults; duplicate paths keep the first occurrence
func (g *Generator) Entries() []Entry {
	lastMod := g.now().UTC().Format("2006-01-02")
	seen := make(map[string]bool, len(g.routes))
	entries := make([]Entry, 0, len(g.routes))

	for _, r := range g.routes {
		if excluded.MatchString(r.Path) || seen[r.Path] {
			continue
		}
		seen[r.Path] = true

		e := Entry{
			Loc:        g.baseURL + r.Path,
			LastMod:    lastMod,
			ChangeFreq: DefaultChangeFreq,
			Priority:   DefaultPriority,
		}
		if r.Path == "/" {
			e.ChangeFreq = HomeChangeFreq
			e.Priority = HomePriority
		} else {
			if r.Priority != nil {
				e.Priority = *r.Priority
			}
			if r.ChangeFreq != "" {
				e.ChangeFreq = r.ChangeFreq
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// Render produces the sitemap XML document
func (g *Generator) Render() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)

	for _, e := range g.Entries() {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(e.Loc)
		u.CreateElement("lastmod").SetText(e.LastMod)
		u.CreateElement("changefreq").SetText(e.ChangeFreq)
		u.CreateElement("priority").SetText(formatPriority(e.Priority))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return out, nil
}

// WriteFile renders the sitemap and atomically replaces path
func (g *Generator) WriteFile(path string) (int, error) {
	data, err := g.Render()
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create sitemap dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sitemap-*.xml")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to chmod sitemap: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to replace sitemap: %w", err)
	}
	return len(g.Entries()), nil
}

// formatPriority keeps every significant digit and at least one decimal place
func formatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
