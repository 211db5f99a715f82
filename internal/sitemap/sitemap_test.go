package sitemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
)

func fixedGenerator(t *testing.T, routes []Route) *Generator {
	t.Helper()
	g := NewGenerator("https://calc.example.org/", routes)
	g.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return g
}

func ptr(f float64) *float64 { return &f }

func TestEntriesDefaultsAndExclusion(t *testing.T) {
	g := fixedGenerator(t, []Route{
		{Path: "/", Priority: ptr(0.2), ChangeFreq: "yearly"},
		{Path: "/odds-converter", Priority: ptr(0.9), ChangeFreq: "weekly"},
		{Path: "/bill-split-calculator"},
		{Path: "/admin"},
		{Path: "/admin/content"},
		{Path: "/bill-split-calculator"},
		{Path: "/administration-fee-calculator"},
	})

	entries := g.Entries()
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4: %+v", len(entries), entries)
	}
	if entries[3].Loc != "https://calc.example.org/administration-fee-calculator" {
		t.Errorf("public path sharing the admin prefix was dropped: %+v", entries[3])
	}

	home := entries[0]
	if home.Loc != "https://calc.example.org/" || home.Priority != 1.0 || home.ChangeFreq != "daily" {
		t.Errorf("home = %+v, homepage always gets 1.0/daily", home)
	}
	if entries[1].Priority != 0.9 || entries[1].ChangeFreq != "weekly" {
		t.Errorf("override not applied: %+v", entries[1])
	}
	if entries[2].Priority != DefaultPriority || entries[2].ChangeFreq != DefaultChangeFreq {
		t.Errorf("defaults not applied: %+v", entries[2])
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Loc, "/admin") || strings.Contains(e.Loc, "/admin/") {
			t.Errorf("admin route leaked: %s", e.Loc)
		}
		if e.LastMod != "2026-10-17" {
			t.Errorf("lastmod = %s", e.LastMod)
		}
	}
}

func TestRenderXML(t *testing.T) {
	g := fixedGenerator(t, []Route{{Path: "/"}, {Path: "/mortgage-calculator"}, {Path: "/kelly-calculator", Priority: ptr(0.85)}})
	out, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatalf("rendered XML does not parse: %v", err)
	}
	root := doc.Root()
	if root.Tag != "urlset" || root.SelectAttrValue("xmlns", "") != Namespace {
		t.Errorf("root = <%s xmlns=%q>", root.Tag, root.SelectAttrValue("xmlns", ""))
	}
	urls := root.SelectElements("url")
	if len(urls) != 3 {
		t.Fatalf("url count = %d, want 3", len(urls))
	}
	if got := urls[0].SelectElement("priority").Text(); got != "1.0" {
		t.Errorf("home priority = %s, want 1.0", got)
	}
	if got := urls[2].SelectElement("priority").Text(); got != "0.85" {
		t.Errorf("priority = %s, want 0.85", got)
	}
	if got := urls[1].SelectElement("priority").Text(); got != "0.7" {
		t.Errorf("priority = %s, want 0.7", got)
	}
	if got := urls[0].SelectElement("changefreq").Text(); got != "daily" {
		t.Errorf("changefreq = %s, want daily", got)
	}
}

func TestDefaultRoutes(t *testing.T) {
	routes, err := LoadRoutes("")
	if err != nil {
		t.Fatalf("LoadRoutes: %v", err)
	}
	if len(routes) == 0 || routes[0].Path != "/" {
		t.Fatalf("default table should start with /, got %+v", routes)
	}
	entries := NewGenerator("https://example.com", routes).Entries()
	if len(entries) >= len(routes) {
		t.Error("default table includes admin routes that must be excluded")
	}
}

func TestParseRoutesErrors(t *testing.T) {
	tests := map[string]string{
		"relative path":    "routes:\n  - path: about\n",
		"bad priority":     "routes:\n  - path: /a\n    priority: 1.5\n",
		"bad changefreq":   "routes:\n  - path: /a\n    changefreq: often\n",
		"unknown field":    "routes:\n  - path: /a\n    weight: 3\n",
		"not a route list": "routes: nope\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRoutes([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "sitemap.xml")
	g := fixedGenerator(t, []Route{{Path: "/"}, {Path: "/admin"}})

	n, err := g.WriteFile(path)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if n != 1 {
		t.Errorf("WriteFile wrote %d urls, want 1", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "<loc>https://calc.example.org/</loc>") {
		t.Errorf("unexpected sitemap:\n%s", data)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".sitemap-*"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
