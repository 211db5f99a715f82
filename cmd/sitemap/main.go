package main

import (
	"flag"
	"os"

	"github.com/Dan9191/calc-hub/internal/sitemap"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load()

	var (
		baseURL = flag.String("base-url", getEnv("SITE_BASE_URL", "https://example.com"), "absolute site URL used in <loc>")
		routes  = flag.String("routes", getEnv("SITEMAP_ROUTES", ""), "YAML route table (built-in table when empty)")
		out     = flag.String("out", getEnv("SITEMAP_PATH", "public/sitemap.xml"), "output file, - for stdout")
	)
	flag.Parse()

	table, err := sitemap.LoadRoutes(*routes)
	if err != nil {
		logger.Fatalf("Failed to load routes: %v", err)
	}
	gen := sitemap.NewGenerator(*baseURL, table)

	if *out == "-" {
		data, err := gen.Render()
		if err != nil {
			logger.Fatalf("Failed to render sitemap: %v", err)
		}
		os.Stdout.Write(data)
		return
	}

	n, err := gen.WriteFile(*out)
	if err != nil {
		logger.Fatalf("Failed to write sitemap: %v", err)
	}
	logger.Infof("Sitemap generated with %d URLs at %s", n, *out)
}
