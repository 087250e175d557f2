package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lunch-roulette/internal/config"
	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/mapview"
	"lunch-roulette/internal/panorama"
	"lunch-roulette/internal/proxy"
	"lunch-roulette/internal/routing"
	"lunch-roulette/internal/view"
)

func main() {
	mode := flag.String("mode", string(view.ModeSingle), "pick mode: single or roulette")
	categories := flag.String("categories", "", "comma-separated categories, e.g. 한식,카페")
	all := flag.Bool("all", false, "select every category")
	radius := flag.Int("radius", 800, "search radius in meters: 500, 800 or 2000")
	showPanorama := flag.Bool("panorama", false, "look up a street-level panorama for the pick")
	output := flag.String("out", "", "GeoJSON output path (overrides MAP_OUTPUT)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
		os.Exit(1)
	}
	cfg := config.LoadRecommenderConfig()
	config.SetupLogging(os.Stderr, cfg.LogLevel)

	if *output != "" {
		cfg.MapOutput = *output
	}

	pickMode := view.Mode(strings.ToLower(*mode))
	if pickMode != view.ModeSingle && pickMode != view.ModeRoulette {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, pickMode, *categories, *all, *radius, *showPanorama); err != nil {
		slog.Error("Recommendation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.RecommenderConfig, mode view.Mode, categories string, all bool, radius int, showPanorama bool) error {
	deps := view.Dependencies{
		Locator:  newLocator(cfg),
		Search:   proxy.NewClient(cfg.SearchProxyURL),
		Router:   routing.NewRoutingService(routing.Mode(cfg.RouteMode), cfg.OSRMBaseURL),
		Notifier: mapview.NewConsoleNotifier(os.Stdout),
		Wheel:    mapview.NewConsoleWheel(os.Stdout, 3, 40*time.Millisecond),
	}
	if cfg.MapKey != "" {
		deps.Panorama = panorama.NewClient(cfg.PanoramaURL, cfg.MapKey)
	}

	v := view.New(deps)

	var gmap *mapview.GeoJSONMap
	if cfg.MapKey != "" {
		gmap = mapview.NewGeoJSONMap(view.DefaultZoomLevel)
		v.AttachMap(gmap)
	} else {
		slog.Warn("MAP_KEY not set, map is disabled")
	}

	if all {
		v.SelectAllCategories(true)
	}
	for _, category := range strings.Split(categories, ",") {
		if category = strings.TrimSpace(category); category == "" {
			continue
		}
		if err := v.ToggleCategory(category); err != nil {
			return fmt.Errorf("category %q: %w", category, err)
		}
	}
	if err := v.SetRadius(radius); err != nil {
		return fmt.Errorf("radius %d: %w", radius, err)
	}

	query, r := v.Query()
	slog.Info("Recommending", "mode", string(mode), "query", query, "radius", r)

	if err := v.Recommend(ctx, mode); err != nil {
		return err
	}

	if s := v.Session(); s.WheelOpen {
		fmt.Println("룰렛 후보:")
		for i, c := range s.Candidates {
			fmt.Printf("  %d. %s\n", i+1, c.Name)
		}
		if err := v.Spin(ctx); err != nil {
			return err
		}
	}

	s := v.Session()
	if s.Recommendation == nil {
		return nil
	}
	mapview.WriteCard(os.Stdout, *s.Recommendation, s.UserLocation)

	if showPanorama {
		if err := v.SetPanorama(ctx, true); err != nil {
			slog.Warn("Panorama unavailable", "error", err)
		}
	}

	if gmap != nil {
		return gmap.WriteFile(cfg.MapOutput)
	}
	return nil
}

func newLocator(cfg config.RecommenderConfig) geo.Locator {
	if cfg.Geolocation == "ip" {
		return geo.NewIPLocator(cfg.IPLocatorURL)
	}
	if !cfg.HasStart {
		return geo.NewFixedLocator(nil)
	}
	return geo.NewFixedLocator(&geo.Coordinate{Lat: cfg.StartLat, Lng: cfg.StartLng})
}
