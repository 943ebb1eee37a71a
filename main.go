package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kr/pretty"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/config"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/db"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/geocode"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/handler"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/osmgraph"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/provider"
)

func main() {
	from := flag.String("from", "", "source landmark; with -to, print one route and exit")
	to := flag.String("to", "", "destination landmark")
	flag.Parse()

	fmt.Println("=== Campus Navigation ===")

	// 1. configuration (.env + environment)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	// 2. landmarks without coordinates are geocoded from their address
	landmarks, err := geocode.FillCoordinates(ctx, newGeocoder(cfg), cfg.Landmarks)
	if err != nil {
		log.Fatalf("landmarks: %v", err)
	}

	// 3. graph source
	p, err := newProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("graph provider: %v", err)
	}

	nav := handler.NewNavigator(p, landmarks, handler.Options{
		Center:       cfg.Center,
		Radius:       cfg.Radius,
		Zoom:         cfg.Zoom,
		FetchTimeout: cfg.FetchTimeout,
	})

	fmt.Printf("Loading walking graph from %s (%.0f m around %.4f, %.4f)...\n",
		cfg.GraphSource, cfg.Radius, cfg.Center.Lat, cfg.Center.Lng)
	if _, err := nav.Refresh(ctx); err != nil {
		if *from != "" {
			log.Fatalf("load graph: %v", err)
		}
		// the server still starts and answers with the placeholder map
		log.Printf("load graph: %v", err)
	}

	if *from != "" || *to != "" {
		os.Exit(printRoute(os.Stdout, nav, *from, *to))
	}

	// 4. HTTP server
	r := gin.Default()
	setupRoutes(r, nav)

	printBanner(os.Stdout, cfg.Addr)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func printBanner(w io.Writer, addr string) {
	fmt.Fprintln(w, "Listening on", addr)
	fmt.Fprintln(w, "  GET  /ping")
	fmt.Fprintln(w, "  GET  /api/landmarks")
	fmt.Fprintln(w, "  GET  /api/route?from=&to=   POST /api/route")
	fmt.Fprintln(w, "  GET  /api/nodes             GET  /api/nodes/search?q=")
	fmt.Fprintln(w, "  GET  /api/nodes/:id         GET  /api/nodes/nearest?lat=&lng=")
	fmt.Fprintln(w, "  POST /api/graph/refresh")
}

func setupRoutes(r *gin.Engine, nav *handler.Navigator) {
	r.Use(handler.CORS())

	r.GET("/ping", func(c *gin.Context) {
		status := "ok"
		if nav.Session() == nil {
			status = "no graph"
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": status})
	})

	nav.Register(r.Group("/api"))
}

func newProvider(ctx context.Context, cfg *config.Config) (provider.GraphProvider, error) {
	switch cfg.GraphSource {
	case config.SourceFile:
		return provider.FileProvider{Path: cfg.GraphFile}, nil

	case config.SourceDB:
		conn, err := db.Connect(cfg.DB, 30)
		if err != nil {
			return nil, err
		}
		empty, err := db.IsEmpty(ctx, conn)
		if err != nil {
			return nil, err
		}
		if empty {
			log.Printf("database is empty, importing %s", cfg.GraphFile)
			g, err := provider.FileProvider{Path: cfg.GraphFile}.FetchGraph(ctx, cfg.Center, cfg.Radius)
			if err != nil {
				log.Printf("warning: import failed: %v", err)
			} else if err := db.SaveGraph(ctx, conn, g); err != nil {
				log.Printf("warning: import failed: %v", err)
			}
		}
		return db.Provider{DB: conn}, nil

	default:
		p := osmgraph.NewProvider(cfg.OverpassURL)
		p.Client = &http.Client{Timeout: cfg.FetchTimeout}
		return p, nil
	}
}

func newGeocoder(cfg *config.Config) geocode.Geocoder {
	if cfg.GoogleMapsAPIKey == "" {
		return nil
	}
	g, err := geocode.NewGoogle(cfg.GoogleMapsAPIKey, "in")
	if err != nil {
		log.Printf("geocoding disabled: %v", err)
		return nil
	}
	return g
}

// printRoute computes one route and dumps it with its full map view;
// returns the exit code
func printRoute(w io.Writer, nav *handler.Navigator, from, to string) int {
	if from == "" || to == "" {
		fmt.Fprintln(os.Stderr, "both -from and -to are required")
		return 2
	}

	view, err := nav.Navigate(from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, "route:", err)
		return 1
	}

	fmt.Fprint(w, nav.Session().Graph.FormatRoute(*view.Route))
	pretty.Fprintf(w, "%# v\n", view)
	return 0
}
