package osmgraph

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
)

// DefaultOverpassURL public Overpass API interpreter
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// Provider fetches the walking graph around a point from the Overpass API
type Provider struct {
	URL    string
	Client *http.Client
}

// NewProvider creates a provider for an Overpass interpreter endpoint
func NewProvider(endpoint string) *Provider {
	if endpoint == "" {
		endpoint = DefaultOverpassURL
	}
	return &Provider{URL: endpoint, Client: http.DefaultClient}
}

// Query Overpass QL selecting every highway within radius of center,
// together with the nodes those ways reference
func Query(center model.Point, radius float64) string {
	return fmt.Sprintf(
		"[out:xml][timeout:25];way[\"highway\"](around:%.0f,%.7f,%.7f);(._;>;);out body;",
		radius, center.Lat, center.Lng,
	)
}

// FetchGraph downloads and parses the walking graph, then trims it to the radius
func (p *Provider) FetchGraph(ctx context.Context, center model.Point, radius float64) (*algo.Graph, error) {
	form := url.Values{"data": {Query(center, radius)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	g, err := Parse(ctx, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}

	trimmed := g.Within(center, radius)
	log.Printf("overpass: %d nodes fetched, %d within %.0f m", g.NodeCount(), trimmed.NodeCount(), radius)
	return trimmed, nil
}
