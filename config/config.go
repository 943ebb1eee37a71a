package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
)

// Graph sources
const (
	SourceOverpass = "overpass"
	SourceDB       = "db"
	SourceFile     = "file"
)

// DBConfig Postgres connection settings
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN connection string for gorm's postgres driver
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

// Config application settings
type Config struct {
	Addr         string        // HTTP listen address
	GraphSource  string        // overpass, db or file
	GraphFile    string        // map data JSON or .osm XML, for the file source
	OverpassURL  string        // Overpass API interpreter endpoint
	FetchTimeout time.Duration // bound on one graph fetch

	Center model.Point // campus center
	Radius float64     // meters around Center
	Zoom   int         // map zoom for routes

	LandmarksFile    string // optional JSON list of landmarks
	Landmarks        []model.Landmark
	GoogleMapsAPIKey string // enables geocoding of address-only landmarks

	DB DBConfig
}

// DefaultLandmarks the campus buildings of the original navigator, in display order
func DefaultLandmarks() []model.Landmark {
	return []model.Landmark{
		{Name: "Hut Cafe", Lat: 13.0084, Lng: 80.0036},
		{Name: "Library", Lat: 13.0090, Lng: 80.0055},
		{Name: "Indoor Auditorium", Lat: 13.0084, Lng: 80.0055},
		{Name: "REC Cafe", Lat: 13.0086, Lng: 80.0026},
		{Name: "Ground", Lat: 13.0085, Lng: 80.0044},
		{Name: "Basket Ball Court", Lat: 13.0093, Lng: 80.0041},
	}
}

// Load reads the configuration from the environment.
// Values in a .env file are used when the variable is not already set.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Addr:             getEnvOrDefault("HTTP_ADDR", ":8080"),
		GraphSource:      getEnvOrDefault("GRAPH_SOURCE", SourceOverpass),
		GraphFile:        getEnvOrDefault("GRAPH_FILE", "map_data.json"),
		OverpassURL:      getEnvOrDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		LandmarksFile:    os.Getenv("LANDMARKS_FILE"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "campus"),
			Password: getEnvOrDefault("DB_PASSWORD", "campus"),
			Name:     getEnvOrDefault("DB_NAME", "campus"),
		},
	}

	var err error
	if cfg.Center.Lat, err = getFloat("CAMPUS_LAT", 13.0087); err != nil {
		return nil, err
	}
	if cfg.Center.Lng, err = getFloat("CAMPUS_LNG", 80.0034); err != nil {
		return nil, err
	}
	if cfg.Radius, err = getFloat("CAMPUS_RADIUS", 500); err != nil {
		return nil, err
	}
	if cfg.Radius <= 0 {
		return nil, fmt.Errorf("CAMPUS_RADIUS must be positive, got %v", cfg.Radius)
	}
	zoom, err := getFloat("MAP_ZOOM", 18)
	if err != nil {
		return nil, err
	}
	cfg.Zoom = int(zoom)

	timeout := getEnvOrDefault("FETCH_TIMEOUT", "30s")
	if cfg.FetchTimeout, err = time.ParseDuration(timeout); err != nil {
		return nil, fmt.Errorf("FETCH_TIMEOUT: %w", err)
	}

	switch cfg.GraphSource {
	case SourceOverpass, SourceDB, SourceFile:
	default:
		return nil, fmt.Errorf("GRAPH_SOURCE must be one of %s, %s, %s; got %q",
			SourceOverpass, SourceDB, SourceFile, cfg.GraphSource)
	}

	if cfg.LandmarksFile != "" {
		if cfg.Landmarks, err = LoadLandmarks(cfg.LandmarksFile); err != nil {
			return nil, err
		}
	} else {
		cfg.Landmarks = DefaultLandmarks()
	}

	return cfg, nil
}

// LoadLandmarks reads an ordered JSON list of landmarks. Names must be unique.
func LoadLandmarks(path string) ([]model.Landmark, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read landmarks: %w", err)
	}

	var landmarks []model.Landmark
	if err := json.Unmarshal(file, &landmarks); err != nil {
		return nil, fmt.Errorf("decode landmarks: %w", err)
	}

	seen := make(map[string]bool, len(landmarks))
	for _, lm := range landmarks {
		if lm.Name == "" {
			return nil, fmt.Errorf("landmark without a name in %s", path)
		}
		if seen[lm.Name] {
			return nil, fmt.Errorf("duplicate landmark %q in %s", lm.Name, path)
		}
		if !lm.HasCoordinate() && lm.Address == "" {
			return nil, fmt.Errorf("landmark %q needs lat/lng or an address", lm.Name)
		}
		seen[lm.Name] = true
	}

	return landmarks, nil
}

// getEnvOrDefault returns the environment variable, or defaultVal when unset
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
