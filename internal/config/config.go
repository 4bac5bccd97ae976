package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
)

type Config struct {
	Port int `envconfig:"PORT" default:"8080"`
	// DatabaseURL selects the Postgres store. Empty means SQLite at SQLitePath.
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"./data/canvas.db"`
	ImageDir       string `envconfig:"IMAGE_DIR" default:"./data/images"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`

	GridUnit              float64       `envconfig:"GRID_UNIT" default:"10"`
	MinScale              float64       `envconfig:"MIN_SCALE" default:"0.1"`
	MaxScale              float64       `envconfig:"MAX_SCALE" default:"3"`
	ZoomFactor            float64       `envconfig:"ZOOM_FACTOR" default:"1.2"`
	DuplicateGridMultiple float64       `envconfig:"DUPLICATE_GRID_MULTIPLE" default:"2"`
	GroupDragThreshold    float64       `envconfig:"GROUP_DRAG_THRESHOLD" default:"0.5"`
	SaveInterval          time.Duration `envconfig:"SAVE_INTERVAL" default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CanvasSettings returns the editor tunables.
func (c *Config) CanvasSettings() canvas.Settings {
	return canvas.Settings{
		GridUnit:              c.GridUnit,
		MinScale:              c.MinScale,
		MaxScale:              c.MaxScale,
		ZoomFactor:            c.ZoomFactor,
		DuplicateGridMultiple: c.DuplicateGridMultiple,
		GroupDragThreshold:    c.GroupDragThreshold,
	}
}

// Origins splits AllowedOrigins on commas, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
