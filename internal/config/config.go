// Package config handles scene engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Headless   bool   `yaml:"headless"` // run the frame loop without a window
}

// SceneConfig holds the spatial index and pool settings.
type SceneConfig struct {
	OctreeCenter     [3]float32 `yaml:"octree_center"`
	OctreeHalfExtent float32    `yaml:"octree_half_extent"`
	OctreeThreshold  int        `yaml:"octree_threshold"`
	OctreeMaxDepth   int        `yaml:"octree_max_depth"`
	PoolCapacity     int        `yaml:"pool_capacity"`
	SpawnRadius      float32    `yaml:"spawn_radius"`
	Seed             uint64     `yaml:"seed"` // 0 picks a random seed
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	LogFile      string `yaml:"log_file"`
	ConsoleLines int    `yaml:"console_lines"` // editor console backlog
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Midgard Scene",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Headless:   false,
		},
		Scene: SceneConfig{
			OctreeCenter:     [3]float32{0, 0, 0},
			OctreeHalfExtent: 512,
			OctreeThreshold:  8,
			OctreeMaxDepth:   6,
			PoolCapacity:     64,
			SpawnRadius:      10,
			Seed:             0,
		},
		Logging: LoggingConfig{
			Level:        "info",
			LogFile:      "",
			ConsoleLines: 256,
		},
	}
}
