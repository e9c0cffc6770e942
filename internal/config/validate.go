package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Scene.OctreeHalfExtent <= 0 {
		err = multierr.Append(err, fmt.Errorf("scene.octree_half_extent must be positive, got %g", c.Scene.OctreeHalfExtent))
	}
	if c.Scene.OctreeThreshold < 1 {
		err = multierr.Append(err, fmt.Errorf("scene.octree_threshold must be at least 1, got %d", c.Scene.OctreeThreshold))
	}
	if c.Scene.OctreeMaxDepth < 0 || c.Scene.OctreeMaxDepth > 16 {
		err = multierr.Append(err, fmt.Errorf("scene.octree_max_depth must be in [0, 16], got %d", c.Scene.OctreeMaxDepth))
	}
	if c.Scene.PoolCapacity < 1 {
		err = multierr.Append(err, fmt.Errorf("scene.pool_capacity must be at least 1, got %d", c.Scene.PoolCapacity))
	}
	if c.Scene.SpawnRadius < 0 {
		err = multierr.Append(err, fmt.Errorf("scene.spawn_radius must not be negative, got %g", c.Scene.SpawnRadius))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if c.Logging.ConsoleLines < 0 {
		err = multierr.Append(err, fmt.Errorf("logging.console_lines must not be negative, got %d", c.Logging.ConsoleLines))
	}
	return err
}
