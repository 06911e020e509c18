// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds window and rendering settings.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig controls what the viewer displays.
type SceneConfig struct {
	// Shape is one of box, plane, sphere.
	Shape string `yaml:"shape"`
	// Wireframe renders edges instead of filled faces.
	Wireframe bool `yaml:"wireframe"`
	// CacheFaces precomputes face geometry for picking.
	CacheFaces bool `yaml:"cache_faces"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	// Distance from the orbit center. Zero fits the camera to the
	// mesh bounds.
	Distance float32 `yaml:"distance"`
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Shape:      "box",
			Wireframe:  false,
			CacheFaces: true,
		},
		Camera: CameraConfig{
			Distance: 0,
			FOV:      60,
			Near:     0.1,
			Far:      100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
