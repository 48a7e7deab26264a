package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GPS GPSConfig `yaml:"gps"`
	Web WebConfig `yaml:"web"`
	UDP UDPConfig `yaml:"udp"`
	PPS PPSConfig `yaml:"pps"`
}

type GPSConfig struct {
	// Source selects the byte feed: "serial" (default), "replay" or "sim".
	Source string `yaml:"source"`

	// Device is the serial device path; empty means auto-detect.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	Replay ReplayConfig `yaml:"replay"`
	Sim    SimConfig    `yaml:"sim"`
}

type ReplayConfig struct {
	Path string `yaml:"path"`
	// Rate is sentences per second; 0 means as fast as possible.
	Rate float64 `yaml:"rate"`
	Loop bool    `yaml:"loop"`
}

type SimConfig struct {
	CenterLatDeg float64       `yaml:"center_lat_deg"`
	CenterLonDeg float64       `yaml:"center_lon_deg"`
	RadiusNm     float64       `yaml:"radius_nm"`
	Period       time.Duration `yaml:"period"`
	GroundKt     int           `yaml:"ground_kt"`
}

type WebConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

type UDPConfig struct {
	Enable   bool          `yaml:"enable"`
	Dest     string        `yaml:"dest"`
	Interval time.Duration `yaml:"interval"`
}

type PPSConfig struct {
	Enable bool `yaml:"enable"`
	// Pin is the BCM GPIO number carrying the receiver's PPS output.
	Pin int `yaml:"pin"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	switch cfg.GPS.Source {
	case "":
		cfg.GPS.Source = "serial"
	case "serial", "replay", "sim":
	default:
		return Config{}, fmt.Errorf("gps.source must be serial, replay or sim, got %q", cfg.GPS.Source)
	}
	if cfg.GPS.Baud == 0 {
		cfg.GPS.Baud = 9600
	}

	if cfg.GPS.Source == "replay" {
		if cfg.GPS.Replay.Path == "" {
			return Config{}, fmt.Errorf("gps.replay.path is required when gps.source is replay")
		}
		if cfg.GPS.Replay.Rate < 0 {
			return Config{}, fmt.Errorf("gps.replay.rate must be >= 0")
		}
	}

	// Simulator defaults (safe even if unused).
	if cfg.GPS.Sim.Period <= 0 {
		cfg.GPS.Sim.Period = 120 * time.Second
	}
	if cfg.GPS.Sim.RadiusNm <= 0 {
		cfg.GPS.Sim.RadiusNm = 0.5
	}
	if cfg.GPS.Sim.GroundKt <= 0 {
		cfg.GPS.Sim.GroundKt = 30
	}

	if cfg.Web.Enable && cfg.Web.Listen == "" {
		cfg.Web.Listen = ":8080"
	}

	if cfg.UDP.Enable {
		if cfg.UDP.Dest == "" {
			return Config{}, fmt.Errorf("udp.dest is required when udp.enable is true")
		}
		if cfg.UDP.Interval <= 0 {
			cfg.UDP.Interval = 1 * time.Second
		}
	}

	if cfg.PPS.Enable && cfg.PPS.Pin <= 0 {
		return Config{}, fmt.Errorf("pps.pin is required when pps.enable is true")
	}

	return cfg, nil
}
