package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	cp "github.com/otiai10/copy"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDir      = "config"
	DefaultFile     = "smartmouse.yaml"
	templateDirName = "template"
)

var (
	cfgMux     sync.RWMutex
	Smartmouse *Cfg
	Version    = "dev"
)

type Cfg struct {
	Debug struct {
		Log bool `yaml:"log"`
	} `yaml:"debug"`
	LogSaveDirectory string `yaml:"logSaveDirectory"`
	MouseDataPath    string `yaml:"mouseDataPath"`
	// Seed for the movement random source, 0 seeds from the clock.
	Seed   int64  `yaml:"seed"`
	Host   Host   `yaml:"host"`
	Agent  Agent  `yaml:"agent"`
	Replay Replay `yaml:"replay"`
}

type Host struct {
	Kind         string `yaml:"kind"` // virtual, windows, browser, remote
	CanvasWidth  int    `yaml:"canvasWidth"`
	CanvasHeight int    `yaml:"canvasHeight"`
	WindowTitle  string `yaml:"windowTitle,omitempty"`
	BrowserURL   string `yaml:"browserURL,omitempty"`
	Headless     bool   `yaml:"headless,omitempty"`
	RemoteAddr   string `yaml:"remoteAddr,omitempty"`
}

type Agent struct {
	ListenAddr string `yaml:"listenAddr"`
}

// Replay shapes the pauses between consecutive moves of a sequence.
type Replay struct {
	PauseMeanMs float64 `yaml:"pauseMeanMs"`
	PauseShape  float64 `yaml:"pauseShape"`
	PauseMinMs  float64 `yaml:"pauseMinMs"`
	PauseMaxMs  float64 `yaml:"pauseMaxMs"`
}

// Validate fills defaults for anything left unset.
func (c *Cfg) Validate() {
	if c.LogSaveDirectory == "" {
		c.LogSaveDirectory = "logs"
	}
	if c.MouseDataPath == "" {
		c.MouseDataPath = filepath.Join(DefaultDir, "mousedata.json")
	}
	if c.Host.Kind == "" {
		c.Host.Kind = "virtual"
	}
	if c.Host.CanvasWidth <= 0 {
		c.Host.CanvasWidth = 800
	}
	if c.Host.CanvasHeight <= 0 {
		c.Host.CanvasHeight = 600
	}
	if c.Agent.ListenAddr == "" {
		c.Agent.ListenAddr = "127.0.0.1:8089"
	}
	if c.Replay.PauseMeanMs <= 0 {
		c.Replay.PauseMeanMs = 225
	}
	if c.Replay.PauseShape < 1 {
		c.Replay.PauseShape = 4
	}
	if c.Replay.PauseMinMs <= 0 {
		c.Replay.PauseMinMs = 200
	}
	if c.Replay.PauseMaxMs < c.Replay.PauseMinMs {
		c.Replay.PauseMaxMs = 2 * c.Replay.PauseMinMs
	}
}

// Load reads config/smartmouse.yaml, creating the config folder from the
// template first when it does not exist yet.
func Load() error {
	path := filepath.Join(DefaultDir, DefaultFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := CreateFromTemplate(DefaultDir); err != nil {
			return err
		}
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the config at path and makes it current.
func LoadFrom(path string) error {
	cfg, err := read(path)
	if err != nil {
		return err
	}

	cfgMux.Lock()
	defer cfgMux.Unlock()
	Smartmouse = cfg
	return nil
}

func read(path string) (*Cfg, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	defer r.Close()

	cfg := &Cfg{}
	d := yaml.NewDecoder(r)
	if err := d.Decode(cfg); err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// Current returns a copy of the loaded config.
func Current() Cfg {
	cfgMux.RLock()
	defer cfgMux.RUnlock()
	if Smartmouse == nil {
		var c Cfg
		c.Validate()
		return c
	}
	return *Smartmouse
}

// CreateFromTemplate copies the template folder next to dir's files. Existing
// files are left alone.
func CreateFromTemplate(dir string) error {
	src := filepath.Join(dir, templateDirName)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("config template %s not found: %w", src, err)
	}

	err := cp.Copy(src, dir, cp.Options{
		OnDirExists: func(_, _ string) cp.DirExistsAction { return cp.Merge },
		Skip: func(_ os.FileInfo, _, dest string) (bool, error) {
			_, err := os.Stat(dest)
			return err == nil, nil
		},
	})
	if err != nil {
		return fmt.Errorf("error copying template: %w", err)
	}
	return nil
}

// Save writes cfg to path.
func Save(path string, cfg Cfg) error {
	cfg.Validate()
	text, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error parsing smartmouse config: %w", err)
	}
	if err := os.WriteFile(path, text, 0644); err != nil {
		return fmt.Errorf("error writing smartmouse config: %w", err)
	}
	return nil
}
