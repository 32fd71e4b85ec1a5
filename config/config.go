package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	Theme                string `json:"theme"`
	ColorProfile         string `json:"color_profile"`
	QuitTimes            int    `json:"quit_times"`
	StatusTimeoutSeconds int    `json:"status_timeout_seconds"`
	WatchFile            bool   `json:"watch_file"`
	LogFile              string `json:"log_file"`
}

// ColorScheme colours the editor chrome. Syntax names the chroma style used
// for highlighted text.
type ColorScheme struct {
	Name        string
	Syntax      string
	Background  tcell.Color
	Foreground  tcell.Color
	Tilde       tcell.Color
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
	MessageFg   tcell.Color
	PromptFg    tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:        "Dark",
		Syntax:      "native",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		Tilde:       tcell.ColorGray,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
		MessageFg:   tcell.ColorWhite,
		PromptFg:    tcell.ColorYellow,
	},
	"light": {
		Name:        "Light",
		Syntax:      "github",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		Tilde:       tcell.ColorGray,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
		MessageFg:   tcell.ColorBlack,
		PromptFg:    tcell.ColorBlue,
	},
	"monokai": {
		Name:        "Monokai",
		Syntax:      "monokai",
		Background:  tcell.NewRGBColor(39, 40, 34),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		Tilde:       tcell.NewRGBColor(144, 144, 128),
		StatusBarBg: tcell.NewRGBColor(73, 72, 62),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
		MessageFg:   tcell.NewRGBColor(248, 248, 242),
		PromptFg:    tcell.NewRGBColor(102, 217, 239),
	},
	"nord": {
		Name:        "Nord",
		Syntax:      "nord",
		Background:  tcell.NewRGBColor(46, 52, 64),
		Foreground:  tcell.NewRGBColor(236, 239, 244),
		Tilde:       tcell.NewRGBColor(76, 86, 106),
		StatusBarBg: tcell.NewRGBColor(67, 76, 94),
		StatusBarFg: tcell.NewRGBColor(236, 239, 244),
		MessageFg:   tcell.NewRGBColor(236, 239, 244),
		PromptFg:    tcell.NewRGBColor(136, 192, 208),
	},
	"solarized-dark": {
		Name:        "Solarized Dark",
		Syntax:      "solarized-dark",
		Background:  tcell.NewRGBColor(0, 43, 54),
		Foreground:  tcell.NewRGBColor(131, 148, 150),
		Tilde:       tcell.NewRGBColor(88, 110, 117),
		StatusBarBg: tcell.NewRGBColor(7, 54, 66),
		StatusBarFg: tcell.NewRGBColor(147, 161, 161),
		MessageFg:   tcell.NewRGBColor(147, 161, 161),
		PromptFg:    tcell.NewRGBColor(38, 139, 210),
	},
	"gruvbox": {
		Name:        "Gruvbox Dark",
		Syntax:      "gruvbox",
		Background:  tcell.NewRGBColor(40, 40, 40),
		Foreground:  tcell.NewRGBColor(235, 219, 178),
		Tilde:       tcell.NewRGBColor(124, 111, 100),
		StatusBarBg: tcell.NewRGBColor(60, 56, 54),
		StatusBarFg: tcell.NewRGBColor(235, 219, 178),
		MessageFg:   tcell.NewRGBColor(235, 219, 178),
		PromptFg:    tcell.NewRGBColor(250, 189, 47),
	},
}

func Default() *Config {
	return &Config{
		Theme:                "monokai",
		ColorProfile:         "truecolor",
		QuitTimes:            3,
		StatusTimeoutSeconds: 5,
		WatchFile:            true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

// StatusTimeout is how long a message stays in the message bar.
func (c *Config) StatusTimeout() time.Duration {
	if c.StatusTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.StatusTimeoutSeconds) * time.Second
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rowedit", "settings.json")
}

func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads settings from path on top of the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.QuitTimes < 0 {
		cfg.QuitTimes = 0
	}
	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

func (c *Config) SaveFile(path string) error {
	if path == "" {
		return errors.New("no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
