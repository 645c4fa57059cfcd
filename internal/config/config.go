package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

type Settings struct {
	TimeStep           float32 `json:"time_step"`
	PulseBaseFrequency float32 `json:"pulse_base_frequency"`
	PulseMaxFrequency  float32 `json:"pulse_max_frequency"`
	FragmentShader     string  `json:"fragment_shader"`
	LogLevel           string  `json:"log_level"`
	Fullscreen         bool    `json:"fullscreen"`
	VSync              bool    `json:"vsync"`
	Width              int     `json:"width"`
	Height             int     `json:"height"`
}

func Default() *Settings {
	return &Settings{
		TimeStep:           0.016,
		PulseBaseFrequency: 0.783,
		PulseMaxFrequency:  1.3,
		LogLevel:           "info",
		VSync:              true,
		Width:              1280,
		Height:             720,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "aetherfield")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

func LoadSettings(log *zap.Logger) (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath, log)
}

// LoadSettingsFrom reads settings from path, creating the file with
// defaults if it does not exist. Malformed files and out-of-range values
// fall back to defaults with a warning rather than failing.
func LoadSettingsFrom(settingsPath string, log *zap.Logger) (*Settings, error) {
	if log == nil {
		log = zap.NewNop()
	}
	defaultSettings := Default()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("Creating default settings file", zap.String("path", settingsPath))
			if err := WriteSettings(settingsPath, defaultSettings); err != nil {
				log.Warn("Failed to create default settings file", zap.Error(err))
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Warn("Invalid settings file, using defaults", zap.Error(err))
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Warn("Unrecognised setting key in settings file", zap.String("key", key))
		}
	}

	// Missing keys keep their defaults
	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Warn("Invalid settings file, using defaults", zap.Error(err))
		return defaultSettings, nil
	}

	settings.validate(defaultSettings, log)
	return settings, nil
}

func (s *Settings) validate(defaults *Settings, log *zap.Logger) {
	if s.TimeStep <= 0 || s.TimeStep > 1 {
		log.Warn("Invalid time_step, must be in (0, 1]",
			zap.Float32("value", s.TimeStep), zap.Float32("default", defaults.TimeStep))
		s.TimeStep = defaults.TimeStep
	}

	if s.PulseBaseFrequency <= 0 || s.PulseMaxFrequency <= 0 || s.PulseMaxFrequency < s.PulseBaseFrequency {
		log.Warn("Invalid pulse frequencies, need 0 < base <= max",
			zap.Float32("base", s.PulseBaseFrequency), zap.Float32("max", s.PulseMaxFrequency))
		s.PulseBaseFrequency = defaults.PulseBaseFrequency
		s.PulseMaxFrequency = defaults.PulseMaxFrequency
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		log.Warn("Invalid log_level, using default",
			zap.String("value", s.LogLevel), zap.String("default", defaults.LogLevel))
		s.LogLevel = defaults.LogLevel
	}

	if s.Width < 1 || s.Height < 1 {
		log.Warn("Invalid window size, using default",
			zap.Int("width", s.Width), zap.Int("height", s.Height))
		s.Width = defaults.Width
		s.Height = defaults.Height
	}
}

func WriteSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
