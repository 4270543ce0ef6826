// Package config loads stopwatch settings from YAML or JSON documents.
//
// Keys absent from the document keep their default values:
//
//	stopwatch:
//	  leak_detection: false
//	  cancel_on_error: true
//	repository:
//	  shards: 16
//	prometheus:
//	  namespace: stopwatch
//	otel:
//	  instrumentation_name: github.com/ygrebnov/stopwatch
//	log:
//	  level: info
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/stopwatch"
	oteladapter "github.com/ygrebnov/stopwatch/adapters/otel"
	promadapter "github.com/ygrebnov/stopwatch/adapters/prometheus"
	"github.com/ygrebnov/stopwatch/monitor"
)

const Namespace = "config"

var (
	ErrUnsupportedFormat = errors.New(Namespace + ": unsupported format")
	ErrLoad              = errors.New(Namespace + ": load failed")
	ErrParse             = errors.New(Namespace + ": parse failed")
	ErrInvalid           = errors.New(Namespace + ": invalid settings")
)

var log = logrus.WithField("prefix", "config")

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type StopWatchSettings struct {
	LeakDetection bool `koanf:"leak_detection"`
	CancelOnError bool `koanf:"cancel_on_error"`
}

type RepositorySettings struct {
	Shards uint `koanf:"shards"`
}

type PrometheusSettings struct {
	Namespace string `koanf:"namespace"`
}

type OTelSettings struct {
	InstrumentationName string `koanf:"instrumentation_name"`
}

type LogSettings struct {
	Level string `koanf:"level"`
}

// Settings is the full configuration document.
type Settings struct {
	StopWatch  StopWatchSettings  `koanf:"stopwatch"`
	Repository RepositorySettings `koanf:"repository"`
	Prometheus PrometheusSettings `koanf:"prometheus"`
	OTel       OTelSettings       `koanf:"otel"`
	Log        LogSettings        `koanf:"log"`
}

// Defaults returns the settings used for absent keys.
func Defaults() Settings {
	return Settings{
		StopWatch:  StopWatchSettings{CancelOnError: true},
		Repository: RepositorySettings{Shards: 16},
		Prometheus: PrometheusSettings{Namespace: promadapter.DefaultNamespace},
		OTel:       OTelSettings{InstrumentationName: oteladapter.DefaultInstrumentationName},
		Log:        LogSettings{Level: logrus.InfoLevel.String()},
	}
}

// Load parses data encoded in format. Empty data yields Defaults().
func Load(data []byte, format Format) (Settings, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	s := Defaults()
	if len(data) == 0 {
		return s, nil
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadFile reads path and detects the format from its extension (.yaml, .yml or .json).
func LoadFile(path string) (Settings, error) {
	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return Settings{}, fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return Load(data, format)
}

// Validate checks values that option constructors would reject later.
func (s Settings) Validate() error {
	if n := s.Repository.Shards; n == 0 || n&(n-1) != 0 {
		return errorc.With(ErrInvalid, errorc.String("repository.shards", fmt.Sprint(n)))
	}
	if _, err := logrus.ParseLevel(s.Log.Level); err != nil {
		return errorc.With(ErrInvalid, errorc.String("log.level", s.Log.Level))
	}
	return nil
}

// FactoryOptions converts the stopwatch section into Factory options.
func (s Settings) FactoryOptions() []stopwatch.Option {
	opts := []stopwatch.Option{stopwatch.WithCancelOnError(s.StopWatch.CancelOnError)}
	if s.StopWatch.LeakDetection {
		opts = append(opts, stopwatch.WithLeakDetection())
	}
	return opts
}

// RepositoryOptions converts the repository section into monitor.Repository options.
func (s Settings) RepositoryOptions() []monitor.RepositoryOption {
	return []monitor.RepositoryOption{monitor.WithShards(s.Repository.Shards)}
}

// PrometheusOptions converts the prometheus section into collector options.
func (s Settings) PrometheusOptions() []promadapter.Option {
	return []promadapter.Option{promadapter.WithNamespace(s.Prometheus.Namespace)}
}

// ApplyLogging sets the level of the standard logrus logger.
func (s Settings) ApplyLogging() error {
	lvl, err := logrus.ParseLevel(s.Log.Level)
	if err != nil {
		return errorc.With(ErrInvalid, errorc.String("log.level", s.Log.Level))
	}
	logrus.SetLevel(lvl)
	log.WithField("level", lvl.String()).Debug("Log level applied")
	return nil
}
