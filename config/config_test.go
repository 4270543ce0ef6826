package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/stopwatch"
	"github.com/ygrebnov/stopwatch/monitor"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		want    func() Settings
		wantErr error
	}{
		{
			name:   "empty document yields defaults",
			format: FormatYAML,
			want:   Defaults,
		},
		{
			name:   "yaml overrides",
			format: FormatYAML,
			data: `
stopwatch:
  leak_detection: true
  cancel_on_error: false
repository:
  shards: 4
prometheus:
  namespace: app
log:
  level: debug
`,
			want: func() Settings {
				s := Defaults()
				s.StopWatch = StopWatchSettings{LeakDetection: true, CancelOnError: false}
				s.Repository.Shards = 4
				s.Prometheus.Namespace = "app"
				s.Log.Level = "debug"
				return s
			},
		},
		{
			name:   "json partial document",
			format: FormatJSON,
			data:   `{"otel": {"instrumentation_name": "billing"}}`,
			want: func() Settings {
				s := Defaults()
				s.OTel.InstrumentationName = "billing"
				return s
			},
		},
		{name: "unsupported format", format: "toml", data: "a = 1", wantErr: ErrUnsupportedFormat},
		{name: "malformed yaml", format: FormatYAML, data: "stopwatch: [", wantErr: ErrParse},
		{name: "malformed json", format: FormatJSON, data: "{", wantErr: ErrParse},
		{name: "shards not a power of two", format: FormatYAML, data: "repository: {shards: 3}", wantErr: ErrInvalid},
		{name: "unknown log level", format: FormatYAML, data: "log: {level: loud}", wantErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load([]byte(tt.data), tt.format)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want(), got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "stopwatch.yml")
	require.NoError(t, os.WriteFile(yml, []byte("repository:\n  shards: 32\n"), 0o600))
	s, err := LoadFile(yml)
	require.NoError(t, err)
	require.Equal(t, uint(32), s.Repository.Shards)

	_, err = LoadFile(filepath.Join(dir, "stopwatch.ini"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, ErrLoad)
}

func TestSettings_Options(t *testing.T) {
	s := Defaults()
	s.StopWatch.LeakDetection = true
	s.StopWatch.CancelOnError = false
	s.Repository.Shards = 8

	f, err := stopwatch.NewFactory(s.FactoryOptions()...)
	require.NoError(t, err)
	m := monitor.New(monitor.NewKey("options", "test"), nil)
	w, done := f.Track(m)
	err = os.ErrNotExist
	done(&err)
	require.False(t, w.IsCanceled(), "cancel_on_error=false must stop failed executions")

	repo, err := monitor.NewRepository(s.RepositoryOptions()...)
	require.NoError(t, err)
	require.NotNil(t, repo.Get(monitor.NewKey("a", "")))

	require.Len(t, s.PrometheusOptions(), 1)
}

func TestSettings_ApplyLogging(t *testing.T) {
	prev := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(prev) })

	s := Defaults()
	s.Log.Level = "warning"
	require.NoError(t, s.ApplyLogging())
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	s.Log.Level = "nope"
	require.ErrorIs(t, s.ApplyLogging(), ErrInvalid)
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
