package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/go-playground/assert/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	Equal(t, c.GetDuration("scene.tick_interval"), 50*time.Millisecond)
	Equal(t, c.GetFloat64("scene.time_multiplier"), 1.0)
	Equal(t, c.GetString("changefeed.subject"), "scene.changes")
	Equal(t, c.GetBool("metrics.enabled"), false)

	s, err := c.Settings()
	require.NoError(t, err)
	Equal(t, s.Scene.TickInterval, 50*time.Millisecond)
	Equal(t, s.Logger.Level, "info")
}

func TestOverrideKeepsUserValues(t *testing.T) {
	v := viper.New()
	v.Set("scene.time_multiplier", 2.5)
	c := New(v)
	Equal(t, c.GetFloat64("scene.time_multiplier"), 2.5)
	Equal(t, c.GetInt("logger.maxage"), 7)
}

func TestSettingsValidation(t *testing.T) {
	c := New()
	c.Set("scene.time_multiplier", -1.0)
	_, err := c.Settings()
	require.Error(t, err)

	c = New()
	c.Set("logger.level", "chatty")
	_, err = c.Settings()
	require.Error(t, err)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	content := "scene:\n  tick_interval: 20ms\nchangefeed:\n  subject: world.diff\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := NewFromFile(path)
	require.NoError(t, err)
	Equal(t, c.GetDuration("scene.tick_interval"), 20*time.Millisecond)
	Equal(t, c.GetString("changefeed.subject"), "world.diff")
	Equal(t, c.GetString("metrics.addr"), ":9090")

	_, err = NewFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
