package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/go-playground/assert/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	Equal(t, parseLevel("DEBUG"), zapcore.DebugLevel)
	Equal(t, parseLevel(""), zapcore.InfoLevel)
	Equal(t, parseLevel("warn"), zapcore.WarnLevel)
	Equal(t, parseLevel("error"), zapcore.ErrorLevel)
	Equal(t, parseLevel("verbose"), zapcore.InfoLevel)
}

func TestSetLoggerObserved(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Debugf("layer %s created", "ground")
	Warn("listener panicked", zap.String("layer", "ground"))

	entries := logs.All()
	Equal(t, len(entries), 2)
	Equal(t, entries[0].Message, "layer ground created")
	Equal(t, entries[1].Level, zapcore.WarnLevel)
	Equal(t, entries[1].ContextMap()["layer"], "ground")
}

func TestInitWithRotatingFile(t *testing.T) {
	dir := t.TempDir()
	v := viper.New()
	v.Set("logger.level", "debug")
	v.Set("logger.dir", dir+string(os.PathSeparator))
	v.Set("logger.rotation", true)
	v.Set("logger.maxsize", 1)

	Init("scenedemo", v)
	defer SetLogger(nil)

	Infof("hello %d", 1)
	_ = Sync()

	_, err := os.Stat(filepath.Join(dir, "scenedemo.log"))
	Equal(t, err, nil)
}
