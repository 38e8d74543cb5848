package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type _LoggerImp struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

var l *_LoggerImp

// Debugf logger
func Debugf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Debugf(format, args...)
}

// Infof logger
func Infof(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Infof(format, args...)
}

// Warnf logger
func Warnf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Warnf(format, args...)
}

// Errorf logger
func Errorf(format string, args ...interface{}) {
	if l == nil {
		debug.PrintStack()
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Errorf(format, args...)
}

// Debug logger
func Debug(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Debug(msg, fields...)
}

// Info logger
func Info(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn logger
func Warn(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error logger
func Error(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Error(msg, fields...)
}

// Fatal logger, log message then call os.Exit(-1).
func Fatal(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		os.Exit(-1)
	}
	l.logger.Fatal(msg, fields...)
}

// Init logger initialize
func Init(serverType string, config *viper.Viper) {
	SetLogger(newLogger(serverType, config))
	Info("initialize logger", zap.String("server", serverType))
}

// SetLogger replaces the package logger, tests use it with an observer core
func SetLogger(zl *zap.Logger) {
	if zl == nil {
		l = nil
		return
	}
	l = &_LoggerImp{
		logger: zl,
		sugar:  zl.Sugar(),
	}
}

// Sync flushes buffered entries
func Sync() error {
	if l == nil {
		return nil
	}
	return l.logger.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		fmt.Println("Logger level invalid, must be one of: DEBUG, INFO, WARN, or ERROR")
		return zapcore.InfoLevel
	}
}

func newLogger(serverType string, config *viper.Viper) *zap.Logger {
	zapLevel := parseLevel(config.GetString("logger.level"))
	fileDir := config.GetString("logger.dir")
	rotation := config.GetBool("logger.rotation")
	stdout := config.GetBool("logger.stdout")

	consoleLogger := newJSONLogger(os.Stdout, zapLevel)
	if fileDir == "" {
		return consoleLogger
	}

	// {dir}{servertype}.log
	file := strings.Join([]string{fileDir, serverType, ".log"}, "")

	var fileLogger *zap.Logger
	if rotation {
		fileLogger = newRotatingJSONFileLogger(config, consoleLogger, file, zapLevel)
	} else {
		fileLogger = newJSONFileLogger(consoleLogger, file, zapLevel)
	}

	if fileLogger == nil {
		return consoleLogger
	}
	if stdout {
		return newMultiLogger(consoleLogger, fileLogger)
	}
	return fileLogger
}

func newJSONFileLogger(consoleLogger *zap.Logger, fileName string, level zapcore.Level) *zap.Logger {
	output, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		consoleLogger.Error("Could not create log file", zap.Error(err))
		return nil
	}

	return newJSONLogger(output, level)
}

func newRotatingJSONFileLogger(config *viper.Viper, consoleLogger *zap.Logger, fileName string, level zapcore.Level) *zap.Logger {
	logDir := filepath.Dir(fileName)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			consoleLogger.Error("Could not create log directory", zap.Error(err))
			return nil
		}
	}

	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    config.GetInt("logger.maxsize"),
		MaxAge:     config.GetInt("logger.maxage"),
		MaxBackups: config.GetInt("logger.maxbackups"),
		LocalTime:  config.GetBool("logger.localtime"),
		Compress:   config.GetBool("logger.compress"),
	})

	core := zapcore.NewCore(newJSONEncoder(), writeSyncer, level)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(core, options...)
}

func newMultiLogger(loggers ...*zap.Logger) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(loggers))
	for _, logger := range loggers {
		cores = append(cores, logger.Core())
	}
	teeCore := zapcore.NewTee(cores...)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(teeCore, options...)
}

func newJSONLogger(output *os.File, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(newJSONEncoder(), zapcore.Lock(output), level)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(core, options...)
}

func newJSONEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}
