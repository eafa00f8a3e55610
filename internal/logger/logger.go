package logger

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Fields = logrus.Fields

type Logger struct {
	*logrus.Logger
	fileLogger *logrus.Logger
}

var defaultLogger *Logger

func init() {
	// 控制台日志配置
	consoleLogger := logrus.New()
	consoleLogger.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	consoleLogger.SetOutput(os.Stdout)
	consoleLogger.SetLevel(logrus.DebugLevel)

	defaultLogger = &Logger{Logger: consoleLogger}
}

// Setup 开启文件日志，使用 lumberjack 轮转
func Setup(dir, filename, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	defaultLogger.Logger.SetLevel(lvl)

	// 创建日志目录
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	fileLogger := logrus.New()
	fileLogger.SetFormatter(&logrus.JSONFormatter{
		PrettyPrint:     false,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	fileLogger.SetLevel(lvl)
	fileLogger.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, filename),
		MaxSize:    10,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
	})

	defaultLogger.fileLogger = fileLogger
	return nil
}

// Entry 带上下文字段的日志，同时写控制台和文件
type Entry struct {
	console *logrus.Entry
	file    *logrus.Entry
}

func WithFields(fields Fields) *Entry {
	e := &Entry{console: defaultLogger.Logger.WithFields(fields)}
	if defaultLogger.fileLogger != nil {
		e.file = defaultLogger.fileLogger.WithFields(fields)
	}
	return e
}

func (e *Entry) Infof(format string, args ...any) {
	e.console.Infof(format, args...)
	if e.file != nil {
		e.file.Infof(format, args...)
	}
}

func (e *Entry) Warnf(format string, args ...any) {
	e.console.Warnf(format, args...)
	if e.file != nil {
		e.file.Warnf(format, args...)
	}
}

func (e *Entry) Errorf(format string, args ...any) {
	e.console.Errorf(format, args...)
	if e.file != nil {
		e.file.Errorf(format, args...)
	}
}

func (e *Entry) Debugf(format string, args ...any) {
	e.console.Debugf(format, args...)
	if e.file != nil {
		e.file.Debugf(format, args...)
	}
}

func Infof(format string, args ...any) {
	defaultLogger.Logger.Infof(format, args...)
	if defaultLogger.fileLogger != nil {
		defaultLogger.fileLogger.Infof(format, args...)
	}
}

func Warnf(format string, args ...any) {
	defaultLogger.Logger.Warnf(format, args...)
	if defaultLogger.fileLogger != nil {
		defaultLogger.fileLogger.Warnf(format, args...)
	}
}

func Errorf(format string, args ...any) {
	defaultLogger.Logger.Errorf(format, args...)
	if defaultLogger.fileLogger != nil {
		defaultLogger.fileLogger.Errorf(format, args...)
	}
}

func Fatalf(format string, args ...any) {
	if defaultLogger.fileLogger != nil {
		defaultLogger.fileLogger.Errorf(format, args...)
	}
	defaultLogger.Logger.Fatalf(format, args...)
}

func Debugf(format string, args ...any) {
	defaultLogger.Logger.Debugf(format, args...)
	if defaultLogger.fileLogger != nil {
		defaultLogger.fileLogger.Debugf(format, args...)
	}
}
