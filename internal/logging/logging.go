package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes to both a rotating file and the console.
type Logger struct {
	*logrus.Logger
	file *lumberjack.Logger
}

// New creates a Logger writing to dir/console.log and stdout at the given level.
func New(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create logs folder failed: %w", err)
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level failed: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "console.log"),
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	l := logrus.New()
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	// Output to both file and console
	l.SetOutput(io.MultiWriter(file, os.Stdout))

	return &Logger{Logger: l, file: file}, nil
}

// NewNop returns a Logger that discards everything. Used by tests and offline commands.
func NewNop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

func (l *Logger) Close() {
	if l.file == nil {
		return
	}
	_ = l.file.Close()
}
