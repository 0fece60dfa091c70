// logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/pmmlkit/common"
)

// Log is the global logger instance of XMLog. It starts as a console logger
// at info level and is reconfigured by InitGlobalLogger.
var Log *XMLog

// XMLog wraps logrus.Logger for application-specific logging.
type XMLog struct {
	*logrus.Logger
}

var defaultFieldsOrder = []string{
	common.ConversionName, common.StepName, common.BundleName, common.ComponentName,
}

func init() {
	Log = newConsoleLog(os.Stderr, logrus.InfoLevel, false)
}

func newConsoleLog(out io.Writer, level logrus.Level, verbose bool) *XMLog {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(out)
	display := ShowAboveWarn
	if verbose {
		display = ShowAll
	}
	logger.SetFormatter(&Formatter{
		TimestampFormat:        "15:04:05",
		DisplayLevelName:       display,
		DisableCaller:          true,
		FieldsDisplayWithOrder: defaultFieldsOrder,
		MaxFieldValueLength:    common.MaxLoggedValueLength,
	})
	return &XMLog{Logger: logger}
}

// InitGlobalLogger replaces Log. With an outputPath, entries go to a daily
// rotated app.log under that directory; otherwise they go to stderr.
func InitGlobalLogger(outputPath string, verbose bool, defaultLevel logrus.Level) error {
	level := defaultLevel
	if verbose {
		level = logrus.DebugLevel
	}
	if outputPath == "" {
		Log = newConsoleLog(os.Stderr, level, verbose)
		return nil
	}

	if err := os.MkdirAll(outputPath, common.FileMode0755); err != nil {
		return fmt.Errorf("failed to create log output directory %s: %w", outputPath, err)
	}
	logFilePath := filepath.Join(outputPath, "app.log")
	writer, err := rotatelogs.New(
		logFilePath+".%Y%m%d", // Daily rotation
		rotatelogs.WithLinkName(logFilePath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize rotatelogs for %s: %w", logFilePath, err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetReportCaller(true)
	fileFormatter := &Formatter{
		TimestampFormat:        "2006-01-02 15:04:05.000 MST",
		NoColors:               true,
		DisplayLevelName:       ShowAll,
		FieldsDisplayWithOrder: defaultFieldsOrder,
		CustomCallerFormatter: func(frame *runtime.Frame) string {
			return fmt.Sprintf(" [%s:%d]", filepath.Base(frame.File), frame.Line)
		},
	}
	logger.SetFormatter(fileFormatter)

	logWriters := lfshook.WriterMap{}
	for _, l := range logrus.AllLevels {
		if logger.IsLevelEnabled(l) {
			logWriters[l] = writer
		}
	}
	logger.Hooks.Add(lfshook.NewHook(logWriters, fileFormatter))
	// the hook owns the file; default output would duplicate every entry
	logger.SetOutput(io.Discard)

	Log = &XMLog{Logger: logger}
	return nil
}

// ParseLevel is logrus.ParseLevel with info as the fallback for "".
func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(level)
}

// Conversion scopes entries to one conversion run.
func (xl *XMLog) Conversion(id string) *logrus.Entry {
	return xl.WithField(common.ConversionName, id)
}

// Bundle scopes entries to one classpath bundle.
func (xl *XMLog) Bundle(path string) *logrus.Entry {
	return xl.WithField(common.BundleName, path)
}

// Component scopes entries to one pipeline component.
func (xl *XMLog) Component(className string) *logrus.Entry {
	return xl.WithField(common.ComponentName, className)
}
