package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/fitstats/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	ServiceName      string
	Version          string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the standard logrus logger. Every entry carries the
// service, environment and version fields. The returned closer flushes sentry
// and closes the log file, if any.
func Setup(params LoggerSetupParams) io.Closer {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.AddHook(newDefaultFieldsHook(logrus.Fields{
		"service": params.ServiceName,
		"env":     params.Environment,
		"version": params.Version,
	}))

	closer := &setupCloser{}
	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			Release:          params.Version,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		} else {
			logrus.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			closer.flushSentry = true
			logrus.Infoln("sentry set up")
		}
	}

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return closer
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	fileLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // UTC
		Compress:  true,
	}
	closer.file = fileLogger

	if params.LogToStdout {
		logrus.SetOutput(pkg.NewCombinedWriter(os.Stdout, fileLogger))
		logrus.Println("writing logs to file and STDOUT")
	} else {
		logrus.SetOutput(fileLogger)
	}
	return closer
}

// GetLevel falls back to info for an unknown level.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

type setupCloser struct {
	file        io.Closer
	flushSentry bool
}

func (c *setupCloser) Close() error {
	if c.flushSentry {
		sentry.Flush(sentryFlushTimeout)
	}
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}

// defaultFieldsHook adds fields to entries that don't set them already.
// Empty values are skipped.
type defaultFieldsHook struct {
	fields logrus.Fields
}

func newDefaultFieldsHook(fields logrus.Fields) *defaultFieldsHook {
	nonEmpty := logrus.Fields{}
	for k, v := range fields {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		nonEmpty[k] = v
	}
	return &defaultFieldsHook{fields: nonEmpty}
}

func (h *defaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *defaultFieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
