package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

type Config struct {
	Level      LogLevel `json:"level"`
	Format     string   `json:"format"` // json, text
	Output     string   `json:"output"` // stdout, stderr, file path
	TimeFormat string   `json:"time_format"`
	Colors     bool     `json:"colors"`
}

// Logger wraps logrus with a bound field set. With* methods return a new
// Logger so field chains never mutate the parent.
type Logger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

func NewLogger(config *Config) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: config.TimeFormat})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: config.TimeFormat,
			ForceColors:     config.Colors,
			DisableColors:   !config.Colors,
		})
	}

	switch config.Output {
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(file)
	}

	return &Logger{
		logger: logger,
		fields: make(logrus.Fields),
	}, nil
}

func (l *Logger) with(extra logrus.Fields) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(extra))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return &Logger{logger: l.logger, fields: merged}
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.with(logrus.Fields{key: value})
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.with(logrus.Fields(fields))
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err.Error())
}

func (l *Logger) WithUsername(username string) *Logger {
	return l.WithField("username", username)
}

func (l *Logger) WithPaymentID(paymentID string) *Logger {
	return l.WithField("payment_id", paymentID)
}

func (l *Logger) Debug(msg string) {
	l.logger.WithFields(l.fields).Debug(msg)
}

func (l *Logger) Info(msg string) {
	l.logger.WithFields(l.fields).Info(msg)
}

func (l *Logger) Warn(msg string) {
	l.logger.WithFields(l.fields).Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.logger.WithFields(l.fields).Error(msg)
}

func (l *Logger) Fatal(msg string) {
	l.logger.WithFields(l.fields).Fatal(msg)
}

// LogUserAction records a user-initiated event such as a login or a cart
// change.
func (l *Logger) LogUserAction(username string, action string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"username": username,
		"action":   action,
		"type":     "user_action",
	}
	for k, v := range details {
		fields[k] = v
	}
	l.WithFields(fields).Info("user action")
}

// LogPaymentEvent records a payment lifecycle transition.
func (l *Logger) LogPaymentEvent(paymentID string, event string, amount float64, currency string) {
	l.WithFields(map[string]interface{}{
		"payment_id": paymentID,
		"event":      event,
		"amount":     amount,
		"currency":   currency,
		"type":       "payment_event",
	}).Info("payment event")
}

// LogVoucherEvent records a voucher lifecycle transition.
func (l *Logger) LogVoucherEvent(code string, event string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"code":  code,
		"event": event,
		"type":  "voucher_event",
	}
	for k, v := range details {
		fields[k] = v
	}
	l.WithFields(fields).Info("voucher event")
}
