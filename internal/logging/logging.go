// Package logging configures the session log. Interactive output goes
// to stdout; the log is a rotating file that records session events
// and startup failures.
package logging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nhle/task-tracker/internal/model"
)

// Logger is the shared logrus instance.
var Logger = logrus.New()

var once sync.Once

// entryFormatter writes one line per entry: date, time, source system,
// level, a unique event ID, and the message with its fields.
type entryFormatter struct {
	SystemName string
}

// Format generates the output line for a log entry.
func (f *entryFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05"))
	fmt.Fprintf(b, "Source: %s, ", f.SystemName)
	fmt.Fprintf(b, "Level: %s, ", strings.ToUpper(entry.Level.String()))
	fmt.Fprintf(b, "Event ID: %s, ", uuid.New().String())
	fmt.Fprintf(b, "Message: %s", entry.Message)

	for k, v := range entry.Data {
		fmt.Fprintf(b, ", %s: %v", k, v)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Init points the shared logger at a rotating file per the given
// configuration. Safe to call more than once; only the first call
// takes effect.
func Init(cfg model.AppConfig) {
	once.Do(func() {
		Logger.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogPath(),
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		})

		Logger.SetFormatter(&entryFormatter{SystemName: "task-tracker"})

		level, err := logrus.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		Logger.SetLevel(level)

		Logger.WithField("file", cfg.LogPath()).Info("logger initialised")
	})
}
