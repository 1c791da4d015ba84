package utils

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	Logger     *logrus.Logger
	loggerOnce sync.Once
)

func InitLogger() {
	loggerOnce.Do(func() {
		Logger = logrus.New()
		Logger.SetOutput(os.Stdout)
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})

		if os.Getenv("LOG_LEVEL") == "debug" {
			Logger.SetLevel(logrus.DebugLevel)
		} else {
			Logger.SetLevel(logrus.InfoLevel)
		}
	})
}

// GetLogger returns the shared logger, initializing it on first use so tests
// don't have to call InitLogger themselves.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
