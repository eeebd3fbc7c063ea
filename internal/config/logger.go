package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// ApplyLogLevel reparses the configured level after Load; unknown values
// keep the default.
func ApplyLogLevel(level string) {
	if lv, err := logrus.ParseLevel(level); err == nil {
		logg.SetLevel(lv)
	}
}
