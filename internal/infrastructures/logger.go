package infrastructures

import (
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

// ConfigureLogger applies LOG_LEVEL to the standard logrus logger.
func ConfigureLogger(cfg *AppConfig) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}

	logrus.SetLevel(level)
}
