package logger

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const levelOff = "off"

// parseLevel converts a level name to a logrus level. "off" is reported separately because logrus has
// no level that silences fatal messages.
func parseLevel(level string) (lvl logrus.Level, off bool, err error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == levelOff {
		return logrus.PanicLevel, true, nil
	}
	lvl, err = logrus.ParseLevel(name)
	if err != nil || lvl == logrus.PanicLevel {
		return logrus.InfoLevel, false, fmt.Errorf("unknown log level: %q", level)
	}
	return lvl, false, nil
}
