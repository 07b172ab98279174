package worker

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jzx17/easythread/pkg/types"
)

// LogrusSink forwards diagnostic lines to a logrus logger. The leading
// "[LEVEL] " tag written by tasks and pools selects the logrus level and is
// stripped from the message; untagged lines are logged at info.
func LogrusSink(logger logrus.FieldLogger) types.LogSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(line string) {
		level, msg := splitLevel(line)
		switch level {
		case types.LevelError:
			logger.Error(msg)
		case types.LevelWarning:
			logger.Warn(msg)
		default:
			logger.Info(msg)
		}
	}
}

func splitLevel(line string) (types.Level, string) {
	for _, level := range []types.Level{types.LevelError, types.LevelWarning, types.LevelInfo} {
		prefix := "[" + level.String() + "] "
		if strings.HasPrefix(line, prefix) {
			return level, strings.TrimPrefix(line, prefix)
		}
	}
	return types.LevelInfo, line
}
