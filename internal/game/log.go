package game

import (
	"io"

	"github.com/sirupsen/logrus"
)

// orDiscard substitutes a silent logger for nil.
func orDiscard(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	d := logrus.New()
	d.Out = io.Discard
	return d
}
