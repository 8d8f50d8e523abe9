package img2ascii

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger is used when no logger is supplied.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
