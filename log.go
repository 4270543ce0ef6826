package stopwatch

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "stopwatch")
