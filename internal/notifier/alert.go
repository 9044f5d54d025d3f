package notifier

import (
	log "github.com/sirupsen/logrus"
)

// Alerter raises a message the user has to acknowledge.
type Alerter interface {
	Alert(text string)
}

// LogAlerter raises alerts into the log. Used in headless mode.
type LogAlerter struct{}

func (LogAlerter) Alert(text string) {
	log.Error(text)
}
