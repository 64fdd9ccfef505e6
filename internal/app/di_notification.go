package app

import (
	"context"
	"fmt"

	"github.com/allisson/accounts/internal/notification"
)

// Notifier drivers.
const (
	NotifierDriverLog    = "log"
	NotifierDriverPubSub = "pubsub"
	NotifierDriverSMTP   = "smtp"
)

// Notifier returns the notice adapter selected by NotifierDriver.
func (c *Container) Notifier() (notification.Notifier, error) {
	var err error
	c.notifierInit.Do(func() {
		c.notifier, err = c.initNotifier()
		if err != nil {
			c.initErrors["notifier"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notifier"]; exists {
		return nil, storedErr
	}
	return c.notifier, nil
}

func (c *Container) initNotifier() (notification.Notifier, error) {
	switch c.config.NotifierDriver {
	case "", NotifierDriverLog:
		return notification.NewLogNotifier(c.Logger()), nil

	case NotifierDriverPubSub:
		notifier, err := notification.NewPubSubNotifier(context.Background(), c.config.NotifierTopicURL)
		if err != nil {
			return nil, err
		}
		c.notifierCloser = notifier.Close
		return notifier, nil

	case NotifierDriverSMTP:
		renderer, err := notification.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load notice templates: %w", err)
		}
		return notification.NewSMTPNotifier(notification.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUsername,
			Password: c.config.SMTPPassword,
			From:     c.config.NotifierFrom,
		}, renderer), nil

	default:
		return nil, fmt.Errorf("unsupported notifier driver: %s", c.config.NotifierDriver)
	}
}
