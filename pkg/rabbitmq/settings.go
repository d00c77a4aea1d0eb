package rabbitmq

import "time"

type Settings struct {
	URL                  string
	ConnectionRetryCount int
	ConnectionRetryDelay time.Duration
}

func DefaultSettings(url string) Settings {
	return Settings{
		URL:                  url,
		ConnectionRetryCount: 3,
		ConnectionRetryDelay: 2 * time.Second,
	}
}
