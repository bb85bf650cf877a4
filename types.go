package menuplanner

import (
	"context"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
	PostReport(ctx context.Context, channel, title, report string) error
}
