// Package webhook POSTs match reports to an HTTP endpoint as JSON.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/crimson-sun/sectormatch/internal/httpclient"
	"github.com/crimson-sun/sectormatch/internal/model"
)

const defaultTimeout = 10 * time.Second

// Output delivers each report as one JSON POST. Retries on 429 and 5xx are
// handled by the shared HTTP client.
type Output struct {
	client *httpclient.Client
	url    string
}

// New creates a webhook output targeting the given URL. An empty token
// disables Bearer auth.
func New(url, token string) *Output {
	return &Output{
		client: httpclient.New(token, httpclient.WithTimeout(defaultTimeout)),
		url:    url,
	}
}

func (o *Output) Write(ctx context.Context, report model.Report) error {
	if err := o.client.PostJSON(ctx, o.url, report, nil); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
