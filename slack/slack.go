package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"menuplanner"
)

// maxBlockLen keeps each posted code block under Slack's per-block limit.
const maxBlockLen = 3000

var _ menuplanner.SlackClient = (*Client)(nil)

type Client struct {
	webhookURL string
	httpClient menuplanner.HTTPClient
}

func NewClient(webhookURL string, httpClient menuplanner.HTTPClient) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}

// PostReport posts a rendered menu report as preformatted text. Long reports
// are split on line boundaries into several messages; only the first carries
// the title.
func (c *Client) PostReport(ctx context.Context, channel, title, report string) error {
	for i, chunk := range chunkLines(report, maxBlockLen) {
		msg := "```\n" + chunk + "```"
		if i == 0 && title != "" {
			msg = "*" + title + "*\n" + msg
		}
		if err := c.PostMessage(ctx, channel, msg); err != nil {
			return fmt.Errorf("post report part %d: %w", i+1, err)
		}
	}
	return nil
}

// chunkLines splits s into pieces of at most limit bytes without breaking
// lines. A single line longer than limit becomes its own piece.
func chunkLines(s string, limit int) []string {
	if s == "" {
		return []string{""}
	}
	var (
		chunks []string
		cur    strings.Builder
	)
	for _, line := range strings.SplitAfter(s, "\n") {
		if line == "" {
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(line) > limit {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
