// Package sparqlstore talks to a SPARQL HTTP endpoint. Requests are POSTed
// to avoid length limits on large generated queries.
package sparqlstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint implements store.Knowledge against a SPARQL HTTP endpoint.
type Endpoint struct {
	url    string
	client *http.Client
}

// New creates an endpoint client. A nil client falls back to
// http.DefaultClient; timeouts belong to the injected client.
func New(endpointURL string, client *http.Client) *Endpoint {
	if client == nil {
		client = http.DefaultClient
	}
	return &Endpoint{url: endpointURL, client: client}
}

// Read executes the query and returns the response body as a string. The
// query is escaped unless isSafe is set.
func (e *Endpoint) Read(ctx context.Context, query string, isSafe bool) (string, error) {
	if !isSafe {
		query = EscapeInput(query)
	}

	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sparql endpoint returned %s", resp.Status)
	}
	return string(body), nil
}

// Close implements store.Knowledge.
func (e *Endpoint) Close() error { return nil }

// EscapeInput escapes characters that are dangerous inside a SPARQL query.
// The backslash must be escaped first.
func EscapeInput(text string) string {
	for _, char := range []string{`\`, `'`, `"`, `#`, `<`, `>`} {
		text = strings.ReplaceAll(text, char, `\`+char)
	}
	return text
}
