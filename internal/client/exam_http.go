package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ExamHTTP struct {
	baseURL string
	client  *http.Client
}

func NewExamHTTP(baseURL string) *ExamHTTP {
	return &ExamHTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

func (e *ExamHTTP) url(path string) string {
	return e.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (e *ExamHTTP) FetchJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

// ImageExists sends a HEAD request. Any failure counts as a missing image.
func (e *ExamHTTP) ImageExists(ctx context.Context, path string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, e.url(path), nil)
	if err != nil {
		return false
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
