package maersk

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL     = "https://api.maerskline.com/track/"
	defaultMaxInFlight = 10
	defaultTimeout     = 10 * time.Second
)

// Response is the raw outcome of fetching one identifier. Transport-level
// failures fill Err and leave StatusCode zero; HTTP-level errors come back
// through StatusCode so the parser can classify them.
type Response struct {
	ID         string
	StatusCode int
	Body       []byte
	Err        error
}

type Client struct {
	baseURL     string
	maxInFlight int
	httpc       *http.Client
}

func New(baseURL string, timeout time.Duration, maxInFlight int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &Client{
		baseURL:     baseURL,
		maxInFlight: maxInFlight,
		httpc: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the raw tracking response for one identifier. Failures are
// reported inside the Response, never as a returned error, so one bad
// identifier cannot abort a batch.
func (c *Client) Fetch(ctx context.Context, id string) Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+id, nil)
	if err != nil {
		return Response{ID: id, Err: errors.Wrap(err, "new request")}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Response{ID: id, Err: errors.Wrap(err, "do request")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{ID: id, Err: errors.Wrap(err, "read body")}
	}
	return Response{ID: id, StatusCode: resp.StatusCode, Body: body}
}

// FetchBatch fetches every identifier and returns the responses in input
// order regardless of completion order. A single identifier is fetched
// inline; more than one fan out over at most maxInFlight requests.
func (c *Client) FetchBatch(ctx context.Context, ids []string) []Response {
	out := make([]Response, len(ids))
	if len(ids) == 0 {
		return out
	}
	if len(ids) == 1 {
		out[0] = c.Fetch(ctx, ids[0])
		return out
	}

	sem := make(chan struct{}, c.maxInFlight)
	var wg sync.WaitGroup
	for i, id := range ids {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, id string) {
			defer func() {
				<-sem
				wg.Done()
			}()
			out[i] = c.Fetch(ctx, id)
		}(i, id)
	}
	wg.Wait()
	return out
}
