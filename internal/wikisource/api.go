package wikisource

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"episodemap/internal/services"
)

// APIFetcher reads a page through the MediaWiki parse API.
type APIFetcher struct {
	apiURL string
	page   string
	opts   httpOptions
}

type parseResponse struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Parse *struct {
		Title    string            `json:"title"`
		Wikitext map[string]string `json:"wikitext"`
	} `json:"parse"`
}

// NewAPIFetcher returns a fetcher for page on the wiki whose api.php lives at
// apiURL.
func NewAPIFetcher(apiURL, page string, opts ...Option) (*APIFetcher, error) {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return nil, errors.New("wikisource: api url required")
	}
	page = strings.TrimSpace(page)
	if page == "" {
		return nil, errors.New("wikisource: page title required")
	}
	return &APIFetcher{apiURL: apiURL, page: page, opts: buildOptions(opts)}, nil
}

// URL returns the request URL.
func (f *APIFetcher) URL() string {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", f.page)
	params.Set("prop", "wikitext")
	params.Set("format", "json")
	params.Set("origin", "*")
	if f.opts.section >= 0 {
		params.Set("section", strconv.Itoa(f.opts.section))
	}
	return f.apiURL + "?" + params.Encode()
}

// Fetch downloads and unwraps the wikitext.
func (f *APIFetcher) Fetch(ctx context.Context) (string, error) {
	resp, err := get(ctx, f.opts, "api", f.URL())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		return "", services.Wrap(services.ErrFetch, component, "api", "invalid response type "+strconv.Quote(contentType), nil)
	}

	var payload parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", services.Wrap(services.ErrFetch, component, "api", "decode response", err)
	}
	if payload.Error != nil {
		return "", services.Wrap(services.ErrFetch, component, "api", "api error: "+payload.Error.Info, nil)
	}
	if payload.Parse == nil {
		return "", services.Wrap(services.ErrFetch, component, "api", "missing 'parse' in response", nil)
	}
	text, ok := payload.Parse.Wikitext["*"]
	if !ok {
		return "", services.Wrap(services.ErrFetch, component, "api", "missing wikitext content", nil)
	}
	return text, nil
}
