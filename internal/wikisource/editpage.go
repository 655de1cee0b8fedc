package wikisource

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"episodemap/internal/services"
)

const editTextareaSelector = "textarea#wpTextbox1"

// EditPageFetcher reads the wikitext from the edit form served by index.php.
type EditPageFetcher struct {
	indexURL string
	page     string
	opts     httpOptions
}

// NewEditPageFetcher returns a fetcher for page on the wiki whose index.php
// lives at indexURL.
func NewEditPageFetcher(indexURL, page string, opts ...Option) (*EditPageFetcher, error) {
	indexURL = strings.TrimSpace(indexURL)
	if indexURL == "" {
		return nil, errors.New("wikisource: index url required")
	}
	page = strings.TrimSpace(page)
	if page == "" {
		return nil, errors.New("wikisource: page title required")
	}
	return &EditPageFetcher{indexURL: indexURL, page: page, opts: buildOptions(opts)}, nil
}

// URL returns the request URL.
func (f *EditPageFetcher) URL() string {
	params := url.Values{}
	params.Set("title", f.page)
	params.Set("action", "edit")
	if f.opts.section >= 0 {
		params.Set("section", strconv.Itoa(f.opts.section))
	}
	return f.indexURL + "?" + params.Encode()
}

// Fetch downloads the edit page and returns the textarea contents.
func (f *EditPageFetcher) Fetch(ctx context.Context) (string, error) {
	resp, err := get(ctx, f.opts, "edit", f.URL())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, component, "edit", "parse edit page", err)
	}
	return ExtractEditText(doc)
}

// ExtractEditText returns the source text of a MediaWiki edit form.
func ExtractEditText(doc *goquery.Document) (string, error) {
	textarea := doc.Find(editTextareaSelector).First()
	if textarea.Length() == 0 {
		return "", services.Wrap(services.ErrFetch, component, "edit", "edit form has no wikitext textarea", nil)
	}
	return textarea.Text(), nil
}
