// Package wikisource retrieves the raw wikitext of the episode list.
//
// APIFetcher uses the MediaWiki action=parse endpoint, EditPageFetcher scrapes
// the edit form of index.php for wikis that disable the API, and FileFetcher
// reads a saved copy. Every failure is reported as one error tagged with
// services.ErrFetch.
package wikisource
