/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: corpus.go
Description: Corpus sources for building frequency tables. Supports local files (plain or
xz-compressed) and HTTP(S) documents; HTML pages are reduced to their visible text before
counting.
*/

package frequency

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kleascm/cryptkit/pkg/source"
)

// CorpusSource supplies raw text for frequency counting
type CorpusSource interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// DefaultCorpus lists ten public-domain Project Gutenberg books
func DefaultCorpus() []string {
	return []string{
		"https://www.gutenberg.org/files/1342/1342-0.txt",      // Pride and Prejudice
		"https://www.gutenberg.org/files/11/11-0.txt",          // Alice's Adventures in Wonderland
		"https://www.gutenberg.org/files/2701/2701-0.txt",      // Moby Dick
		"https://www.gutenberg.org/files/30254/30254-0.txt",    // The Romance of Lust
		"https://www.gutenberg.org/cache/epub/1661/pg1661.txt", // The Adventures of Sherlock Holmes
		"https://www.gutenberg.org/files/74/74-0.txt",          // The Adventures of Tom Sawyer
		"https://www.gutenberg.org/cache/epub/345/pg345.txt",   // Dracula
		"https://www.gutenberg.org/files/98/98-0.txt",          // A Tale of Two Cities
		"https://www.gutenberg.org/files/57594/57594-0.txt",    // The Western Echo
		"https://www.gutenberg.org/cache/epub/6130/pg6130.txt", // The Iliad
	}
}

// NewSource picks an HTTP source for http(s) URLs and a file source otherwise
func NewSource(location string, timeout time.Duration) CorpusSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return &FileSource{Path: location}
}

// FileSource reads a corpus from disk
type FileSource struct {
	Path string
}

func (fs *FileSource) Name() string { return fs.Path }

// Open opens the file, decompressing .xz files
func (fs *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return source.Open(fs.Path)
}

// HTTPSource downloads a corpus document
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTP source with a request timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (hs *HTTPSource) Name() string { return hs.URL }

// Open fetches the document. HTML responses are converted to plain text.
func (hs *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hs.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := hs.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corpus: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("corpus %s returned status %d", hs.URL, resp.StatusCode)
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		return resp.Body, nil
	}

	defer resp.Body.Close()
	text, err := htmlText(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html corpus: %w", err)
	}
	return io.NopCloser(strings.NewReader(text)), nil
}

// htmlText extracts the visible text of an HTML document
func htmlText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
