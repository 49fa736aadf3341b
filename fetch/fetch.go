// Package fetch retrieves the council's development register listing page
// and the PDF documents it links to.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Link is one PDF document discovered on the listing page.
type Link struct {
	URL  string
	Name string
}

// Client fetches listing pages and documents over HTTP.
type Client struct {
	httpClient *http.Client
}

// New returns a Client with a sane request timeout.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ListingPDFs fetches the page at listURL and returns every linked PDF,
// resolved against the page URL, in document order with duplicates removed.
func (c *Client) ListingPDFs(ctx context.Context, listURL string) ([]Link, error) {
	base, err := url.Parse(listURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch listing page: status %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}
	return pdfLinks(doc, base), nil
}

// pdfLinks walks the parsed HTML tree collecting anchor hrefs that point
// at PDF documents.
func pdfLinks(doc *html.Node, base *url.URL) []Link {
	var links []Link
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := strings.TrimSpace(attr.Val)
				if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
					continue
				}
				ref, err := url.Parse(href)
				if err != nil {
					continue
				}
				resolved := base.ResolveReference(ref).String()
				if seen[resolved] {
					continue
				}
				seen[resolved] = true
				links = append(links, Link{URL: resolved, Name: path.Base(ref.Path)})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links
}

// Download fetches the document at docURL into dir and returns the local
// path. The file name is taken from the URL path.
func (c *Client) Download(ctx context.Context, docURL, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", docURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %s", docURL, resp.Status)
	}

	u, err := url.Parse(docURL)
	if err != nil {
		return "", fmt.Errorf("parse download url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("download %s: no file name in url", docURL)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	dest := filepath.Join(dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}
	return dest, nil
}
