// Package fetch implements the Fetcher interface.
// It renders the course-catalog page in a headless browser (the page is
// a client-side app, the download link only exists after render), finds
// the first study-plan PDF link, and downloads it into the store.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"planpipe/core"
	"planpipe/core/store"
)

const (
	navigateTimeout  = 60 * time.Second
	downloadTimeout  = 30 * time.Second
	defaultUserAgent = "planpipe/1.0"
)

// Downloader fetches the study-plan PDF via headless Chrome plus a
// plain HTTP download of the discovered link.
type Downloader struct {
	client *http.Client
	store  *store.Store
	log    *zap.SugaredLogger
}

// New creates a Downloader writing into the given store.
func New(st *store.Store) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: downloadTimeout},
		store:  st,
		log:    zap.S(),
	}
}

// Fetch renders pageURL, locates the first PDF link, downloads the file
// into downloads/ and records it as the latest source document.
func (d *Downloader) Fetch(ctx context.Context, pageURL string) (*core.FetchResult, error) {
	html, err := d.renderPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	d.log.Debugw("page rendered", "url", pageURL, "bytes", len(html))

	link, err := FindPDFLink(html, pageURL)
	if err != nil {
		return nil, err
	}
	d.log.Infow("study-plan link found", "link", link)

	pdfPath, err := d.download(ctx, link)
	if err != nil {
		return nil, err
	}

	if err := d.store.WriteLatest(pdfPath); err != nil {
		return nil, fmt.Errorf("recording latest pointer: %w", err)
	}

	return &core.FetchResult{
		PageURL:   pageURL,
		PageHTML:  html,
		PDFURL:    link,
		PDFPath:   pdfPath,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// renderPage loads the page in headless Chrome and returns the
// post-render DOM.
func (d *Downloader) renderPage(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, navigateTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", &core.NavigationError{URL: pageURL, Err: err}
	}
	return html, nil
}

// FindPDFLink returns the first link on the page that looks like a
// study-plan PDF, resolved against the page URL.
func FindPDFLink(html, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &core.NavigationError{URL: pageURL, Err: fmt.Errorf("parsing HTML: %w", err)}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", &core.NavigationError{URL: pageURL, Err: fmt.Errorf("parsing page URL: %w", err)}
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		if !looksLikePlanLink(href, s.Text()) {
			return true
		}
		resolved := resolveURL(href, base)
		if resolved == "" {
			return true
		}
		found = resolved
		return false
	})

	if found == "" {
		return "", &core.LinkNotFoundError{URL: pageURL}
	}
	return found, nil
}

// looksLikePlanLink matches a .pdf path, the file-storage API the
// catalog serves plans from, or a link labeled as a study plan.
func looksLikePlanLink(href, text string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	p := strings.ToLower(parsed.Path)
	if strings.HasSuffix(p, ".pdf") {
		return true
	}
	if strings.Contains(p, "/file_storage/file/") {
		return true
	}
	return strings.Contains(strings.ToLower(text), "учебный план")
}

// resolveURL resolves a potentially relative href against the page URL.
// Script and fragment pseudo-links are skipped.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}

// download GETs the PDF link and writes it into the downloads directory.
func (d *Downloader) download(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/pdf,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, link)
	}

	name := downloadName(link, time.Now().UTC())
	pdfPath, err := d.store.WriteDownload(name, resp.Body)
	if err != nil {
		return "", err
	}
	d.log.Infow("pdf downloaded", "path", pdfPath)
	return pdfPath, nil
}

// downloadName derives a deterministic filename from the link, falling
// back to a timestamped name when the URL has no usable basename.
func downloadName(link string, now time.Time) string {
	parsed, err := url.Parse(link)
	if err == nil {
		base := path.Base(parsed.Path)
		if strings.HasSuffix(strings.ToLower(base), ".pdf") && base != ".pdf" {
			return base
		}
	}
	return fmt.Sprintf("study_plan_%d.pdf", now.Unix())
}
