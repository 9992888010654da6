package hltv

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Client scrapes HLTV result and match pages.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// NewClient builds a client from the given config.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With().Str("component", "hltv").Logger(),
	}
}

// Pause waits the configured delay before the next request. Every
// request to the site is preceded by one so the scrape stays polite.
func (c *Client) Pause(ctx context.Context) error {
	select {
	case <-time.After(c.cfg.RequestDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp, nil
}

func (c *Client) getHTML(ctx context.Context, url string) (*html.Node, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// MatchIDs lists the match ids on an event's results page.
func (c *Client) MatchIDs(ctx context.Context, eventID int) ([]string, error) {
	url := fmt.Sprintf("%s/results?event=%d", c.cfg.BaseURL, eventID)
	doc, err := c.getHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("results page: %w", err)
	}
	ids := parseMatchIDs(doc)
	c.log.Info().Int("event", eventID).Int("matches", len(ids)).Msg("results page scraped")
	return ids, nil
}

// MatchInfo fetches one match page and extracts the demo metadata.
func (c *Client) MatchInfo(ctx context.Context, matchID string) (*MatchPage, error) {
	url := fmt.Sprintf("%s/matches/%s/", c.cfg.BaseURL, matchID)
	doc, err := c.getHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("match page %s: %w", matchID, err)
	}
	page, err := parseMatchPage(doc, c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("match page %s: %w", matchID, err)
	}
	return page, nil
}

// DownloadDemo downloads a match's demo into dir, decompressing on the
// fly, and returns the local path. Existing files are kept as is so
// re-runs stay cheap.
func (c *Client) DownloadDemo(ctx context.Context, page *MatchPage, dir string) (string, error) {
	outPath := filepath.Join(dir, page.Filename())
	if _, err := os.Stat(outPath); err == nil {
		c.log.Debug().Str("file", page.Filename()).Msg("already downloaded")
		return outPath, nil
	}

	resp, err := c.get(ctx, page.DemoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var src io.Reader = resp.Body
	switch {
	case strings.HasSuffix(page.DemoURL, ".bz2"):
		src = bzip2.NewReader(resp.Body)
	case strings.HasSuffix(page.DemoURL, ".zst"):
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(page.DemoURL, ".gz") || resp.Header.Get("Content-Encoding") == "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("write: %w", err)
	}
	c.log.Info().Str("file", page.Filename()).Msg("demo downloaded")
	return outPath, nil
}
