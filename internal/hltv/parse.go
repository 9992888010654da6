package hltv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var (
	matchHrefRe = regexp.MustCompile(`/matches/(\d+)/`)
	demoHrefRe  = regexp.MustCompile(`\.dem(\.bz2)?$`)
	dateTextRe  = regexp.MustCompile(`(\d+)\w* of (\w+) (\d{4})`)
)

// parseMatchIDs extracts the match ids linked from a results page, in
// page order with duplicates removed.
func parseMatchIDs(doc *html.Node) []string {
	var ids []string
	seen := make(map[string]bool)
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		m := matchHrefRe.FindStringSubmatch(attr(n, "href"))
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		ids = append(ids, m[1])
	})
	return ids
}

// MatchPage is the subset of a match page the fetcher needs.
type MatchPage struct {
	Team1   string
	Team2   string
	MapName string
	Date    string // YYYY-MM-DD
	DemoURL string
}

// Filename derives the canonical demo filename for the match.
func (m MatchPage) Filename() string {
	return fmt.Sprintf("%s-%s-vs-%s-%s.dem", m.Date, m.Team1, m.Team2, m.MapName)
}

// parseMatchPage extracts team names, map, date and the demo link from a
// match page. Returns an error when any required element is missing,
// which usually means the match has no demo published yet.
func parseMatchPage(doc *html.Node, baseURL string) (*MatchPage, error) {
	var page MatchPage
	var teams []string

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.Data == "div" && hasClass(n, "teamName"):
			teams = append(teams, slugify(text(n)))
		case n.Data == "div" && hasClass(n, "mapname") && page.MapName == "":
			page.MapName = strings.ToLower(strings.TrimSpace(text(n)))
		case n.Data == "div" && hasClass(n, "date") && page.Date == "":
			page.Date = parseMatchDate(text(n))
		case n.Data == "a" && page.DemoURL == "":
			href := attr(n, "href")
			if demoHrefRe.MatchString(href) {
				if !strings.HasPrefix(href, "http") {
					href = baseURL + href
				}
				page.DemoURL = href
			}
		}
	})

	if len(teams) < 2 {
		return nil, fmt.Errorf("team names not found")
	}
	page.Team1, page.Team2 = teams[0], teams[1]
	if page.MapName == "" {
		return nil, fmt.Errorf("map name not found")
	}
	if page.DemoURL == "" {
		return nil, fmt.Errorf("no demo link on match page")
	}
	if page.Date == "" {
		page.Date = time.Now().Format("2006-01-02")
	}
	return &page, nil
}

// parseMatchDate turns "23rd of June 2025" into "2025-06-23". Unparsable
// dates fall back to today so a missing element never blocks a download.
func parseMatchDate(s string) string {
	m := dateTextRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	month, err := time.Parse("January", m[2])
	if err != nil {
		return ""
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s-%02d-%02d", m[3], int(month.Month()), day)
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return sb.String()
}
