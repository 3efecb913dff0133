package carmuseum

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Category    string  `xml:"category"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// renderRSS writes articles as an RSS 2.0 feed. Articles only carry a
// relative publish time, so items have no pubDate.
func (a *App) renderRSS(c echo.Context, articles []NewsArticle) error {
	base := a.Config.SiteURL
	items := make([]rssItem, 0, len(articles))
	for _, art := range articles {
		items = append(items, rssItem{
			Title:       art.Title,
			Link:        siteLink(base, "news", art.ID),
			Description: art.Summary,
			Category:    art.Category,
			GUID:        rssGUID{Value: art.ID},
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.SiteName + " News",
			Link:        siteLink(base, "news"),
			Description: "The latest automotive reviews, industry news, electric vehicles and concepts.",
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
