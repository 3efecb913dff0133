package carmuseum

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// renderSitemap lists the site's news pages, using the same links as the
// feed.
func (a *App) renderSitemap(c echo.Context, articles []NewsArticle) error {
	base := a.Config.SiteURL
	urls := []sitemapURL{
		{Loc: siteLink(base)},
		{Loc: siteLink(base, "news")},
	}
	for _, art := range articles {
		urls = append(urls, sitemapURL{Loc: siteLink(base, "news", art.ID)})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
