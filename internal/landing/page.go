package landing

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"title": title}).
	ParseFS(templates, "templates/index.html"))

type Page struct {
	ProductName    string
	LaunchAt       time.Time
	TeaserInterval time.Duration
	SubscribeURL   string
}

type pageData struct {
	ProductName     string
	LaunchAtRFC3339 string
	LaunchAtUnixMs  int64
	TeaserMs        int64
	Teasers         []string
	FirstTeaser     string
	Roles           []models.Source
	SubscribeURL    string
	Initial         TimeLeft
}

// Render writes the landing page with the countdown as of now.
func (p Page) Render(w io.Writer, now time.Time) error {
	return pageTemplate.Execute(w, pageData{
		ProductName:     p.ProductName,
		LaunchAtRFC3339: p.LaunchAt.Format(time.RFC3339),
		LaunchAtUnixMs:  p.LaunchAt.UnixMilli(),
		TeaserMs:        p.TeaserInterval.Milliseconds(),
		Teasers:         Teasers,
		FirstTeaser:     TeaserAt(0),
		Roles:           models.Roles,
		SubscribeURL:    p.SubscribeURL,
		Initial:         Countdown(p.LaunchAt, now),
	})
}

func title(s models.Source) string {
	v := s.String()
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}
