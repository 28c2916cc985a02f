package http

import (
	"embed"
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"degrees": func(v float64) string {
			return strconv.Itoa(int(math.Round(v))) + "°"
		},
		"percent": func(v float64) string {
			return strconv.Itoa(int(math.Round(v))) + "%"
		},
	}).ParseFS(templateFS, "templates/*.tmpl"))
}

type pageData struct {
	Location   outfit.Location
	Theme      string
	Error      string
	Available  bool
	Weather    *outfit.Observation
	Condition  condition
	Advice     *outfit.Recommendation
	Items      []pageItem
	ToggleURL  string
	ToggleName string
}

type pageItem struct {
	Slot     string
	Label    string
	ImageURL string
}

func newPageData(resp outfit.Response, theme string) pageData {
	theme = normalizeTheme(theme)
	data := pageData{
		Location:  resp.Location,
		Theme:     theme,
		Available: resp.Available(),
		Weather:   resp.Weather,
		Advice:    resp.Advice,
	}
	data.ToggleName, data.ToggleURL = themeToggle(resp.Location, theme)
	if !data.Available {
		return data
	}

	data.Condition = conditionFor(resp.Weather.WeatherCode)
	for _, slot := range outfit.DisplaySlots {
		label := resp.Advice.Label(slot)
		if label == "" {
			continue
		}
		data.Items = append(data.Items, pageItem{
			Slot:     string(slot),
			Label:    label,
			ImageURL: imageURL(resp.Advice.Image(slot)),
		})
	}
	return data
}

// newErrorPageData renders the page around a rejected request.
func newErrorPageData(message, theme string) pageData {
	theme = normalizeTheme(theme)
	data := pageData{
		Location: outfit.Location{Label: "Location not found", Default: true},
		Theme:    theme,
		Error:    message,
	}
	data.ToggleName, data.ToggleURL = themeToggle(data.Location, theme)
	return data
}

func normalizeTheme(theme string) string {
	if strings.EqualFold(strings.TrimSpace(theme), "dark") {
		return "dark"
	}
	return "light"
}

func themeToggle(loc outfit.Location, theme string) (string, string) {
	next := "dark"
	if theme == "dark" {
		next = "light"
	}
	q := url.Values{}
	if !loc.Default {
		q.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	}
	q.Set("theme", next)
	return next, "/?" + q.Encode()
}

// imageURL maps a wardrobe image reference to something the page can load.
// Bare file names are served from the static wardrobe directory.
func imageURL(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "/"):
		return ref
	default:
		return "/static/wardrobe/" + ref
	}
}

type condition struct {
	Description string
	Icon        string
}

// conditionFor maps a WMO weather interpretation code to a short description.
func conditionFor(code int) condition {
	switch {
	case code == 0:
		return condition{"Clear sky", "☀️"}
	case code == 1:
		return condition{"Mainly clear", "🌤️"}
	case code == 2:
		return condition{"Partly cloudy", "⛅"}
	case code == 3:
		return condition{"Overcast", "☁️"}
	case code == 45 || code == 48:
		return condition{"Fog", "🌫️"}
	case code >= 51 && code <= 57:
		return condition{"Drizzle", "🌦️"}
	case code >= 61 && code <= 67:
		return condition{"Rain", "🌧️"}
	case code >= 71 && code <= 77:
		return condition{"Snow", "🌨️"}
	case code >= 80 && code <= 82:
		return condition{"Rain showers", "🌦️"}
	case code == 85 || code == 86:
		return condition{"Snow showers", "🌨️"}
	case code >= 95 && code <= 99:
		return condition{"Thunderstorm", "⛈️"}
	default:
		return condition{"Unknown", "🌡️"}
	}
}
