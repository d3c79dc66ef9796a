package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/davetashner/triage/internal/dashboard"
	"github.com/davetashner/triage/internal/i18n"
	"github.com/davetashner/triage/internal/severity"
	"github.com/davetashner/triage/internal/view"
)

func init() {
	RegisterRenderer(NewHTMLRenderer())
}

// HTMLRenderer writes a self-contained HTML dashboard. The static page
// filters and checks issues in the browser only; with Interactive set it
// drives the web server's JSON API instead.
type HTMLRenderer struct {
	Interactive bool
	nowFunc     func() time.Time
}

// Compile-time interface check.
var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer returns a new static HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Name returns the format name.
func (h *HTMLRenderer) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

func dashboardTemplate() *template.Template {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
		}).Parse(htmlTemplate))
	})
	return htmlTmpl
}

// Render writes the dashboard page to w.
func (h *HTMLRenderer) Render(s dashboard.Snapshot, w io.Writer) error {
	now := time.Now()
	if h.nowFunc != nil {
		now = h.nowFunc()
	}
	if err := dashboardTemplate().Execute(w, buildHTMLData(s, h.Interactive, now)); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// htmlData holds all template data for the HTML dashboard.
type htmlData struct {
	Lang        string
	Theme       string
	Interactive bool
	GeneratedAt string
	Source      string
	Summary     string
	Progress    string
	Percent     int
	ActiveFile  string
	Query       string
	OnlyOpen    bool
	SortKey     string
	SortDesc    bool
	Severities  []severityCard
	Columns     []htmlColumn
	Rows        []htmlRow
	Files       []htmlFile
	L           map[string]string
}

type severityCard struct {
	Level   string
	Label   string
	Count   int
	Total   int
	Checked bool
}

type htmlColumn struct {
	Key   string
	Label string
}

type htmlRow struct {
	ID        string
	Short     string
	Done      bool
	Level     string
	Label     string
	Type      string
	File      string
	ShortFile string
	Line      int
	Message   string
	Links     []htmlLink
}

type htmlLink struct {
	Name string
	URL  template.URL
}

type htmlFile struct {
	File      string
	ShortFile string
	Done      int
	Total     int
	Percent   int
	Active    bool
	Complete  bool
}

func buildHTMLData(s dashboard.Snapshot, interactive bool, now time.Time) htmlData {
	v := s.View
	l := s.Lang
	files := 0
	data := htmlData{
		Lang:        string(l),
		Theme:       string(s.Theme),
		Interactive: interactive,
		GeneratedAt: now.UTC().Format("2006-01-02 15:04 UTC"),
		Progress:    i18n.T(l, i18n.MsgProgress, v.Done, v.Total),
		Percent:     percent(v.Done, v.Total),
		ActiveFile:  v.Filter.ActiveFile,
		Query:       v.Filter.Query,
		OnlyOpen:    v.Filter.OnlyIncomplete,
		SortKey:     string(v.Sort.Key),
		SortDesc:    v.Sort.Desc,
		L:           labels(l),
	}
	if ds := s.Dataset; ds != nil {
		data.Source = ds.Source
		if ds.Files != nil {
			files = ds.Files.Len()
		}
	}
	data.Summary = i18n.T(l, i18n.MsgSummary, files, v.Total)

	for _, lv := range severity.All() {
		data.Severities = append(data.Severities, severityCard{
			Level:   string(lv),
			Label:   i18n.Severity(l, lv),
			Count:   v.Counts[lv],
			Total:   v.Totals[lv],
			Checked: v.Filter.Severities == nil || v.Filter.Severities.Has(lv),
		})
	}
	for _, k := range view.Keys {
		data.Columns = append(data.Columns, htmlColumn{Key: string(k), Label: columnLabel(l, k)})
	}
	data.Rows = make([]htmlRow, len(v.Rows))
	for i, r := range v.Rows {
		data.Rows[i] = htmlRow{
			ID:        string(r.ID),
			Short:     r.Short,
			Done:      r.Done,
			Level:     string(r.Severity),
			Label:     i18n.Severity(l, r.Severity),
			Type:      r.Type,
			File:      r.File,
			ShortFile: ShortPath(r.File),
			Line:      r.Line,
			Message:   r.Message,
			Links:     editorLinks(r.File, r.Line),
		}
	}
	for _, f := range v.Files {
		data.Files = append(data.Files, htmlFile{
			File:      f.File,
			ShortFile: ShortPath(f.File),
			Done:      f.Done,
			Total:     f.Total,
			Percent:   percent(f.Done, f.Total),
			Active:    f.File == v.Filter.ActiveFile,
			Complete:  f.Complete(),
		})
	}
	return data
}

// editorLinks marks the editor deep links as trusted; html/template would
// otherwise replace their custom schemes.
func editorLinks(file string, line int) []htmlLink {
	links := IDELinks(file, line)
	out := make([]htmlLink, len(links))
	for i, l := range links {
		out[i] = htmlLink{Name: l.Name, URL: template.URL(l.URL)} //nolint:gosec // built from escaped components
	}
	return out
}

func columnLabel(l i18n.Lang, k view.Key) string {
	switch k {
	case view.KeySeverity:
		return i18n.T(l, i18n.MsgColSeverity)
	case view.KeyType:
		return i18n.T(l, i18n.MsgColType)
	case view.KeyFile:
		return i18n.T(l, i18n.MsgColFile)
	case view.KeyLine:
		return i18n.T(l, i18n.MsgColLine)
	default:
		return i18n.T(l, i18n.MsgColMessage)
	}
}

// labels collects the UI strings the page needs, keyed by message key.
func labels(l i18n.Lang) map[string]string {
	keys := []string{
		i18n.MsgTitle, i18n.MsgSearch, i18n.MsgOnlyOpen, i18n.MsgExport,
		i18n.MsgResetButton, i18n.MsgResetConfirm, i18n.MsgImport, i18n.MsgDemo,
		i18n.MsgFiles, i18n.MsgClearFilter, i18n.MsgColDone, i18n.MsgNoIssues,
		i18n.MsgToggleTheme, i18n.MsgToggleLang,
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = i18n.T(l, k)
	}
	return out
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
