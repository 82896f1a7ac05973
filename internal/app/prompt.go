package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

type promptKind int

const (
	promptSearch promptKind = iota
	promptTags
	promptTimeline
)

func (k promptKind) label() string {
	switch k {
	case promptTags:
		return "tags"
	case promptTimeline:
		return "timeline (YYYY-MM-DD..YYYY-MM-DD)"
	default:
		return "search"
	}
}

type prompt struct {
	kind promptKind
	text []rune
}

func (app *Application) openPrompt(kind promptKind) {
	if (kind == promptTags || kind == promptTimeline) && app.catalog == nil {
		app.setError(apperr.New(apperr.KindCatalog, "", errNoCatalog))
		return
	}
	app.prompt = &prompt{kind: kind}
}

func (app *Application) handlePromptKey(ev *tcell.EventKey) {
	p := app.prompt
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.prompt = nil
	case tcell.KeyEnter:
		app.prompt = nil
		app.submitPrompt(p.kind, strings.TrimSpace(string(p.text)))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.text) > 0 {
			p.text = p.text[:len(p.text)-1]
		}
	case tcell.KeyCtrlU:
		p.text = p.text[:0]
	case tcell.KeyRune:
		p.text = append(p.text, ev.Rune())
	}
}

func (app *Application) submitPrompt(kind promptKind, query string) {
	if query == "" {
		return
	}
	var err error
	switch kind {
	case promptSearch:
		err = app.runSearch(query)
	case promptTags:
		err = app.runTagSearch(query)
	case promptTimeline:
		err = app.runTimeline(query)
	}
	app.setError(err)
}

func (app *Application) runSearch(query string) error {
	app.startSearch(query, app.searchRoot(), false)
	return nil
}

func (app *Application) runTagSearch(query string) error {
	names := strings.FieldsFunc(query, func(r rune) bool { return r == ',' || r == ' ' })
	ids, err := app.catalog.TagIDs(names)
	if err != nil {
		return err
	}
	files, err := app.catalog.FilesWithTags(ids)
	if err != nil {
		return err
	}
	app.navigate(navigation.NewTagSearchContext(ids, strings.Join(names, ","), files), "")
	return nil
}

func (app *Application) runTimeline(query string) error {
	start, end, err := parseTimeline(query)
	if err != nil {
		return err
	}
	files, err := app.catalog.Timeline(start, end)
	if err != nil {
		return err
	}
	app.navigate(navigation.NewTimelineContext(start.Unix(), end.Unix(), files), "")
	return nil
}

const dateLayout = "2006-01-02"

// parseTimeline accepts "YYYY-MM-DD..YYYY-MM-DD" or a single day. Both ends
// are whole UTC days, inclusive.
func parseTimeline(query string) (start, end time.Time, err error) {
	from, to, ranged := strings.Cut(strings.TrimSpace(query), "..")
	if !ranged {
		to = from
	}
	start, err = time.ParseInLocation(dateLayout, strings.TrimSpace(from), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.New(apperr.KindUnsupportedFormat, query, fmt.Errorf("bad start date: %w", err))
	}
	last, err := time.ParseInLocation(dateLayout, strings.TrimSpace(to), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.New(apperr.KindUnsupportedFormat, query, fmt.Errorf("bad end date: %w", err))
	}
	if last.Before(start) {
		start, last = last, start
	}
	end = last.Add(24*time.Hour - time.Second)
	return start, end, nil
}
