package app

import (
	"fmt"
	"time"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/archive"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

var errNoCatalog = fmt.Errorf("catalog not available")

// reload lists a source afresh. It backs live history and folder refreshes.
func (app *Application) reload(src navigation.Source) ([]navigation.FileEntry, error) {
	switch s := src.(type) {
	case navigation.PhysicalFolder:
		return fs.List(s.Path, app.listOpts)
	case navigation.Archive:
		return archive.List(s.ArchivePath, s.InnerPath)
	case navigation.TagSearch:
		if app.catalog == nil {
			return nil, apperr.New(apperr.KindCatalog, "", errNoCatalog)
		}
		return app.catalog.FilesWithTags(s.TagIDs)
	case navigation.Timeline:
		if app.catalog == nil {
			return nil, apperr.New(apperr.KindCatalog, "", errNoCatalog)
		}
		return app.catalog.Timeline(time.Unix(s.Start, 0), time.Unix(s.End, 0))
	case navigation.Search:
		// The walk may be slow; the snapshot stays until the rerun lands.
		root := s.Root
		if root == "" {
			root = app.startDir
		}
		app.startSearch(s.Query, root, true)
		return nil, errSearchPending
	default:
		return nil, apperr.New(apperr.KindUnsupportedFormat, src.Location(), fmt.Errorf("unknown source %T", src))
	}
}

// searchRoot is the folder a new search runs under.
func (app *Application) searchRoot() string {
	switch s := app.state.Context().Source().(type) {
	case navigation.PhysicalFolder:
		return s.Path
	case navigation.Search:
		if s.Root != "" {
			return s.Root
		}
	}
	return app.startDir
}
