package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/dmitrijs2005/gophupload/internal/filex"
)

var errAmbiguousID = errors.New("ambiguous upload id")

// Add queues every file matched by args. Paths that cannot be opened are
// reported and skipped; the rest are still queued.
func (a *App) Add(ctx context.Context, args []string) error {
	paths, err := filex.Collect(args)
	if err != nil {
		return err
	}

	files := make([]models.File, 0, len(paths))
	for _, p := range paths {
		f, err := models.OpenLocalFile(p)
		if err != nil {
			fmt.Fprintln(a.out, "Skipping:", err)
			continue
		}
		files = append(files, f)
	}

	ids := a.uploads.Add(files...)
	for i, id := range ids {
		fmt.Fprintf(a.out, "Queued %s %s (%s)\n", shortID(id), files[i].Name(), humanSize(files[i].Size()))
	}
	a.log.Debug(ctx, "files queued", "count", len(ids))
	return nil
}

func (a *App) List(ctx context.Context) error {
	records := a.uploads.List()
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No uploads")
		return nil
	}
	w := termWidth()
	for _, u := range records {
		fmt.Fprintln(a.out, formatUpload(u, w))
	}
	return nil
}

func (a *App) Cancel(ctx context.Context, id string) error {
	u, err := a.resolve(id)
	if err != nil {
		return err
	}
	if u.Status != models.StatusProgress {
		fmt.Fprintf(a.out, "%s is not in progress (%s)\n", shortID(u.ID), u.Status)
		return nil
	}
	a.uploads.Cancel(u.ID)
	fmt.Fprintf(a.out, "Canceling %s %s\n", shortID(u.ID), u.Name)
	return nil
}

// Retry restarts uploads that ended in error or were canceled.
func (a *App) Retry(ctx context.Context, id string) error {
	u, err := a.resolve(id)
	if err != nil {
		return err
	}
	if u.Status != models.StatusError && u.Status != models.StatusCanceled {
		fmt.Fprintf(a.out, "%s cannot be retried (%s)\n", shortID(u.ID), u.Status)
		return nil
	}
	a.uploads.Retry(u.ID)
	fmt.Fprintf(a.out, "Retrying %s %s\n", shortID(u.ID), u.Name)
	return nil
}

func (a *App) Progress(ctx context.Context) error {
	p := a.uploads.Progress()
	if !p.HasPendingWork {
		fmt.Fprintln(a.out, "No uploads in progress")
		return nil
	}
	fmt.Fprintf(a.out, "%s %3d%%\n", bar(p.Percent, barWidth(termWidth())), p.Percent)
	return nil
}

func (a *App) Link(ctx context.Context, id string) error {
	u, err := a.resolve(id)
	if err != nil {
		return err
	}
	if u.Status != models.StatusSuccess {
		fmt.Fprintf(a.out, "%s has not finished (%s)\n", shortID(u.ID), u.Status)
		return nil
	}
	url, err := a.linker.Link(ctx, u.RemoteRef)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

// Wait blocks until no upload is in progress, then prints the list.
func (a *App) Wait(ctx context.Context) error {
	if err := a.uploads.Wait(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

// resolve finds the upload whose id starts with prefix.
func (a *App) resolve(prefix string) (models.Upload, error) {
	if prefix == "" {
		return models.Upload{}, fmt.Errorf("%w: empty id", common.ErrorNotFound)
	}
	if u, ok := a.uploads.Get(prefix); ok {
		return u, nil
	}

	var found []models.Upload
	for _, u := range a.uploads.List() {
		if strings.HasPrefix(u.ID, prefix) {
			found = append(found, u)
		}
	}
	switch len(found) {
	case 0:
		return models.Upload{}, fmt.Errorf("%w: %s", common.ErrorNotFound, prefix)
	case 1:
		return found[0], nil
	default:
		return models.Upload{}, fmt.Errorf("%w: %s matches %d uploads", errAmbiguousID, prefix, len(found))
	}
}
