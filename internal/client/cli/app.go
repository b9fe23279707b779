package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophupload/internal/client/compress"
	"github.com/dmitrijs2005/gophupload/internal/client/config"
	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/client/transport"
	"github.com/dmitrijs2005/gophupload/internal/client/uploads"
	"github.com/dmitrijs2005/gophupload/internal/logging"
)

// Linker resolves a remote reference into a download URL.
type Linker interface {
	Link(ctx context.Context, ref string) (string, error)
}

type App struct {
	config  *config.Config
	log     logging.Logger
	uploads *uploads.Orchestrator
	linker  Linker
	out     io.Writer
	seen    *uploads.Latest
}

// NewApp builds the transport selected by cfg.Mode and an orchestrator on top
// of it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	settings := storageSettings(cfg)

	var t uploads.Transport
	switch cfg.Mode {
	case config.ModePresigned:
		pu, err := transport.NewPresignedUploader(ctx, settings, nil)
		if err != nil {
			return nil, err
		}
		t = pu
	default:
		su, err := transport.NewS3Uploader(ctx, settings)
		if err != nil {
			return nil, err
		}
		t = su
	}

	linker, err := transport.NewLinker(ctx, settings)
	if err != nil {
		return nil, err
	}

	a := &App{config: cfg, log: log, linker: linker, out: os.Stdout, seen: uploads.NewLatest()}
	a.uploads = uploads.New(compress.NewImageCompressor(), t,
		uploads.WithLogger(log),
		uploads.WithCompressOptions(models.CompressOptions{
			MaxWidth:  cfg.MaxWidth,
			MaxHeight: cfg.MaxHeight,
			Quality:   cfg.Quality,
		}),
		uploads.WithObserver(a.report),
	)
	return a, nil
}

func storageSettings(cfg *config.Config) transport.Settings {
	return transport.Settings{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PresignExpiry: cfg.PresignExpiry,
		MaxAttempts:   cfg.S3MaxAttempts,
	}
}

// report logs every upload reaching a terminal status. Snapshots that arrive
// after a newer one of the same record are skipped.
func (a *App) report(u models.Upload) {
	if !a.seen.Observe(u) || !u.Status.IsTerminal() {
		return
	}
	ctx := context.Background()
	switch u.Status {
	case models.StatusSuccess:
		a.log.Info(ctx, "upload finished", "id", u.ID, "name", u.Name, "ref", u.RemoteRef)
	case models.StatusCanceled:
		a.log.Info(ctx, "upload canceled", "id", u.ID, "name", u.Name)
	case models.StatusError:
		a.log.Warn(ctx, "upload failed", "id", u.ID, "name", u.Name, "error", u.Err)
	}
}

// Run queues files and serves the REPL on in until exit or EOF.
func (a *App) Run(ctx context.Context, files []string, in io.Reader) {
	defer a.uploads.Close()

	fmt.Fprintln(a.out, "gophupload CLI (type 'help' for commands)")
	if len(files) > 0 {
		if err := a.Add(ctx, files); err != nil {
			fmt.Fprintln(a.out, "Error:", err)
		}
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(in))
}

func (a *App) status() string {
	p := a.uploads.Progress()
	if !p.HasPendingWork {
		return ""
	}
	return fmt.Sprintf("(%d%%)", p.Percent)
}
