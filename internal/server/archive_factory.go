package server

import (
	"log/slog"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/catalog"
	"nba-surprise-service/internal/config"
	"nba-surprise-service/internal/metrics"
)

// ArchivePipeline bundles the archival components shared by the server and
// the archiver command.
type ArchivePipeline struct {
	Store    *archive.FSStore
	Writer   *archive.Writer
	Archiver *archive.Archiver
	close    func()
}

// NewArchivePipeline wires the configured season source to the on-disk archive.
func NewArchivePipeline(cfg config.Config, cat *catalog.Catalog, logger *slog.Logger, recorder *metrics.Recorder) ArchivePipeline {
	return buildArchivePipeline(cfg, cat, newProviderFactory(logger, recorder, cat), logger, recorder)
}

func buildArchivePipeline(cfg config.Config, cat *catalog.Catalog, factory providerFactory, logger *slog.Logger, recorder *metrics.Recorder) ArchivePipeline {
	var (
		source  archive.SeasonSource
		closeFn = func() {}
	)
	switch cfg.Archive.Source {
	case config.ArchiveSourceSchedule:
		source = archive.NewScheduleSource(factory.schedule(cfg))
	default:
		provider, stop := factory.gameLog(cfg)
		source = archive.NewGameLogSource(provider)
		closeFn = stop
	}

	writer := archive.NewWriter(cfg.Archive.Dir)
	return ArchivePipeline{
		Store:    archive.NewFSStore(cfg.Archive.Dir),
		Writer:   writer,
		Archiver: archive.NewArchiver(cat, source, writer, cfg.Archive.Concurrency, logger, recorder),
		close:    closeFn,
	}
}

// Close releases the source's background resources.
func (p ArchivePipeline) Close() {
	if p.close != nil {
		p.close()
	}
}
