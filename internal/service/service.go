package service

import (
	"github.com/RyoWakabayashi/pm-study/internal/config"
	"go.uber.org/zap"
)

type Service struct {
	*ProgressS
	*CatalogS
	*LoaderS
	*SessionS
}

func InitServices(source SourceI, storage StorageI, cfg config.Config, log *zap.Logger) *Service {
	progress := NewProgressService(storage, cfg.Storage.Key, log)
	catalog := NewCatalogService(cfg.ExamData.ExamIDs, cfg.ExamData.ImagePath)
	loader := NewLoaderService(source, catalog, LoaderOptions{
		JSONPath:     cfg.ExamData.JSONPath,
		MaxRetries:   cfg.ExamData.MaxRetries,
		RetryBase:    cfg.ExamData.RetryBase,
		ProbeTimeout: cfg.ExamData.ProbeTimeout,
	}, log)

	return &Service{
		ProgressS: progress,
		CatalogS:  catalog,
		LoaderS:   loader,
		SessionS:  NewSessionService(progress, loader, log),
	}
}
