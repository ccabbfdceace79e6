package providers

import (
	"github.com/samber/do/v2"

	"github.com/arkivoapp/solr-connector/internal/config"
	"github.com/arkivoapp/solr-connector/internal/logger"
	"github.com/arkivoapp/solr-connector/internal/repo"
)

// RepoReaderHandle wraps the host repository reader. Reader is nil when no
// repository URL is configured; the connector then runs query-only.
type RepoReaderHandle struct {
	Reader repo.Reader
}

// ProvideRepoReader provides the host repository client.
func ProvideRepoReader(i do.Injector) (*RepoReaderHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Repo.BaseURL == "" {
		log.Warn("No repository URL configured - indexing endpoints will report not found")
		return &RepoReaderHandle{}, nil
	}

	reader := repo.NewHTTPReader(cfg.Repo.BaseURL, cfg.Repo.Key, cfg.Repo.Secret, cfg.Repo.Timeout, log.Logger)
	log.Info("Repository client ready", "base_url", cfg.Repo.BaseURL)

	return &RepoReaderHandle{Reader: reader}, nil
}
