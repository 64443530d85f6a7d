package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/application/ports"
	"github.com/yuzvak/herbal-storefront/internal/domain/catalog"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

type CatalogSink interface {
	Replace(storefront string, products []catalog.Product) error
}

// CatalogRefresher periodically reloads storefront catalogs from the
// repository. A failed reload keeps the previous catalog in service.
type CatalogRefresher struct {
	repo        ports.CatalogRepository
	sink        CatalogSink
	storefronts []string
	interval    time.Duration
	logger      *logger.Logger
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewCatalogRefresher(
	repo ports.CatalogRepository,
	sink CatalogSink,
	storefronts []string,
	interval time.Duration,
	logger *logger.Logger,
) *CatalogRefresher {
	return &CatalogRefresher{
		repo:        repo,
		sink:        sink,
		storefronts: storefronts,
		interval:    interval,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

func (s *CatalogRefresher) Start(ctx context.Context) {
	s.logger.Info("Starting catalog refresher", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Catalog refresher stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Catalog refresher stopped")
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error("Failed to refresh catalog", "error", err)
			}
		}
	}
}

func (s *CatalogRefresher) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Refresh reloads every storefront and reports the combined failures.
func (s *CatalogRefresher) Refresh(ctx context.Context) error {
	var errs []error

	for _, storefront := range s.storefronts {
		products, err := s.repo.ListProducts(ctx, storefront)
		if err == nil {
			err = s.sink.Replace(storefront, products)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", storefront, err))
			continue
		}

		monitoring.SetCatalogProducts(storefront, len(products))
		s.logger.Debug("Catalog refreshed", "storefront", storefront, "products", len(products))
	}

	err := errors.Join(errs...)
	monitoring.RecordCatalogRefresh(err == nil)
	return err
}
