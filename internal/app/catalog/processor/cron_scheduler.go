package processor

import (
	"context"
	"log"
	"time"

	"pscosmeticos/internal/app/catalog/repository"
	"pscosmeticos/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const syncTimeout = 30 * time.Second

// CronScheduler периодически сверяет денормализованный счетчик
// total_products категорий с фактическим числом товаров.
// Инкременты при создании и удалении могут разойтись с реальностью
// после сбоев, сверка возвращает счетчики к истине.
type CronScheduler struct {
	cron         *cron.Cron
	categoryRepo repository.CategoryRepository
}

func NewCronScheduler(categoryRepo repository.CategoryRepository) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:         c,
		categoryRepo: categoryRepo,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: syncing category product counters")
		s.runSync(ctx)
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	return nil
}

func (s *CronScheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	if err := s.categoryRepo.SyncTotalProducts(syncCtx); err != nil {
		metrics.CounterSyncRuns.WithLabelValues("error").Inc()
		log.Printf("ERROR: Failed to sync category counters: %v", err)
		return
	}

	metrics.CounterSyncRuns.WithLabelValues("success").Inc()
	log.Println("Cron job completed: category counters synced")
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
