package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/evaluation"
	"github.com/tendermarket/tender-lifecycle/internal/models"
	"github.com/tendermarket/tender-lifecycle/internal/repository"

	"golang.org/x/sync/errgroup"
)

// SweepFailure описывает тендер, переход которого не удалось сохранить в этом цикле.
type SweepFailure struct {
	TenderID string `json:"tenderId"`
	Reason   string `json:"reason"`
}

// SweepReport - итог одного цикла обработки жизненного цикла.
type SweepReport struct {
	Processed    int            `json:"processed"`
	Transitioned int            `json:"transitioned"`
	Failures     []SweepFailure `json:"failures,omitempty"`
}

// LifecycleSweeper закрывает тендеры с истёкшим дедлайном и выбирает победителей.
// Собственных таймеров у него нет: цикл запускается извне с переданным "сейчас".
type LifecycleSweeper struct {
	tenders        repository.TenderRepository
	vendors        repository.VendorRepository
	logger         *slog.Logger
	persistTimeout time.Duration
	workers        int
}

// NewLifecycleSweeper создаёт новый экземпляр LifecycleSweeper.
func NewLifecycleSweeper(tenders repository.TenderRepository, vendors repository.VendorRepository, logger *slog.Logger, persistTimeout time.Duration, workers int) *LifecycleSweeper {
	return &LifecycleSweeper{
		tenders:        tenders,
		vendors:        vendors,
		logger:         logger,
		persistTimeout: persistTimeout,
		workers:        workers,
	}
}

// RunLifecycleSweep выполняет один цикл: находит открытые тендеры с истёкшим
// дедлайном и переводит каждый атомарно. Тендеры независимы и обрабатываются
// параллельно ограниченным числом воркеров. Ошибка сохранения одного тендера
// не прерывает цикл: тендер попадает в Failures и будет повторён в следующем
// цикле.
func (s *LifecycleSweeper) RunLifecycleSweep(ctx context.Context, now time.Time) (*SweepReport, error) {
	tenders, err := s.tenders.GetOpenTendersPastDeadline(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(tenders) == 0 {
		return &SweepReport{}, nil
	}

	profiles, err := s.vendors.GetAllVendorProfiles(ctx)
	if err != nil {
		return nil, err
	}
	vendorIndex := make(map[string]models.VendorProfile, len(profiles))
	for _, profile := range profiles {
		vendorIndex[profile.ID] = profile
	}

	var mu sync.Mutex
	report := &SweepReport{}

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for _, tender := range tenders {
		// Отмена цикла допустима только между тендерами.
		if ctx.Err() != nil {
			break
		}
		tender := tender
		g.Go(func() error {
			mu.Lock()
			report.Processed++
			mu.Unlock()

			changed, err := s.transitionTender(ctx, tender, vendorIndex)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Error("tender transition failed",
					slog.String("tenderId", tender.ID),
					slog.String("error", err.Error()))
				report.Failures = append(report.Failures, SweepFailure{TenderID: tender.ID, Reason: err.Error()})
				return nil
			}
			if changed {
				report.Transitioned++
			}
			return nil
		})
	}
	// Воркеры переносят ошибки в Failures и всегда возвращают nil.
	_ = g.Wait()
	return report, nil
}

// transitionTender применяет четырёхшаговый переход к одному тендеру:
// закрытие, ранжирование, статусы и объяснения предложений, сохранение единым
// юнитом. Уже переведённый тендер не трогается.
func (s *LifecycleSweeper) transitionTender(ctx context.Context, tender models.Tender, vendors map[string]models.VendorProfile) (bool, error) {
	if tender.Status != models.OpenTender {
		return false, nil
	}

	result := evaluation.Select(tender, vendors)
	if result.WinnerVendorID != "" {
		tender.Status = models.AwardedTender
		tender.Winner = result.WinnerVendorID
	} else {
		tender.Status = models.ClosedTender
	}

	decisions := make(map[string]models.Bid, len(tender.Bids))
	for i, entry := range result.Ranked {
		bid := entry.Bid
		isWinner := i == 0 && result.WinnerVendorID != ""
		if isWinner {
			bid.Status = models.SelectedBid
		} else {
			bid.Status = models.RejectedBid
		}
		bid.Explanation = evaluation.BuildExplanation(entry, isWinner)
		decisions[bid.ID] = bid
	}
	for _, excluded := range result.Excluded {
		bid := excluded.Bid
		bid.Status = models.RejectedBid
		bid.Explanation = evaluation.ExcludedExplanation(excluded)
		decisions[bid.ID] = bid
	}
	for i := range tender.Bids {
		if decided, ok := decisions[tender.Bids[i].ID]; ok {
			tender.Bids[i] = decided
		}
	}

	// Начатый переход доводится до конца даже при остановке цикла; зависшая
	// запись не держит воркер дольше таймаута.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()
	if err := s.tenders.PersistTenderTransition(persistCtx, &tender); err != nil {
		return false, err
	}
	return true, nil
}
