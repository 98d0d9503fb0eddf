package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/evaluation"
	"github.com/tendermarket/tender-lifecycle/internal/models"

	"github.com/peterldowns/testy/check"
)

// fakeTenderRepo отдаёт заранее подготовленные тендеры и запоминает сохранённые переходы.
type fakeTenderRepo struct {
	mu        sync.Mutex
	due       []models.Tender
	failIDs   map[string]bool
	persisted []models.Tender
}

func (f *fakeTenderRepo) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	return nil, nil
}

func (f *fakeTenderRepo) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	return nil, nil
}

func (f *fakeTenderRepo) GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error) {
	return "", nil
}

func (f *fakeTenderRepo) GetOpenTendersPastDeadline(ctx context.Context, now time.Time) ([]models.Tender, error) {
	return f.due, nil
}

func (f *fakeTenderRepo) PersistTenderTransition(ctx context.Context, tender *models.Tender) error {
	if f.failIDs[tender.ID] {
		return &models.PersistenceError{TenderID: tender.ID, Err: context.DeadlineExceeded}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persisted = append(f.persisted, *tender)
	return nil
}

func (f *fakeTenderRepo) persistedByID(id string) (models.Tender, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tender := range f.persisted {
		if tender.ID == id {
			return tender, true
		}
	}
	return models.Tender{}, false
}

type fakeVendorRepo struct {
	profiles []models.VendorProfile
}

func (f *fakeVendorRepo) GetAllVendorProfiles(ctx context.Context) ([]models.VendorProfile, error) {
	return f.profiles, nil
}

func (f *fakeVendorRepo) CreateVendorProfile(ctx context.Context, profileReq models.VendorProfileRequest) (*models.VendorProfile, error) {
	return nil, nil
}

func newTestSweeper(tenders *fakeTenderRepo, vendors *fakeVendorRepo) *LifecycleSweeper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLifecycleSweeper(tenders, vendors, logger, time.Second, 2)
}

func expiredTender(id string, bids ...models.Bid) models.Tender {
	return models.Tender{
		ID:                 id,
		Title:              "Rewire office building",
		Type:               "electrical",
		Location:           "Berlin",
		RequiredExperience: 5,
		ExpectedAmount:     10000,
		Status:             models.OpenTender,
		Deadline:           time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Bids:               bids,
	}
}

func TestRunLifecycleSweep_AwardsStrongestBid(t *testing.T) {
	tender := expiredTender("tender-1",
		models.Bid{ID: "bid-a", VendorID: "vendor-a", Amount: 9000, SubmittedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Status: models.SubmittedBid},
		models.Bid{ID: "bid-b", VendorID: "vendor-b", Amount: 8000, SubmittedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), Status: models.SubmittedBid},
	)
	tenders := &fakeTenderRepo{due: []models.Tender{tender}}
	vendors := &fakeVendorRepo{profiles: []models.VendorProfile{
		{ID: "vendor-a", Experience: 6, Specialization: []string{"electrical"}, Location: "Berlin"},
		{ID: "vendor-b", Experience: 3, Specialization: []string{"plumbing"}, Location: "Munich"},
	}}
	sweeper := newTestSweeper(tenders, vendors)

	report, err := sweeper.RunLifecycleSweep(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	check.NoError(t, err)
	check.Equal(t, 1, report.Processed)
	check.Equal(t, 1, report.Transitioned)
	check.Equal(t, 0, len(report.Failures))

	persisted, ok := tenders.persistedByID("tender-1")
	check.True(t, ok)
	check.Equal(t, models.AwardedTender, persisted.Status)
	check.Equal(t, "vendor-a", persisted.Winner)

	selectedCount := 0
	for _, bid := range persisted.Bids {
		check.NotEqual(t, models.SubmittedBid, bid.Status)
		check.NotNil(t, bid.Explanation)
		if bid.Status == models.SelectedBid {
			selectedCount++
			check.Equal(t, "vendor-a", bid.VendorID)
			check.Equal(t, "selected as winning bid", bid.Explanation.Positive[len(bid.Explanation.Positive)-1])
		}
	}
	check.Equal(t, 1, selectedCount)

	var rejected models.Bid
	for _, bid := range persisted.Bids {
		if bid.ID == "bid-b" {
			rejected = bid
		}
	}
	check.Equal(t, models.RejectedBid, rejected.Status)
	check.Equal(t, []string{
		"below required experience by 2 years",
		"no specialization match",
	}, rejected.Explanation.Negative)
}

func TestRunLifecycleSweep_NoBidsClosesWithoutWinner(t *testing.T) {
	tenders := &fakeTenderRepo{due: []models.Tender{expiredTender("tender-2")}}
	sweeper := newTestSweeper(tenders, &fakeVendorRepo{})

	report, err := sweeper.RunLifecycleSweep(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	check.NoError(t, err)
	check.Equal(t, 1, report.Transitioned)

	persisted, ok := tenders.persistedByID("tender-2")
	check.True(t, ok)
	check.Equal(t, models.ClosedTender, persisted.Status)
	check.Equal(t, "", persisted.Winner)
}

func TestRunLifecycleSweep_AlreadyTransitionedIsNoop(t *testing.T) {
	awarded := expiredTender("tender-3")
	awarded.Status = models.AwardedTender
	awarded.Winner = "vendor-a"
	tenders := &fakeTenderRepo{due: []models.Tender{awarded}}
	sweeper := newTestSweeper(tenders, &fakeVendorRepo{})

	report, err := sweeper.RunLifecycleSweep(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	check.NoError(t, err)
	check.Equal(t, 1, report.Processed)
	check.Equal(t, 0, report.Transitioned)
	check.Equal(t, 0, len(tenders.persisted))
}

func TestRunLifecycleSweep_PersistFailureDoesNotAbortCycle(t *testing.T) {
	tenders := &fakeTenderRepo{
		due: []models.Tender{
			expiredTender("tender-4"),
			expiredTender("tender-5"),
		},
		failIDs: map[string]bool{"tender-4": true},
	}
	sweeper := newTestSweeper(tenders, &fakeVendorRepo{})

	report, err := sweeper.RunLifecycleSweep(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	check.NoError(t, err)
	check.Equal(t, 2, report.Processed)
	check.Equal(t, 1, report.Transitioned)
	check.Equal(t, 1, len(report.Failures))
	check.Equal(t, "tender-4", report.Failures[0].TenderID)

	_, ok := tenders.persistedByID("tender-5")
	check.True(t, ok)
}

func TestRunLifecycleSweep_MissingVendorProfile(t *testing.T) {
	tender := expiredTender("tender-6",
		models.Bid{ID: "bid-ghost", VendorID: "vendor-ghost", Amount: 1000, SubmittedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), Status: models.SubmittedBid},
		models.Bid{ID: "bid-a", VendorID: "vendor-a", Amount: 9000, SubmittedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Status: models.SubmittedBid},
	)
	tenders := &fakeTenderRepo{due: []models.Tender{tender}}
	vendors := &fakeVendorRepo{profiles: []models.VendorProfile{
		{ID: "vendor-a", Experience: 6, Specialization: []string{"electrical"}, Location: "Berlin"},
	}}
	sweeper := newTestSweeper(tenders, vendors)

	_, err := sweeper.RunLifecycleSweep(context.Background(), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	check.NoError(t, err)

	persisted, ok := tenders.persistedByID("tender-6")
	check.True(t, ok)
	check.Equal(t, models.AwardedTender, persisted.Status)
	check.Equal(t, "vendor-a", persisted.Winner)

	for _, bid := range persisted.Bids {
		if bid.ID == "bid-ghost" {
			check.Equal(t, models.RejectedBid, bid.Status)
			check.Equal(t, []string{evaluation.ReasonVendorNotFound}, bid.Explanation.Negative)
		}
	}
}

func TestRunLifecycleSweep_RepeatedRunsSettle(t *testing.T) {
	tender := expiredTender("tender-7",
		models.Bid{ID: "bid-a", VendorID: "vendor-a", Amount: 9000, SubmittedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Status: models.SubmittedBid},
	)
	tenders := &fakeTenderRepo{due: []models.Tender{tender}}
	vendors := &fakeVendorRepo{profiles: []models.VendorProfile{
		{ID: "vendor-a", Experience: 6, Specialization: []string{"electrical"}, Location: "Berlin"},
	}}
	sweeper := newTestSweeper(tenders, vendors)

	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	first, err := sweeper.RunLifecycleSweep(context.Background(), now)
	check.NoError(t, err)
	check.Equal(t, 1, first.Transitioned)

	// После перехода тендер больше не попадает в выборку: повторный цикл ничего не меняет.
	persisted, _ := tenders.persistedByID("tender-7")
	tenders.due = nil

	second, err := sweeper.RunLifecycleSweep(context.Background(), now)
	check.NoError(t, err)
	check.Equal(t, 0, second.Processed)

	again, _ := tenders.persistedByID("tender-7")
	check.Equal(t, persisted, again)
}
