package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/vocabflash/internal/clock"
	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/jobs"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

const (
	defaultHistoryLimit = 50
	defaultDueLimit     = 20
)

// ReviewService handles card scheduling business logic
type ReviewService interface {
	Card(ctx context.Context, userID, vocabID int64) (*models.CardView, error)
	Review(ctx context.Context, userID, vocabID, deckID int64, rating flashcard.Rating) (*models.ReviewOutcome, error)
	History(ctx context.Context, userID, vocabID int64, limit int) ([]models.ReviewLog, error)
	Reset(ctx context.Context, userID, vocabID int64) error
	DueCards(ctx context.Context, userID, deckID int64, limit int) ([]models.CardView, error)
}

// ReviewDeps wires a ReviewService. AutoAdvance, when set, is moved forward
// by every applied interval so a session can be replayed in fast-forward.
type ReviewDeps struct {
	Scheduler   *flashcard.Scheduler
	Cards       repository.CardStateRepository
	Ledger      repository.ReviewLedger
	Queue       jobs.JobQueue
	Clock       clock.Clock
	AutoAdvance *clock.Simulated
}

type reviewService struct {
	scheduler   *flashcard.Scheduler
	cards       repository.CardStateRepository
	ledger      repository.ReviewLedger
	queue       jobs.JobQueue
	clock       clock.Clock
	autoAdvance *clock.Simulated
	locks       *keyLock
}

// NewReviewService creates a new ReviewService
func NewReviewService(deps ReviewDeps) ReviewService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.System{}
	}
	return &reviewService{
		scheduler:   deps.Scheduler,
		cards:       deps.Cards,
		ledger:      deps.Ledger,
		queue:       deps.Queue,
		clock:       clk,
		autoAdvance: deps.AutoAdvance,
		locks:       newKeyLock(),
	}
}

func validateKey(userID, vocabID int64) error {
	if userID <= 0 {
		return errors.NewValidationError("user_id", "must be positive")
	}
	if vocabID <= 0 {
		return errors.NewValidationError("vocab_id", "must be positive")
	}
	return nil
}

func (s *reviewService) Card(ctx context.Context, userID, vocabID int64) (*models.CardView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: user_id=%d, vocab_id=%d", userID, vocabID)

	if err := validateKey(userID, vocabID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rec, err := s.cards.Get(ctx, userID, vocabID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		rec = &models.CardRecord{
			UserID:  userID,
			VocabID: vocabID,
			State:   s.scheduler.InitCard(),
			DueAt:   now,
		}
	}

	view := s.view(*rec, now)
	return &view, nil
}

func (s *reviewService) view(rec models.CardRecord, now time.Time) models.CardView {
	rec.State = s.scheduler.Normalize(rec.State)
	return models.CardView{
		CardRecord:     rec,
		Retrievability: s.scheduler.Retrievability(rec.State, now),
		IsDue:          !rec.DueAt.After(now),
		DueIn:          flashcard.HumanizeInterval(now, rec.DueAt),
		Predictions:    s.scheduler.Predict(rec.State, now),
	}
}

func (s *reviewService) Review(ctx context.Context, userID, vocabID, deckID int64, rating flashcard.Rating) (*models.ReviewOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: user_id=%d, vocab_id=%d, rating=%d", userID, vocabID, int(rating))

	if !rating.IsValid() {
		return nil, errors.NewValidationError("rating", "must be between 1 (again) and 4 (easy)")
	}
	if err := validateKey(userID, vocabID); err != nil {
		return nil, err
	}
	if deckID < 0 {
		return nil, errors.NewValidationError("deck_id", "must not be negative")
	}

	key := models.CardKey{UserID: userID, VocabID: vocabID}
	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.clock.Now()
	stored, err := s.cards.Get(ctx, userID, vocabID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	prev := models.CardRecord{UserID: userID, VocabID: vocabID, DeckID: deckID, State: s.scheduler.InitCard(), CreatedAt: now}
	if stored != nil {
		prev = *stored
		prev.State = s.scheduler.Normalize(stored.State)
		if deckID != 0 {
			prev.DeckID = deckID
		}
	}

	res, err := s.scheduler.Apply(prev.State, rating, now)
	if err != nil {
		return nil, errors.WrapValidationError("rating", err)
	}

	next := prev
	next.State = res.State
	next.DueAt = res.Due
	next.UpdatedAt = now
	if err := s.cards.Upsert(ctx, next); err != nil {
		log.Error("failed to save card %s: %v", key, err)
		return nil, errors.NewInternalError(err)
	}

	ev := s.scheduler.Event(prev.State, rating, now)
	s.appendLog(ctx, models.ReviewLog{
		ID:                   uuid.NewString(),
		UserID:               userID,
		VocabID:              vocabID,
		DeckID:               next.DeckID,
		Rating:               rating,
		PhaseBefore:          prev.State.Phase,
		PhaseAfter:           next.State.Phase,
		ReviewedAt:           now,
		StabilityBefore:      prev.State.Stability,
		StabilityAfter:       next.State.Stability,
		DifficultyBefore:     prev.State.Difficulty,
		DifficultyAfter:      next.State.Difficulty,
		RetrievabilityBefore: s.scheduler.Retrievability(prev.State, now),
		ElapsedDays:          ev.ElapsedDays,
		IntervalDays:         res.IntervalDays,
	})

	if s.autoAdvance != nil {
		at := s.autoAdvance.Advance(res.Interval)
		log.Debug("simulated clock advanced by %v to %s", res.Interval, at.Format(time.RFC3339))
	}

	log.Info("card %s rated %s: phase %s -> %s, next in %s", key, rating, prev.State.Phase, next.State.Phase, res.Interval)
	return &models.ReviewOutcome{
		Card:         next,
		Rating:       rating,
		IntervalDays: res.IntervalDays,
		DueIn:        flashcard.HumanizeInterval(now, res.Due),
		ReviewedAt:   now,
	}, nil
}

// appendLog hands the entry to the background ledger writer. When the queue
// refuses it the entry is written inline; the review itself already stands.
func (s *reviewService) appendLog(ctx context.Context, entry models.ReviewLog) {
	log := logger.FromContext(ctx)
	if s.queue != nil {
		err := s.queue.EnqueueReviewLog(entry)
		if err == nil {
			return
		}
		log.Warn("ledger queue rejected review %s (%v), writing synchronously", entry.ID, err)
	}
	if err := s.ledger.LogReview(ctx, entry); err != nil {
		log.Error("failed to append review %s: %v", entry.ID, err)
	}
}

func (s *reviewService) History(ctx context.Context, userID, vocabID int64, limit int) ([]models.ReviewLog, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review history: user_id=%d, vocab_id=%d, limit=%d", userID, vocabID, limit)

	if err := validateKey(userID, vocabID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.ledger.History(ctx, userID, vocabID, limit)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.ReviewLog{}
	}
	return entries, nil
}

func (s *reviewService) Reset(ctx context.Context, userID, vocabID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("resetting card: user_id=%d, vocab_id=%d", userID, vocabID)

	if err := validateKey(userID, vocabID); err != nil {
		return err
	}

	key := models.CardKey{UserID: userID, VocabID: vocabID}
	unlock := s.locks.Lock(key)
	defer unlock()

	deleted, err := s.cards.Delete(ctx, userID, vocabID)
	if err != nil {
		log.Error("failed to reset card %s: %v", key, err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("card", key)
	}
	return nil
}

func (s *reviewService) DueCards(ctx context.Context, userID, deckID int64, limit int) ([]models.CardView, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing due cards: user_id=%d, deck_id=%d, limit=%d", userID, deckID, limit)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be positive")
	}
	if limit <= 0 {
		limit = defaultDueLimit
	}

	now := s.clock.Now()
	recs, err := s.cards.Due(ctx, models.DueFilter{UserID: userID, DeckID: deckID, Before: now, Limit: limit})
	if err != nil {
		log.Error("failed to list due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	views := make([]models.CardView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, s.view(rec, now))
	}
	return views, nil
}
