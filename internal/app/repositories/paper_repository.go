package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/qpsphere/paperbank/internal/app/models"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
	"github.com/qpsphere/paperbank/internal/pkg/drive"
	"github.com/qpsphere/paperbank/internal/pkg/papername"
)

// Lister enumerates the stored paper files. Satisfied by *drive.Client.
type Lister interface {
	ListFiles(ctx context.Context) ([]drive.File, error)
}

// Snapshot is one immutable view of the paper catalog. Consumers must not
// mutate it; a refresh replaces the whole snapshot atomically.
type Snapshot struct {
	Papers []models.Paper
	// CourseOptions are the distinct "{code} - {name}" labels, precomputed
	// once per refresh for autocomplete.
	CourseOptions []string
	// Dropped counts listing entries rejected by the strict filename parser.
	Dropped     int
	RefreshedAt time.Time
}

var emptySnapshot = &Snapshot{}

// PaperRepository is the in-memory catalog store. It refreshes lazily from
// the listing source, at most once per TTL window, and keeps serving the
// previous snapshot when a refresh fails.
type PaperRepository struct {
	source Lister
	ttl    time.Duration
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot *Snapshot

	// refreshMu serializes refreshes so concurrent requests never trigger
	// more than one outstanding listing fetch.
	refreshMu sync.Mutex
}

// NewPaperRepository creates a PaperRepository refreshing from source at most
// once per ttl.
func NewPaperRepository(source Lister, ttl time.Duration, logger zerolog.Logger) *PaperRepository {
	return &PaperRepository{
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Snapshot returns the current catalog view, refreshing first if the held
// snapshot is missing or older than the TTL. Refresh failures degrade to the
// last known snapshot (empty on first load) instead of propagating.
func (r *PaperRepository) Snapshot(ctx context.Context) *Snapshot {
	if snap := r.current(); snap != nil && time.Since(snap.RefreshedAt) < r.ttl {
		return snap
	}

	if err := r.Refresh(ctx); err != nil {
		r.logger.Error().Err(err).Msg("Catalog refresh failed, serving last known snapshot")
	}

	if snap := r.current(); snap != nil {
		return snap
	}
	return emptySnapshot
}

// Refresh fetches the listing, parses filenames and swaps in a new snapshot.
// Listing entries with malformed names are dropped and counted; duplicate
// file ids keep their first occurrence.
func (r *PaperRepository) Refresh(ctx context.Context) error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if snap := r.current(); snap != nil && time.Since(snap.RefreshedAt) < r.ttl {
		return nil
	}

	files, err := r.source.ListFiles(ctx)
	if err != nil {
		return err
	}

	snap := buildSnapshot(files)
	if snap.Dropped > 0 {
		r.logger.Warn().
			Int("dropped", snap.Dropped).
			Int("kept", len(snap.Papers)).
			Msg("Catalog refresh dropped files with malformed names")
	}
	r.logger.Info().
		Int("papers", len(snap.Papers)).
		Int("courses", len(snap.CourseOptions)).
		Msg("Catalog snapshot refreshed")

	r.mu.Lock()
	r.snapshot = snap
	r.mu.Unlock()
	return nil
}

// GetByID finds a paper in the current snapshot.
func (r *PaperRepository) GetByID(ctx context.Context, id string) (*models.Paper, error) {
	snap := r.Snapshot(ctx)
	for i := range snap.Papers {
		if snap.Papers[i].ID == id {
			p := snap.Papers[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrPaperNotFound
}

func (r *PaperRepository) current() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

func buildSnapshot(files []drive.File) *Snapshot {
	papers := make([]models.Paper, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	courses := make(map[string]struct{})
	dropped := 0

	for _, f := range files {
		if _, dup := seen[f.ID]; dup {
			continue
		}

		info, err := papername.Parse(f.Name)
		if err != nil {
			dropped++
			continue
		}
		seen[f.ID] = struct{}{}

		// Drive reports RFC 3339 modification times; an unparseable value
		// leaves the zero time, which simply sorts last.
		uploadedAt, _ := time.Parse(time.RFC3339, f.ModifiedTime)

		p := models.Paper{
			ID:          f.ID,
			CourseCode:  info.CourseCode,
			CourseName:  info.CourseName,
			ExamType:    info.ExamType,
			Semester:    info.Semester,
			Slot:        info.Slot,
			StorageLink: f.WebViewLink,
			UploadedAt:  uploadedAt,
		}
		papers = append(papers, p)
		courses[p.CourseKey()] = struct{}{}
	}

	// Most recent first; equal timestamps keep listing order.
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].UploadedAt.After(papers[j].UploadedAt)
	})

	options := make([]string, 0, len(courses))
	for c := range courses {
		options = append(options, c)
	}
	sort.Strings(options)

	return &Snapshot{
		Papers:        papers,
		CourseOptions: options,
		Dropped:       dropped,
		RefreshedAt:   time.Now(),
	}
}
