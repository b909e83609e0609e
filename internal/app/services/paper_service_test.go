package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/app/repositories"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
	"github.com/qpsphere/paperbank/internal/pkg/drive"
)

type staticLister struct {
	files []drive.File
}

func (s *staticLister) ListFiles(ctx context.Context) ([]drive.File, error) {
	return s.files, nil
}

type recordingTracker struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTracker) Event(kind string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind)
}

func catalogFiles() []drive.File {
	ts := func(daysAgo int) string {
		return time.Now().AddDate(0, 0, -daysAgo).UTC().Format(time.RFC3339)
	}
	return []drive.File{
		{ID: "p1", Name: "CSE1001_IntroToProgramming_CAT1_Winter2023_SlotA1.pdf", ModifiedTime: ts(1)},
		{ID: "p2", Name: "CSE1001_IntroToProgramming_FAT_Winter2023_SlotA1.pdf", ModifiedTime: ts(2)},
		{ID: "p3", Name: "MAT2002_LinearAlgebra_CAT1_Summer2024_SlotB2.pdf", ModifiedTime: ts(3)},
		{ID: "p4", Name: "ECE3001_DigitalSystems_CAT2_Winter2023_SlotC1.pdf", ModifiedTime: ts(4)},
		{ID: "p5", Name: "CSE2005_OperatingSystems_FAT_Summer2024_SlotD1.pdf", ModifiedTime: ts(5)},
	}
}

func newService(t *testing.T, files []drive.File, displayLimit int) PaperService {
	t.Helper()
	repo := repositories.NewPaperRepository(&staticLister{files: files}, time.Hour, zerolog.Nop())
	return NewPaperService(repo, displayLimit, nil)
}

func TestListPapers_NoFilterReturnsAll(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)

	resp, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Papers, 5)
	assert.Equal(t, 5, resp.Total)
}

func TestListPapers_UnfilteredViewCapped(t *testing.T) {
	var files []drive.File
	for i := 0; i < 15; i++ {
		files = append(files, drive.File{
			ID:           fmt.Sprintf("id%d", i),
			Name:         fmt.Sprintf("CSE%04d_SomeCourse_CAT1_Winter2023_SlotA1.pdf", i),
			ModifiedTime: time.Now().AddDate(0, 0, -i).UTC().Format(time.RFC3339),
		})
	}
	svc := newService(t, files, 9)

	resp, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Papers, 9, "unfiltered view is capped")
	assert.Equal(t, 15, resp.Total, "total reports the full count")

	// Any active filter returns the full matched set.
	resp, err = svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Query: "CSE"})
	require.NoError(t, err)
	assert.Len(t, resp.Papers, 15)
}

func TestListPapers_CategoryFilter(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)

	resp, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Category: "FAT"})
	require.NoError(t, err)
	require.Len(t, resp.Papers, 2)
	for _, p := range resp.Papers {
		assert.Equal(t, "FAT", string(p.ExamType))
	}
}

func TestListPapers_InvalidCategory(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)

	_, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Category: "MIDTERM"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListPapers_QueryMatchesCodeOrName(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)

	// Matches course code, case-insensitively.
	resp, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Query: "cse"})
	require.NoError(t, err)
	assert.Len(t, resp.Papers, 3)

	// Matches course name.
	resp, err = svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Query: "linear"})
	require.NoError(t, err)
	require.Len(t, resp.Papers, 1)
	assert.Equal(t, "MAT2002", resp.Papers[0].CourseCode)

	// No match.
	resp, err = svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Query: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, resp.Papers)
}

func TestListPapers_SelectedCourseOverridesQuery(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)

	resp, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{
		Query:  "this free text is ignored",
		Course: "CSE1001 - Intro To Programming",
	})
	require.NoError(t, err)
	require.Len(t, resp.Papers, 2)
	for _, p := range resp.Papers {
		assert.Equal(t, "CSE1001", p.CourseCode)
		assert.Equal(t, "Intro To Programming", p.CourseName)
	}

	// Course selection combines with the category filter.
	resp, err = svc.ListPapers(context.Background(), &dto.PaperFilterRequest{
		Course:   "CSE1001 - Intro To Programming",
		Category: "FAT",
	})
	require.NoError(t, err)
	require.Len(t, resp.Papers, 1)
	assert.Equal(t, "p2", resp.Papers[0].ID)
}

func TestListPapers_StableOrder(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)

	resp, err := svc.ListPapers(context.Background(), &dto.PaperFilterRequest{Query: "CSE"})
	require.NoError(t, err)
	require.Len(t, resp.Papers, 3)
	// Snapshot is sorted most recent first; filtering must not re-sort.
	assert.Equal(t, "p1", resp.Papers[0].ID)
	assert.Equal(t, "p2", resp.Papers[1].ID)
	assert.Equal(t, "p5", resp.Papers[2].ID)
}

func TestSuggest(t *testing.T) {
	svc := newService(t, catalogFiles(), 0)
	ctx := context.Background()

	resp := svc.Suggest(ctx, "intro")
	assert.Equal(t, []string{"CSE1001 - Intro To Programming"}, resp.Suggestions)

	resp = svc.Suggest(ctx, "CSE")
	assert.Len(t, resp.Suggestions, 2)

	resp = svc.Suggest(ctx, "")
	assert.Empty(t, resp.Suggestions)
}

func TestSuggest_CapAndNoDuplicates(t *testing.T) {
	var files []drive.File
	for i := 0; i < 20; i++ {
		files = append(files, drive.File{
			ID:           fmt.Sprintf("id%d", i),
			Name:         fmt.Sprintf("CSE%04d_CourseNumber%d_CAT1_Winter2023_SlotA1.pdf", i, i),
			ModifiedTime: time.Now().UTC().Format(time.RFC3339),
		})
		// Same course appearing twice must not yield a duplicate suggestion.
		files = append(files, drive.File{
			ID:           fmt.Sprintf("dup%d", i),
			Name:         fmt.Sprintf("CSE%04d_CourseNumber%d_FAT_Winter2023_SlotA1.pdf", i, i),
			ModifiedTime: time.Now().UTC().Format(time.RFC3339),
		})
	}
	svc := newService(t, files, 0)

	resp := svc.Suggest(context.Background(), "cse")
	assert.Len(t, resp.Suggestions, 8)

	seen := make(map[string]bool)
	for _, s := range resp.Suggestions {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestGetPaperByID_TracksView(t *testing.T) {
	repo := repositories.NewPaperRepository(&staticLister{files: catalogFiles()}, time.Hour, zerolog.Nop())
	tracker := &recordingTracker{}
	svc := NewPaperService(repo, 0, tracker)

	paper, err := svc.GetPaperByID(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", paper.CourseName)
	assert.Contains(t, tracker.events, "view_paper")

	_, err = svc.GetPaperByID(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrPaperNotFound)
}

func TestStats(t *testing.T) {
	files := append(catalogFiles(), drive.File{ID: "bad", Name: "not-a-paper.pdf"})
	svc := newService(t, files, 0)

	stats := svc.Stats(context.Background())
	assert.Equal(t, 5, stats.Papers)
	assert.Equal(t, 1, stats.DroppedFiles)
	assert.Equal(t, 4, stats.CourseOptions)
	assert.WithinDuration(t, time.Now(), stats.RefreshedAt, time.Minute)
}
