package services

import (
	"context"
	"strings"

	"github.com/qpsphere/paperbank/internal/app/models"
	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/app/repositories"
	"github.com/qpsphere/paperbank/internal/pkg/analytics"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
	"github.com/qpsphere/paperbank/internal/pkg/papername"
)

// maxSuggestions caps the autocomplete list.
const maxSuggestions = 8

// CategoryAll disables category filtering.
const CategoryAll = "all"

// PaperService defines the catalog query operations.
type PaperService interface {
	ListPapers(ctx context.Context, filter *dto.PaperFilterRequest) (*dto.PaperListResponse, error)
	GetPaperByID(ctx context.Context, id string) (*models.Paper, error)
	Suggest(ctx context.Context, query string) *dto.SuggestResponse
	Stats(ctx context.Context) *dto.CatalogStatsResponse
}

// paperServiceImpl implements PaperService over the catalog store.
type paperServiceImpl struct {
	paperRepo *repositories.PaperRepository
	// displayLimit caps the unfiltered view; any active filter returns the
	// full result set.
	displayLimit int
	tracker      analytics.Tracker
}

// NewPaperService creates a new PaperService.
func NewPaperService(paperRepo *repositories.PaperRepository, displayLimit int, tracker analytics.Tracker) PaperService {
	if tracker == nil {
		tracker = analytics.NopTracker{}
	}
	return &paperServiceImpl{
		paperRepo:    paperRepo,
		displayLimit: displayLimit,
		tracker:      tracker,
	}
}

// ListPapers returns the filtered catalog view. Filtering preserves snapshot
// order (most recent first); Total always reports the full match count even
// when the unfiltered view is capped for display.
func (s *paperServiceImpl) ListPapers(ctx context.Context, filter *dto.PaperFilterRequest) (*dto.PaperListResponse, error) {
	category := strings.TrimSpace(filter.Category)
	if category == "" {
		category = CategoryAll
	}
	if category != CategoryAll && !papername.ValidExamType(category) {
		return nil, apperrors.NewValidationError("category must be one of all, CAT1, CAT2, FAT")
	}

	query := strings.TrimSpace(filter.Query)
	course := strings.TrimSpace(filter.Course)

	snap := s.paperRepo.Snapshot(ctx)
	matched := filterPapers(snap.Papers, query, category, course)

	if query != "" {
		s.tracker.Event(analytics.EventSearch, map[string]any{
			"search_term":   query,
			"results_count": len(matched),
		})
	}
	if category != CategoryAll {
		s.tracker.Event(analytics.EventFilter, map[string]any{
			"filter_type":  "exam_type",
			"filter_value": category,
		})
	}

	papers := matched
	if query == "" && course == "" && category == CategoryAll && s.displayLimit > 0 && len(papers) > s.displayLimit {
		papers = papers[:s.displayLimit]
	}

	return &dto.PaperListResponse{
		Papers: papers,
		Total:  len(matched),
	}, nil
}

// GetPaperByID returns a single paper for the detail view.
func (s *paperServiceImpl) GetPaperByID(ctx context.Context, id string) (*models.Paper, error) {
	paper, err := s.paperRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.tracker.Event(analytics.EventPaperView, map[string]any{
		"paper_code": paper.CourseCode,
		"paper_name": paper.CourseName,
		"paper_type": string(paper.ExamType),
		"semester":   paper.Semester,
	})
	return paper, nil
}

// Suggest returns up to eight course labels containing the query,
// case-insensitively. The precomputed option list is already deduplicated.
func (s *paperServiceImpl) Suggest(ctx context.Context, query string) *dto.SuggestResponse {
	query = strings.ToLower(strings.TrimSpace(query))
	resp := &dto.SuggestResponse{Suggestions: []string{}}
	if query == "" {
		return resp
	}

	for _, option := range s.paperRepo.Snapshot(ctx).CourseOptions {
		if strings.Contains(strings.ToLower(option), query) {
			resp.Suggestions = append(resp.Suggestions, option)
			if len(resp.Suggestions) == maxSuggestions {
				break
			}
		}
	}
	return resp
}

// Stats reports snapshot health for operators.
func (s *paperServiceImpl) Stats(ctx context.Context) *dto.CatalogStatsResponse {
	snap := s.paperRepo.Snapshot(ctx)
	return &dto.CatalogStatsResponse{
		Papers:        len(snap.Papers),
		DroppedFiles:  snap.Dropped,
		CourseOptions: len(snap.CourseOptions),
		RefreshedAt:   snap.RefreshedAt,
	}
}

// filterPapers applies the three filter branches in priority order: category
// always applies; a selected course matches the exact (code, name) pair and
// overrides free text; otherwise the query substring-matches code OR name.
func filterPapers(papers []models.Paper, query, category, course string) []models.Paper {
	var wantCode, wantName string
	if course != "" {
		wantCode, wantName = splitCourseKey(course)
	}
	queryLower := strings.ToLower(query)

	matched := make([]models.Paper, 0, len(papers))
	for _, p := range papers {
		if category != CategoryAll && string(p.ExamType) != category {
			continue
		}

		if course != "" {
			if p.CourseCode == wantCode && p.CourseName == wantName {
				matched = append(matched, p)
			}
			continue
		}

		if queryLower == "" ||
			strings.Contains(strings.ToLower(p.CourseCode), queryLower) ||
			strings.Contains(strings.ToLower(p.CourseName), queryLower) {
			matched = append(matched, p)
		}
	}
	return matched
}

// splitCourseKey decomposes a "{code} - {name}" selection. Only the first
// separator splits, so course names containing " - " survive intact.
func splitCourseKey(key string) (code, name string) {
	parts := strings.SplitN(key, " - ", 2)
	code = parts[0]
	if len(parts) == 2 {
		name = parts[1]
	}
	return code, name
}
