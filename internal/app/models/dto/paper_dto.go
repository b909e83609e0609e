package dto

import (
	"time"

	"github.com/qpsphere/paperbank/internal/app/models"
)

// PaperFilterRequest carries the catalog query parameters.
type PaperFilterRequest struct {
	// Query is a free-text search over course code and course name.
	Query string `form:"query"`
	// Category is "all" or one of CAT1, CAT2, FAT.
	Category string `form:"category"`
	// Course, when set, is an exact "{code} - {name}" selection and takes
	// priority over Query.
	Course string `form:"course"`
}

// PaperListResponse is the filtered catalog view.
type PaperListResponse struct {
	Papers []models.Paper `json:"papers"`
	Total  int            `json:"total"`
}

// SuggestResponse carries autocomplete suggestions, at most eight.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// CatalogStatsResponse reports snapshot health for operators: how many files
// the last listing contained, how many were dropped by the strict filename
// parser, and when the snapshot was taken.
type CatalogStatsResponse struct {
	Papers        int       `json:"papers"`
	DroppedFiles  int       `json:"droppedFiles"`
	CourseOptions int       `json:"courseOptions"`
	RefreshedAt   time.Time `json:"refreshedAt"`
}
