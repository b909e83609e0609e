package models

import (
	"time"

	"github.com/qpsphere/paperbank/internal/pkg/papername"
)

// Paper represents one stored exam paper. All metadata fields besides ID,
// StorageLink and UploadedAt are decoded from the stored filename. Records
// are immutable: each catalog refresh builds them fresh and a new snapshot
// replaces the old one wholesale.
type Paper struct {
	ID          string             `json:"id"`
	CourseCode  string             `json:"courseCode"`
	CourseName  string             `json:"courseName"`
	ExamType    papername.ExamType `json:"examType"`
	Semester    string             `json:"semester"`
	Slot        string             `json:"slot"`
	StorageLink string             `json:"storageLink"`
	UploadedAt  time.Time          `json:"uploadedAt"`
}

// CourseKey is the "{courseCode} - {courseName}" label used for autocomplete
// and for exact course selection.
func (p Paper) CourseKey() string {
	return p.CourseCode + " - " + p.CourseName
}
