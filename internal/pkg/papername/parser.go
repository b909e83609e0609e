// Package papername parses the structured filenames used by the paper bank.
//
// Every stored paper is named "COURSECODE_CourseName_EXAMTYPE_Semester_SlotX.pdf",
// e.g. "CSE1001_IntroToProgramming_CAT1_Winter2023_SlotA1.pdf". The filename is
// the only place paper metadata lives, so parsing is strict: a name that does
// not follow the convention is rejected rather than guessed at.
package papername

import (
	"errors"
	"strings"
	"unicode"
)

// ExamType is the closed set of assessment categories.
type ExamType string

const (
	ExamTypeCAT1 ExamType = "CAT1"
	ExamTypeCAT2 ExamType = "CAT2"
	ExamTypeFAT  ExamType = "FAT"
)

var (
	// ErrMalformedName indicates the filename does not split into the five
	// expected underscore-separated segments.
	ErrMalformedName = errors.New("malformed paper filename")
	// ErrUnknownExamType indicates the exam type segment is outside the
	// CAT1/CAT2/FAT set.
	ErrUnknownExamType = errors.New("unknown exam type")
)

const segmentCount = 5

// Info holds the metadata decoded from a paper filename.
type Info struct {
	CourseCode string
	CourseName string
	ExamType   ExamType
	Semester   string
	Slot       string
}

// ValidExamType reports whether s is one of the recognized exam types.
func ValidExamType(s string) bool {
	switch ExamType(s) {
	case ExamTypeCAT1, ExamTypeCAT2, ExamTypeFAT:
		return true
	}
	return false
}

// Parse decodes a paper filename into its metadata fields.
// The ".pdf" extension is stripped first; an accidental double ".pdf.pdf"
// suffix is tolerated because it shows up in real uploads.
func Parse(filename string) (Info, error) {
	name := strings.TrimSpace(filename)
	for strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}

	parts := strings.Split(name, "_")
	if len(parts) != segmentCount {
		return Info{}, ErrMalformedName
	}
	for _, p := range parts {
		if p == "" {
			return Info{}, ErrMalformedName
		}
	}

	if !ValidExamType(parts[2]) {
		return Info{}, ErrUnknownExamType
	}

	return Info{
		CourseCode: parts[0],
		CourseName: Humanize(parts[1]),
		ExamType:   ExamType(parts[2]),
		Semester:   parts[3],
		Slot:       stripSlotPrefix(parts[4]),
	}, nil
}

// Humanize inserts a space before every internal capital letter, turning a
// camel-cased segment into a readable title ("IntroToProgramming" becomes
// "Intro To Programming"). Input that already contains spaces before its
// capitals passes through unchanged.
func Humanize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && runes[i-1] != ' ' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// stripSlotPrefix removes a leading literal "Slot" from the slot segment,
// case-insensitively, leaving the bare slot code.
func stripSlotPrefix(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "Slot") {
		return strings.TrimSpace(s[4:])
	}
	return strings.TrimSpace(s)
}
