package models

import "time"

// Grade is the letter category derived from marks.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
)

// PassMark is the minimum marks considered passing. Students below it are
// counted as at-risk on the dashboard.
const PassMark = 40

// GradeFor maps marks onto the letter scale. Each tier is inclusive on its
// lower boundary: >=90 A+, >=75 A, >=60 B, everything else C.
func GradeFor(marks int) Grade {
	switch {
	case marks >= 90:
		return GradeAPlus
	case marks >= 75:
		return GradeA
	case marks >= 60:
		return GradeB
	default:
		return GradeC
	}
}

// Student represents a single student record owned by the user who created it.
type Student struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	RollNo    int       `db:"roll_no" json:"roll_no"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Marks     int       `db:"marks" json:"marks"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Grade returns the derived letter grade. It is computed on every read so a
// marks update can never leave a stale grade behind.
func (s Student) Grade() Grade {
	return GradeFor(s.Marks)
}

// StudentDetail is a student row joined with its subject for listing, export
// and reporting. Grade is filled by the service layer, never persisted.
type StudentDetail struct {
	Student
	SubjectName string `db:"subject_name" json:"subject_name"`
	LetterGrade Grade  `db:"-" json:"grade"`
}

// StudentFilter captures the supported list/search parameters.
type StudentFilter struct {
	Search   string
	Page     int
	PageSize int
}
