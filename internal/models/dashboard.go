package models

// SubjectAverage summarises student performance for one subject. AvgMarks is
// nil when no students reference the subject.
type SubjectAverage struct {
	SubjectID    string   `json:"subject_id"`
	SubjectName  string   `json:"subject_name"`
	StudentCount int      `json:"student_count"`
	AvgMarks     *float64 `json:"avg_marks"`
}

// DashboardStats is the full admin dashboard payload. It is always computed
// over the entire student set, never a scoped subset.
type DashboardStats struct {
	TotalStudents     int              `json:"total_students"`
	AvgMarks          *float64         `json:"avg_marks"`
	TopStudents       []StudentDetail  `json:"top_students"`
	AtRiskStudents    []StudentDetail  `json:"at_risk_students"`
	PassCount         int              `json:"pass_count"`
	FailCount         int              `json:"fail_count"`
	PassPercent       float64          `json:"pass_percent"`
	FailPercent       float64          `json:"fail_percent"`
	GradeDistribution map[Grade]int    `json:"grade_distribution"`
	SubjectAverages   []SubjectAverage `json:"subject_averages"`
}
