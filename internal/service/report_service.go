package service

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

const dashboardCacheKey = "dash:summary"

// topStudentCount caps the leaderboard on the dashboard.
const topStudentCount = 5

type allStudentLister interface {
	ListAll(ctx context.Context) ([]models.StudentDetail, error)
}

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// ReportService computes dashboard statistics over the entire student set.
// The dashboard is deliberately unscoped; route-level RBAC keeps it
// admin-only.
type ReportService struct {
	students allStudentLister
	subjects subjectLister
	cache    *CacheService
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(students allStudentLister, subjects subjectLister, cache *CacheService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{students: students, subjects: subjects, cache: cache, logger: logger}
}

// Dashboard returns the dashboard payload, serving from cache when possible.
// The second return value reports a cache hit.
func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardStats, bool, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}

	stats := ComputeDashboard(students, subjects)
	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, 0); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return &stats, false, nil
}

// ComputeDashboard aggregates dashboard statistics from the full student set.
// Pure function: empty input degrades to zero counts and nil averages rather
// than failing.
func ComputeDashboard(students []models.StudentDetail, subjects []models.Subject) models.DashboardStats {
	stats := models.DashboardStats{
		TotalStudents: len(students),
		GradeDistribution: map[models.Grade]int{
			models.GradeAPlus: 0,
			models.GradeA:     0,
			models.GradeB:     0,
			models.GradeC:     0,
		},
		TopStudents:    []models.StudentDetail{},
		AtRiskStudents: []models.StudentDetail{},
	}

	var marksSum int
	for i := range students {
		students[i].LetterGrade = students[i].Grade()
		marksSum += students[i].Marks
		stats.GradeDistribution[students[i].LetterGrade]++
		if students[i].Marks >= models.PassMark {
			stats.PassCount++
		} else {
			stats.FailCount++
			stats.AtRiskStudents = append(stats.AtRiskStudents, students[i])
		}
	}

	if stats.TotalStudents > 0 {
		avg := float64(marksSum) / float64(stats.TotalStudents)
		stats.AvgMarks = &avg
		stats.PassPercent = roundPercent(stats.PassCount, stats.TotalStudents)
		stats.FailPercent = roundPercent(stats.FailCount, stats.TotalStudents)
	}

	// stable sort keeps original order between equal marks
	ranked := make([]models.StudentDetail, len(students))
	copy(ranked, students)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Marks > ranked[j].Marks
	})
	if len(ranked) > topStudentCount {
		ranked = ranked[:topStudentCount]
	}
	stats.TopStudents = ranked

	stats.SubjectAverages = subjectAverages(students, subjects)
	return stats
}

func subjectAverages(students []models.StudentDetail, subjects []models.Subject) []models.SubjectAverage {
	sums := make(map[string]int, len(subjects))
	counts := make(map[string]int, len(subjects))
	for _, s := range students {
		sums[s.SubjectID] += s.Marks
		counts[s.SubjectID]++
	}

	averages := make([]models.SubjectAverage, 0, len(subjects))
	for _, subject := range subjects {
		entry := models.SubjectAverage{
			SubjectID:    subject.ID,
			SubjectName:  subject.Name,
			StudentCount: counts[subject.ID],
		}
		if entry.StudentCount > 0 {
			avg := float64(sums[subject.ID]) / float64(entry.StudentCount)
			entry.AvgMarks = &avg
		}
		averages = append(averages, entry)
	}
	return averages
}

func roundPercent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
