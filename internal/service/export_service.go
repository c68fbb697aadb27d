package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/srs-go-api/internal/access"
	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
	"github.com/noah-isme/srs-go-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "xlsx"
)

// studentExportHeaders is a compatibility contract; downstream CSV consumers
// depend on this exact column order.
var studentExportHeaders = []string{"Name", "Roll No", "Subject", "Marks", "Grade"}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type scopedStudentLister interface {
	List(ctx context.Context, scope access.Scope, filter models.StudentFilter) ([]models.StudentDetail, int, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type titledRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders scoped student sets into downloadable files.
type ExportService struct {
	students scopedStudentLister
	reports  *ReportService
	activity activityRecorder
	csv      datasetRenderer
	excel    datasetRenderer
	pdf      titledRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(students scopedStudentLister, reports *ReportService, activity activityRecorder, csv, excel datasetRenderer, pdf titledRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if excel == nil {
		excel = export.NewExcelExporter("Students")
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{students: students, reports: reports, activity: activity, csv: csv, excel: excel, pdf: pdf, logger: logger}
}

// Students renders the caller's scoped, filtered student set. An empty set
// still yields a file with the header row. Export shares the add-student
// permission with create.
func (s *ExportService) Students(ctx context.Context, principal models.Principal, search string, format ExportFormat) (*ExportFile, error) {
	if !access.Can(principal, access.PermAddStudent) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to export students")
	}

	scope := access.ResolveListScope(principal)
	students, _, err := s.students.List(ctx, scope, models.StudentFilter{Search: search})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	dataset := export.Dataset{Headers: studentExportHeaders, Rows: make([][]string, 0, len(students))}
	for _, student := range students {
		dataset.Rows = append(dataset.Rows, []string{
			student.Name,
			strconv.Itoa(student.RollNo),
			student.SubjectName,
			strconv.Itoa(student.Marks),
			string(student.Grade()),
		})
	}

	var file ExportFile
	var description string
	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		file = ExportFile{Filename: "students.csv", ContentType: "text/csv", Data: payload}
		description = "Exported students to CSV"
	case FormatExcel:
		payload, err := s.excel.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render xlsx")
		}
		file = ExportFile{
			Filename:    "students.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        payload,
		}
		description = "Exported students to Excel"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	userID := principal.UserID
	if err := s.activity.Record(ctx, &userID, models.ActionExport, description, principal.IP, principal.UserAgent); err != nil {
		return nil, err
	}
	return &file, nil
}

// DashboardSummary renders the admin dashboard into a one-page PDF.
func (s *ExportService) DashboardSummary(ctx context.Context, principal models.Principal) (*ExportFile, error) {
	stats, _, err := s.reports.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Students", strconv.Itoa(stats.TotalStudents)},
			{"Average Marks", formatAverage(stats.AvgMarks)},
			{"Pass Percent", fmt.Sprintf("%.2f", stats.PassPercent)},
			{"Fail Percent", fmt.Sprintf("%.2f", stats.FailPercent)},
			{"Grade A+", strconv.Itoa(stats.GradeDistribution[models.GradeAPlus])},
			{"Grade A", strconv.Itoa(stats.GradeDistribution[models.GradeA])},
			{"Grade B", strconv.Itoa(stats.GradeDistribution[models.GradeB])},
			{"Grade C", strconv.Itoa(stats.GradeDistribution[models.GradeC])},
		},
	}

	payload, err := s.pdf.Render(dataset, "Student Performance Summary")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}

	userID := principal.UserID
	if err := s.activity.Record(ctx, &userID, models.ActionExport, "Exported dashboard summary to PDF", principal.IP, principal.UserAgent); err != nil {
		return nil, err
	}
	return &ExportFile{Filename: "dashboard.pdf", ContentType: "application/pdf", Data: payload}, nil
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *avg)
}
