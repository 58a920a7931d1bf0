package services

import (
	"bytes"
	"fmt"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/storage"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ReportService builds xlsx fee reports from the aggregation output and
// archives copies to S3.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildFeeReport renders the per-student stats of a filtered window into an
// xlsx workbook with a per-student sheet and a monthly roll-up sheet.
func (rs *ReportService) BuildFeeReport(teacherID string, criteria FilterCriteria) ([]byte, int, error) {
	records, classes, err := FetchTeacherRecords(teacherID, criteria)
	if err != nil {
		return nil, 0, err
	}
	classIndex := BuildClassIndex(classes)
	studentStats := AggregateStudents(records, classIndex)
	monthly := SummarizeByMonth(records, classIndex)
	summary := Summarize(records, classIndex)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Students"
	f.SetSheetName(f.GetSheetName(0), sheet)
	headers := []string{"Class", "Student", "Present", "Late", "Absent", "Excused", "Makeup", "Sessions", "Total Fee"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, stats := range studentStats {
		className := ""
		if class := classIndex[stats.ClassID]; class != nil {
			className = class.ClassName
		}
		studentLabel := stats.StudentName
		if studentLabel == "" {
			studentLabel = stats.StudentID
		}
		values := []interface{}{
			className, studentLabel,
			stats.Present, stats.Late, stats.Absent, stats.Excused, stats.Makeup,
			stats.TotalRecords, stats.TotalFee,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	// Grand total under the table
	totalRow := len(studentStats) + 3
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	f.SetCellValue(sheet, cell, "Total")
	cell, _ = excelize.CoordinatesToCellName(9, totalRow)
	f.SetCellValue(sheet, cell, summary.TotalFee)

	monthSheet := "Monthly"
	f.NewSheet(monthSheet)
	monthHeaders := []string{"Month", "Present", "Late", "Absent", "Excused", "Makeup", "Records", "Total Fee"}
	for i, h := range monthHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(monthSheet, cell, h)
	}
	for row, month := range monthly {
		values := []interface{}{
			month.Month,
			month.Present, month.Late, month.Absent, month.Excused, month.Makeup,
			month.TotalRecords, month.TotalFee,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(monthSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, 0, fmt.Errorf("failed to render report: %v", err)
	}
	return buf.Bytes(), len(studentStats), nil
}

// ArchiveReport uploads a rendered report to S3 and records it. Upload
// failures are recorded on the archive row instead of failing the export.
func (rs *ReportService) ArchiveReport(teacherID, fileName string, criteria FilterCriteria, data []byte, rowCount int) *models.ReportArchive {
	archive := &models.ReportArchive{
		TeacherID: teacherID,
		FileName:  fileName,
		DateFrom:  criteria.DateFrom,
		DateTo:    criteria.DateTo,
		RowCount:  rowCount,
		FileSize:  int64(len(data)),
		Status:    "pending",
	}
	if err := database.DB.Create(archive).Error; err != nil {
		logrus.WithError(err).Error("Failed to record report archive")
		return nil
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		rs.markFailed(archive, err)
		return archive
	}
	key, err := storageService.UploadReport(teacherID, fileName, data)
	if err != nil {
		rs.markFailed(archive, err)
		return archive
	}

	archive.S3Key = key
	archive.Status = "completed"
	if err := database.DB.Model(archive).Updates(map[string]interface{}{
		"s3_key": key,
		"status": "completed",
	}).Error; err != nil {
		logrus.WithError(err).Error("Failed to finalize report archive")
	}
	return archive
}

func (rs *ReportService) markFailed(archive *models.ReportArchive, cause error) {
	logrus.WithError(cause).Warn("Report archive upload failed")
	archive.Status = "failed"
	archive.Error = cause.Error()
	if err := database.DB.Model(archive).Updates(map[string]interface{}{
		"status": "failed",
		"error":  cause.Error(),
	}).Error; err != nil {
		logrus.WithError(err).Error("Failed to mark report archive as failed")
	}
}

// ReportFileName builds a dated file name for one export.
func ReportFileName(criteria FilterCriteria) string {
	from := criteria.DateFrom
	to := criteria.DateTo
	if from == "" {
		from = "all"
	}
	if to == "" {
		to = "all"
	}
	return fmt.Sprintf("fee_report_%s_%s_%s.xlsx", from, to, time.Now().Format("20060102_150405"))
}
