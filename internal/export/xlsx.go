package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/CS-UT/course-plan-sub000/internal/layout"
	"github.com/CS-UT/course-plan-sub000/internal/model"
	"github.com/CS-UT/course-plan-sub000/internal/timeutil"
)

// WriteXLSX renders the selection as a workbook: a "Timetable" sheet with
// one row per session in Saturday-first day order, and an "Exams" sheet
// listing exam slots. Hover-only previews are excluded. Sessions sharing
// an overlap cluster are marked in the Clash column.
func WriteXLSX(courses []model.SelectedCourse, cfg layout.Config) (*bytes.Buffer, error) {
	persisted := make([]model.SelectedCourse, 0, len(courses))
	for _, sc := range courses {
		if sc.Mode == model.ModeHover {
			continue
		}
		persisted = append(persisted, sc)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Timetable"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "C", 32)
	f.SetColWidth(sheet, "D", "F", 10)
	f.SetColWidth(sheet, "G", "H", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Day", "Time", "Course", "Group", "Units", "Clash", "Instructor", "Location"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, 1), h)
		f.SetCellStyle(sheet, cell(col, 1), cell(col, 1), headerStyle)
	}

	week := layout.PlaceWeek(persisted, cfg)
	byKey := indexCourses(persisted)

	row := 2
	for _, day := range timeutil.DisplayOrder() {
		for _, p := range week[day] {
			course := byKey[p.CourseCode+"/"+p.Group]
			clash := "-"
			if p.Clustered {
				clash = "yes"
			}
			f.SetCellValue(sheet, cell("A", row), timeutil.DayName(day))
			f.SetCellValue(sheet, cell("B", row), p.Session.StartTime+"-"+p.Session.EndTime)
			f.SetCellValue(sheet, cell("C", row), p.CourseName)
			f.SetCellValue(sheet, cell("D", row), p.Group)
			f.SetCellValue(sheet, cell("E", row), course.Units)
			f.SetCellValue(sheet, cell("F", row), clash)
			f.SetCellValue(sheet, cell("G", row), course.Instructor)
			f.SetCellValue(sheet, cell("H", row), course.Location)
			row++
		}
	}

	writeExamSheet(f, persisted, headerStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeExamSheet(f *excelize.File, courses []model.SelectedCourse, headerStyle int) {
	withExam := make([]model.SelectedCourse, 0, len(courses))
	for _, sc := range courses {
		if sc.ExamDate != "" {
			withExam = append(withExam, sc)
		}
	}
	if len(withExam) == 0 {
		return
	}

	sort.SliceStable(withExam, func(i, j int) bool {
		a := timeutil.NormalizeDigits(withExam[i].ExamDate + " " + withExam[i].ExamTime)
		b := timeutil.NormalizeDigits(withExam[j].ExamDate + " " + withExam[j].ExamTime)
		return a < b
	})

	sheet := "Exams"
	if _, err := f.NewSheet(sheet); err != nil {
		return
	}
	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "D", 14)

	headers := []string{"Course", "Group", "Exam Date", "Exam Time"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, 1), h)
		f.SetCellStyle(sheet, cell(col, 1), cell(col, 1), headerStyle)
	}

	for i, sc := range withExam {
		row := i + 2
		f.SetCellValue(sheet, cell("A", row), sc.Name)
		f.SetCellValue(sheet, cell("B", row), sc.Group)
		f.SetCellValue(sheet, cell("C", row), sc.ExamDate)
		f.SetCellValue(sheet, cell("D", row), sc.ExamTime)
	}
}

func indexCourses(courses []model.SelectedCourse) map[string]model.Course {
	out := make(map[string]model.Course, len(courses))
	for _, sc := range courses {
		out[sc.Code+"/"+sc.Group] = sc.Course
	}
	return out
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
