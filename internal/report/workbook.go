package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/post-review/internal/application/scenario"
)

const (
	postsSheet   = "Posts"
	historySheet = "History"
)

var (
	postsHeader   = []interface{}{"Name", "ID", "State", "Author", "Content", "Error"}
	historyHeader = []interface{}{"Post", "Index", "Entry"}
)

// WorkbookWriter exports scenario results to an .xlsx file
type WorkbookWriter struct {
	logger *zap.Logger
}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter(logger *zap.Logger) *WorkbookWriter {
	return &WorkbookWriter{logger: logger}
}

// Write saves one row per post on the Posts sheet and one row per history
// entry on the History sheet
func (ww *WorkbookWriter) Write(outputPath string, results []scenario.Result) error {
	ww.logger.Info("Writing workbook report",
		zap.String("output_path", outputPath),
		zap.Int("posts", len(results)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", postsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := ww.setRow(f, postsSheet, 1, postsHeader); err != nil {
		return err
	}
	if err := ww.setRow(f, historySheet, 1, historyHeader); err != nil {
		return err
	}

	historyRow := 2
	for i, r := range results {
		if err := ww.setRow(f, postsSheet, i+2, postRow(r)); err != nil {
			return err
		}

		for index, entry := range r.Post.Log().Entries() {
			if err := ww.setRow(f, historySheet, historyRow, []interface{}{r.Name, index, entry}); err != nil {
				return err
			}
			historyRow++
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	ww.logger.Info("Workbook report written", zap.String("output_path", outputPath))
	return nil
}

func postRow(r scenario.Result) []interface{} {
	var authorName, content, errText string
	if approved, ok := r.Post.Approved(); ok {
		authorName = approved.Author()
		content = approved.Content()
	}
	if r.Err != nil {
		errText = r.Err.Error()
	}
	return []interface{}{r.Name, r.Post.ID().String(), r.Post.State().String(), authorName, content, errText}
}

// setRow writes values starting at column A of the given row
func (ww *WorkbookWriter) setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
