package handler

import (
	"fmt"
	"net/http"
	"time"

	"session-planner/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportRoster handles GET /sessions/:id/roster.xlsx?code=MANAGEMENT_CODE.
// Organizer-only download of the attendee roster. Attendance codes and client
// ids are never part of the export.
func (h *SessionHandler) ExportRoster(c *gin.Context) {
	view, err := h.Svc.Roster(c.Param("id"), c.Query("code"))
	if err != nil {
		fail(c, err, "Invalid management code")
		return
	}

	f := excelize.NewFile()
	sheetName := "Roster"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Fail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"#", "Name", "Joined at"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx, a := range view.Attendees {
		row := idx + 2
		name := a.Name
		if name == "" {
			name = "(anonymous)"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), idx+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), a.CreatedAt.Format("2006-01-02 15:04"))
	}

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "C", "C", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"roster_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Fail(c, http.StatusInternalServerError, "Internal error")
	}
}
