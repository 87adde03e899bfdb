package service

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
)

func snapshot() *model.Snapshot {
	return &model.Snapshot{
		ID:             1,
		Date:           "2026-09-01",
		TimeStart:      "09:00",
		TimeEnd:        "10:30",
		SubjectName:    "Базы данных",
		TeacherID:      7,
		GroupID:        3,
		ClassroomName:  "A-101",
		LessonTypeName: "лекция",
	}
}

func TestRenderMessage_Create(t *testing.T) {
	msg := renderMessage(model.ChangeCreate, nil, snapshot(), names{group: "ПО-21", teachers: map[uint]string{7: "Иванов И.И."}})
	if msg.Subject != "Новое занятие" {
		t.Errorf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"01.09.2026", "09:00", "Базы данных", "ПО-21", "Иванов И.И."} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html lacks %q: %s", want, msg.HTML)
		}
	}
}

func TestRenderMessage_UpdateListsOnlyChanges(t *testing.T) {
	before, after := snapshot(), snapshot()
	after.ClassroomName = "B-202"

	msg := renderMessage(model.ChangeUpdate, before, after, names{})
	if !strings.Contains(msg.HTML, "A-101 → B-202") {
		t.Errorf("html lacks diff: %s", msg.HTML)
	}
	if strings.Contains(msg.HTML, "Базы данных") {
		t.Errorf("unchanged field listed: %s", msg.HTML)
	}
}

func TestRenderMessage_DeleteEscapes(t *testing.T) {
	before := snapshot()
	before.SubjectName = "<script>"

	msg := renderMessage(model.ChangeDelete, before, nil, names{})
	if msg.Subject != "Занятие отменено" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if strings.Contains(msg.HTML, "<script>") || !strings.Contains(msg.HTML, "&lt;script&gt;") {
		t.Errorf("subject name not escaped: %s", msg.HTML)
	}
	// unresolved teacher falls back to the id
	if !strings.Contains(msg.HTML, "#7") {
		t.Errorf("teacher fallback missing: %s", msg.HTML)
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2026-12-31"); got != "31.12.2026" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate("soon"); got != "soon" {
		t.Errorf("formatDate passthrough = %q", got)
	}
}

func TestBuildCalendar(t *testing.T) {
	entries := []dto.ScheduleResponse{
		{ID: 1, Date: "2026-09-01", TimeStart: "09:00", TimeEnd: "10:30", SubjectName: "Базы данных", LessonTypeName: "лекция", ClassroomName: "A-101"},
		{ID: 2, Date: "2026-09-02", TimeStart: "11:00", TimeEnd: "12:30", SubjectName: "Сети"},
		{ID: 3, Date: "bad", TimeStart: "11:00", TimeEnd: "12:30", SubjectName: "Пропуск"},
	}

	out := string(buildCalendar(entries, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), zap.NewNop()))

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR") {
		t.Errorf("not a calendar: %.40s", out)
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("events = %d, want 2", n)
	}
	for _, want := range []string{
		"UID:schedule-1@edulife",
		"SUMMARY:Базы данных (лекция)",
		"LOCATION:A-101",
		"SUMMARY:Сети",
		"METHOD:PUBLISH",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar lacks %q", want)
		}
	}
	if strings.Contains(out, "Пропуск") {
		t.Error("entry with bad date was exported")
	}
}
