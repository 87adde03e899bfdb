package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
	"github.com/yerk0w/EduLifeFor-merge/pkg/notify"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

// names resolved from auth for one message
type names struct {
	group    string
	teachers map[uint]string
}

func (n names) teacher(id uint) string {
	if name := n.teachers[id]; name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

// renderMessage builds the message for one change
func renderMessage(changeType string, before, after *model.Snapshot, n names) notify.Message {
	switch changeType {
	case model.ChangeCreate:
		return notify.Message{
			Subject: "Новое занятие",
			HTML:    "<h3>Новое занятие в расписании</h3>" + entryList(after, n),
		}
	case model.ChangeDelete:
		return notify.Message{
			Subject: "Занятие отменено",
			HTML:    "<h3>Занятие отменено</h3>" + entryList(before, n),
		}
	default:
		return notify.Message{
			Subject: "Изменение в расписании",
			HTML:    "<h3>Изменение в расписании</h3>" + diffList(before, after, n),
		}
	}
}

type field struct {
	label string
	value func(s *model.Snapshot, n names) string
}

var fields = []field{
	{"Дата", func(s *model.Snapshot, _ names) string { return formatDate(s.Date) }},
	{"Время", func(s *model.Snapshot, _ names) string { return s.TimeStart + "–" + s.TimeEnd }},
	{"Предмет", func(s *model.Snapshot, _ names) string { return s.SubjectName }},
	{"Тип занятия", func(s *model.Snapshot, _ names) string { return s.LessonTypeName }},
	{"Аудитория", func(s *model.Snapshot, _ names) string { return s.ClassroomName }},
	{"Преподаватель", func(s *model.Snapshot, n names) string { return n.teacher(s.TeacherID) }},
}

func entryList(s *model.Snapshot, n names) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	if n.group != "" {
		item(&b, "Группа", n.group)
	}
	for _, f := range fields {
		item(&b, f.label, f.value(s, n))
	}
	b.WriteString("</ul>")
	return b.String()
}

// diffList lists changed fields as "old → new"; with nothing changed it falls back to the new entry
func diffList(before, after *model.Snapshot, n names) string {
	if before == nil || after == nil {
		if after != nil {
			return entryList(after, n)
		}
		return entryList(before, n)
	}

	var b strings.Builder
	changed := 0
	b.WriteString("<ul>")
	for _, f := range fields {
		oldV, newV := f.value(before, n), f.value(after, n)
		if oldV == newV {
			continue
		}
		changed++
		item(&b, f.label, oldV+" → "+newV)
	}
	b.WriteString("</ul>")

	if changed == 0 {
		return entryList(after, n)
	}
	return b.String()
}

func item(b *strings.Builder, label, value string) {
	b.WriteString("<li><b>")
	b.WriteString(html.EscapeString(label))
	b.WriteString(":</b> ")
	b.WriteString(html.EscapeString(value))
	b.WriteString("</li>")
}

// formatDate YYYY-MM-DD → dd.mm.yyyy, anything else is returned as is
func formatDate(s string) string {
	t, err := time.Parse(validate.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02.01.2006")
}
