package service

import "errors"

var (
	// lookups
	ErrGroupNotFound   = errors.New("Группа не найдена")
	ErrStudentNotFound = errors.New("Студент не найден")
	ErrTeacherNotFound = errors.New("Преподаватель не найден")
	ErrNoGroup         = errors.New("Студент не привязан к группе")

	// access
	ErrNotSelf    = errors.New("Документы можно оформлять только на себя")
	ErrNotAllowed = errors.New("Недостаточно прав для получения данных")

	// input
	ErrInvalidRange = errors.New("start_date не может быть позже end_date")
	ErrRejected     = errors.New("Сервис отклонил запрос")

	// siblings
	ErrAuthDown     = errors.New("Сервис авторизации недоступен")
	ErrScheduleDown = errors.New("Сервис расписания недоступен")
	ErrQRDown       = errors.New("Сервис посещаемости недоступен")
	ErrDocumentDown = errors.New("Сервис документов недоступен")
)
