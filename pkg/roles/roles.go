// Package roles names the three platform roles shared by every service.
package roles

const (
	Admin   = "admin"
	Teacher = "teacher"
	Student = "student"
)

var displayNames = map[string]string{
	Admin:   "Администратор",
	Teacher: "Преподаватель",
	Student: "Студент",
}

// DisplayName human readable role name; unknown roles are returned unchanged
func DisplayName(role string) string {
	if n, ok := displayNames[role]; ok {
		return n
	}
	return role
}

// Valid reports whether role is one of the platform roles
func Valid(role string) bool {
	_, ok := displayNames[role]
	return ok
}
