package validate

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Layouts accepted by the custom tags
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var once sync.Once

// Register adds the project's tags to gin's validator engine:
//
//	hhmm    "15:04" clock time
//	isodate "2006-01-02" calendar date
//
// Safe to call from every router.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("hhmm", layoutFunc(TimeLayout))
		_ = v.RegisterValidation("isodate", layoutFunc(DateLayout))
	})
}

func layoutFunc(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(layout) {
			return false
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}

// IsDate reports whether s is a YYYY-MM-DD date
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil && len(s) == len(DateLayout)
}

// IsClock reports whether s is an HH:MM time
func IsClock(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil && len(s) == len(TimeLayout)
}
