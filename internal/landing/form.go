package landing

import (
	"regexp"
	"strings"
)

// Status strings shown under the waitlist form.
const (
	MsgFieldsRequired = "Please fill in all fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgJoined         = "Thanks! We'll notify you when Rise Gum launches."
	MsgDuplicate      = "You're already on the waitlist! We'll notify you when Rise Gum launches."
	MsgJoinFailed     = "Failed to join waitlist. Please try again."
	MsgNetwork        = "Network error. Please check your connection and try again."
	MsgInFlight       = "Your request is being processed. Please wait."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form holds the three waitlist fields exactly as typed.
type Form struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	City  string `form:"city"`
}

// Trimmed returns the form with surrounding whitespace removed.
func (f Form) Trimmed() Form {
	return Form{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		City:  strings.TrimSpace(f.City),
	}
}

// Validate 返回本地校验失败时展示的提示；通过时返回空串。
func (f Form) Validate() string {
	t := f.Trimmed()
	if t.Name == "" || t.Email == "" || t.City == "" {
		return MsgFieldsRequired
	}
	if !emailPattern.MatchString(t.Email) {
		return MsgInvalidEmail
	}
	return ""
}

// Status is the single line of feedback rendered below the form.
type Status struct {
	Message string
	Success bool
}

// Empty reports whether there is nothing to show.
func (s Status) Empty() bool {
	return strings.TrimSpace(s.Message) == ""
}

func failureStatus(msg string) Status {
	return Status{Message: msg}
}

func successStatus(msg string) Status {
	return Status{Message: msg, Success: true}
}
