package quiz

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a transient message for the student (a toast in the UI).
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

type Notifier interface {
	Notify(n Notice)
}

type Navigator interface {
	Navigate(target string)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type NavigatorFunc func(string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

const (
	CoursePathPrefix = "/student/courses/"
	FallbackPath     = "/student/dashboard"
)

// Controller drives a Session on behalf of a student and talks to the
// notification and navigation collaborators. It never persists anything.
type Controller struct {
	session   *Session
	notify    Notifier
	nav       Navigator
	dismissed bool
}

func NewController(s *Session, n Notifier, nav Navigator) *Controller {
	if n == nil {
		n = NotifierFunc(func(Notice) {})
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Controller{session: s, notify: n, nav: nav}
}

// Session exposes the underlying state for rendering. Callers must not mutate it directly.
func (c *Controller) Session() *Session { return c.session }

func (c *Controller) SelectAnswer(option int) error {
	err := c.session.SelectAnswer(option)
	if errors.Is(err, ErrInvalidOption) {
		log.Printf("quiz: rejected option %d on question %d of quiz %s: %v",
			option, c.session.CurrentIndex(), c.session.QuizID(), err)
	}
	return err
}

// Next advances, submitting on the last question.
// The "last question" notice belongs to Submit only.
func (c *Controller) Next() error {
	err := c.session.Advance()
	switch {
	case errors.Is(err, ErrAnswerRequired):
		c.answerRequired(false)
	case err == nil && c.session.Completed():
		c.submitted()
	}
	return err
}

func (c *Controller) Previous() error {
	return c.session.GoBack()
}

func (c *Controller) Submit() error {
	err := c.session.Submit()
	switch {
	case errors.Is(err, ErrAnswerRequired):
		c.answerRequired(true)
	case err == nil:
		c.submitted()
	}
	return err
}

func (c *Controller) Review() ([]ReviewItem, error) {
	return c.session.Review()
}

// Dismiss closes the results view and requests navigation back to the course.
// Only the first call navigates.
func (c *Controller) Dismiss() error {
	if !c.session.Completed() {
		return ErrSessionInProgress
	}
	if c.dismissed {
		return nil
	}
	c.dismissed = true
	c.nav.Navigate(ReturnPath(c.session.CourseID()))
	return nil
}

// ReturnPath is where a student lands after leaving a quiz.
func ReturnPath(courseID string) string {
	if courseID == "" {
		return FallbackPath
	}
	return CoursePathPrefix + courseID
}

func (c *Controller) answerRequired(last bool) {
	desc := "Please select an answer before proceeding."
	if last {
		desc = "Please select an answer for the last question."
	}
	c.notify.Notify(Notice{Title: "No Answer Selected", Description: desc, Variant: VariantDestructive})
}

func (c *Controller) submitted() {
	score, _ := c.session.Score()
	c.notify.Notify(Notice{
		Title:       "Quiz Submitted!",
		Description: fmt.Sprintf("You scored %d out of %d.", score, c.session.Total()),
		Variant:     VariantDefault,
	})
}
