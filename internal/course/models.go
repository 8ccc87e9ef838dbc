package course

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mind-engage/eduhub/internal/validate"
)

// AssetPrefix marks images served from the local blob store.
const AssetPrefix = "/assets/"

type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"required,min=2,max=150"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl,omitempty" validate:"omitempty,url"`
	QuizID   string `json:"quizId,omitempty"`
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title" validate:"required,min=2,max=150"`
	Lessons []Lesson `json:"lessons" validate:"dive"`
}

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,min=3,max=150"`
	Description string    `json:"description" validate:"required,min=10"`
	ImageURL    string    `json:"imageUrl" validate:"required,image_url"`
	Author      string    `json:"author" validate:"required,min=2"`
	Duration    string    `json:"duration" validate:"required,min=1"`
	Category    string    `json:"category" validate:"required,min=2"`
	Modules     []Module  `json:"modules,omitempty" validate:"dive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Status string

const (
	StatusActive  Status = "active"
	StatusDropped Status = "dropped"
)

type Enrollment struct {
	CourseID   string    `json:"courseId"`
	StudentID  string    `json:"studentId"`
	Status     Status    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func init() {
	validate.RegisterValidation("image_url", imageURL, "{0} must be a valid URL")
}

// imageURL accepts absolute http(s) URLs and paths into the asset store.
func imageURL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.HasPrefix(s, AssetPrefix) && len(s) > len(AssetPrefix) {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Normalize trims the form fields.
func (c *Course) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	c.Author = strings.TrimSpace(c.Author)
	c.Duration = strings.TrimSpace(c.Duration)
	c.Category = strings.TrimSpace(c.Category)
}

func (c Course) Validate() error {
	return validate.Struct(c)
}

// QuizIDs lists the quizzes referenced from lessons, in course order.
func (c Course) QuizIDs() []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.QuizID != "" && !seen[l.QuizID] {
				seen[l.QuizID] = true
				out = append(out, l.QuizID)
			}
		}
	}
	return out
}

func (c *Course) assignIDs() {
	for i := range c.Modules {
		m := &c.Modules[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		for j := range m.Lessons {
			if m.Lessons[j].ID == "" {
				m.Lessons[j].ID = uuid.NewString()
			}
		}
	}
}
