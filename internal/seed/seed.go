// Package seed loads the sample catalogue used for demos and local development.
package seed

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/mind-engage/eduhub/internal/announcement"
	"github.com/mind-engage/eduhub/internal/course"
	"github.com/mind-engage/eduhub/internal/quiz"
)

type Stores struct {
	Courses       course.Store
	Quizzes       quiz.Store
	Announcements announcement.Store
}

// Demo inserts the sample catalogue when no course, quiz or announcement
// exists yet. It reports whether anything was written.
func Demo(ctx context.Context, s Stores) (bool, error) {
	for _, count := range []func(context.Context) (int, error){s.Courses.Count, s.Quizzes.Count, s.Announcements.Count} {
		n, err := count(ctx)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}

	courses, quizzes := demoCourses(), demoQuizzes()
	for _, a := range announcements {
		if _, err := s.Announcements.Create(ctx, a); err != nil {
			return false, errors.Wrap(err, "seed announcement")
		}
	}
	for _, c := range courses {
		if _, err := s.Courses.Create(ctx, c); err != nil {
			return false, errors.Wrapf(err, "seed course %s", c.ID)
		}
	}
	for _, q := range quizzes {
		if err := q.Validate(); err != nil {
			return false, errors.Wrapf(err, "seed quiz %s", q.ID)
		}
		if _, err := s.Quizzes.Create(ctx, q); err != nil {
			return false, errors.Wrapf(err, "seed quiz %s", q.ID)
		}
	}
	log.Printf("seed: loaded %d courses, %d quizzes, %d announcements", len(courses), len(quizzes), len(announcements))
	return true, nil
}

const placeholderImage = "https://placehold.co/600x400.png"

var announcements = []announcement.Announcement{
	{
		Title:   "Welcome to EduHub!",
		Content: "Explore our new platform and start your learning journey today. We have a wide range of courses to help you achieve your goals.",
	},
	{
		Title:   "New Course: Advanced JavaScript",
		Content: "Enroll in our latest course on Advanced JavaScript concepts, including asynchronous programming, ES6+ features, and more.",
	},
}

func demoCourses() []course.Course {
	return []course.Course{
		{
			ID:          "course-1",
			Title:       "Introduction to Web Development",
			Description: "Learn the fundamentals of web development, including HTML, CSS, and JavaScript. Build your first website from scratch.",
			ImageURL:    placeholderImage,
			Author:      "Jane Doe",
			Duration:    "8 Weeks",
			Category:    "Web Development",
			Modules: []course.Module{{
				Title: "HTML",
				Lessons: []course.Lesson{
					{Title: "Document structure", Content: "Every page starts with a doctype, a head and a body."},
					{Title: "HTML Basics Quiz", QuizID: "quiz-1"},
				},
			}},
		},
		{
			ID:          "course-2",
			Title:       "Python for Data Science",
			Description: "Dive into the world of data science with Python. Master libraries like NumPy, Pandas, and Matplotlib.",
			ImageURL:    placeholderImage,
			Author:      "John Smith",
			Duration:    "12 Weeks",
			Category:    "Data Science",
			Modules: []course.Module{{
				Title: "Python fundamentals",
				Lessons: []course.Lesson{
					{Title: "Functions", Content: "Functions are defined with the def keyword."},
					{Title: "Python Fundamentals Quiz", QuizID: "quiz-2"},
				},
			}},
		},
		{
			ID:          "course-3",
			Title:       "Digital Marketing Fundamentals",
			Description: "Understand the core principles of digital marketing, including SEO, content marketing, and social media strategy.",
			ImageURL:    placeholderImage,
			Author:      "Alice Brown",
			Duration:    "6 Weeks",
			Category:    "Marketing",
		},
	}
}

func demoQuizzes() []quiz.Quiz {
	return []quiz.Quiz{
		{
			ID:          "quiz-1",
			CourseID:    "course-1",
			Title:       "HTML Basics Quiz",
			Description: "Test your knowledge of basic HTML tags and structure.",
			Questions: []quiz.Question{
				{ID: "q1-1", Text: "What does HTML stand for?", Options: []string{"Hyper Text Markup Language", "High Tech Modern Language", "Hyperlink and Text Markup Language"}, CorrectAnswerIndex: 0, Type: quiz.TypeMultipleChoice},
				{ID: "q1-2", Text: "The <p> tag is used for paragraphs.", Options: []string{"True", "False"}, CorrectAnswerIndex: 0, Type: quiz.TypeTrueFalse},
			},
		},
		{
			ID:          "quiz-2",
			CourseID:    "course-2",
			Title:       "Python Fundamentals Quiz",
			Description: "Assess your understanding of basic Python syntax and concepts.",
			Questions: []quiz.Question{
				{ID: "q2-1", Text: "Which keyword is used to define a function in Python?", Options: []string{"func", "def", "function"}, CorrectAnswerIndex: 1, Type: quiz.TypeMultipleChoice},
				{ID: "q2-2", Text: "Python is a statically typed language.", Options: []string{"True", "False"}, CorrectAnswerIndex: 1, Type: quiz.TypeTrueFalse},
			},
		},
	}
}
