package quiz

import "github.com/pkg/errors"

type Phase string

const (
	PhaseInProgress Phase = "in-progress"
	PhaseCompleted  Phase = "completed"
)

// slot is one recorded answer; ok=false means unanswered (index 0 is a real answer).
type slot struct {
	index int
	ok    bool
}

// Session is one attempt at a quiz: InProgress(i) until submit, then Completed(score).
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	quiz    Quiz
	current int
	answers []slot
	phase   Phase
	score   int
}

// NewSession starts at the first question with every answer unanswered.
// The quiz is copied; later changes to q do not affect the session.
func NewSession(q Quiz) (*Session, error) {
	if err := checkPlayable(q); err != nil {
		return nil, err
	}
	return &Session{
		quiz:    q.Clone(),
		answers: make([]slot, len(q.Questions)),
		phase:   PhaseInProgress,
	}, nil
}

func checkPlayable(q Quiz) error {
	if len(q.Questions) == 0 {
		return errors.Wrap(ErrInvalidQuiz, "no questions")
	}
	for i, qq := range q.Questions {
		if len(qq.Options) < 2 {
			return errors.Wrapf(ErrInvalidQuiz, "question %d has fewer than two options", i)
		}
		if qq.CorrectAnswerIndex < 0 || qq.CorrectAnswerIndex >= len(qq.Options) {
			return errors.Wrapf(ErrInvalidQuiz, "question %d: correct answer index %d out of range", i, qq.CorrectAnswerIndex)
		}
	}
	return nil
}

func (s *Session) QuizID() string    { return s.quiz.ID }
func (s *Session) CourseID() string  { return s.quiz.CourseID }
func (s *Session) Phase() Phase      { return s.phase }
func (s *Session) CurrentIndex() int { return s.current }
func (s *Session) Total() int        { return len(s.quiz.Questions) }
func (s *Session) IsLast() bool      { return s.current == len(s.quiz.Questions)-1 }
func (s *Session) Completed() bool   { return s.phase == PhaseCompleted }

func (s *Session) CurrentQuestion() Question {
	return s.quiz.Questions[s.current].clone()
}

// Score is valid only once the session is completed.
func (s *Session) Score() (int, bool) {
	if s.phase != PhaseCompleted {
		return 0, false
	}
	return s.score, true
}

// Answer returns the recorded option for question i.
func (s *Session) Answer(i int) (int, bool) {
	if i < 0 || i >= len(s.answers) {
		return 0, false
	}
	a := s.answers[i]
	return a.index, a.ok
}

// SelectedAnswers returns one entry per question, nil when unanswered.
func (s *Session) SelectedAnswers() []*int {
	out := make([]*int, len(s.answers))
	for i, a := range s.answers {
		if a.ok {
			v := a.index
			out[i] = &v
		}
	}
	return out
}

// Progress is (current+1)/total.
func (s *Session) Progress() float64 {
	return float64(s.current+1) / float64(len(s.quiz.Questions))
}

// SelectAnswer records option for the current question, replacing any earlier choice.
func (s *Session) SelectAnswer(option int) error {
	if s.phase == PhaseCompleted {
		return ErrSessionCompleted
	}
	if option < 0 || option >= len(s.quiz.Questions[s.current].Options) {
		return errors.Wrapf(ErrInvalidOption, "option %d for question %d", option, s.current)
	}
	s.answers[s.current] = slot{index: option, ok: true}
	return nil
}

// Advance moves to the next question, or submits on the last one.
func (s *Session) Advance() error {
	if s.phase == PhaseCompleted {
		return ErrSessionCompleted
	}
	if !s.answers[s.current].ok {
		return ErrAnswerRequired
	}
	if !s.IsLast() {
		s.current++
		return nil
	}
	return s.Submit()
}

// GoBack moves to the previous question; the answer recorded there is kept.
func (s *Session) GoBack() error {
	if s.phase == PhaseCompleted {
		return ErrSessionCompleted
	}
	if s.current == 0 {
		return ErrNoPreviousQuestion
	}
	s.current--
	return nil
}

// Submit scores the session and completes it. The last question must be answered.
func (s *Session) Submit() error {
	if s.phase == PhaseCompleted {
		return ErrSessionCompleted
	}
	if !s.answers[len(s.answers)-1].ok {
		return ErrAnswerRequired
	}
	score := 0
	for i, q := range s.quiz.Questions {
		if a := s.answers[i]; a.ok && a.index == q.CorrectAnswerIndex {
			score++
		}
	}
	s.score = score
	s.phase = PhaseCompleted
	return nil
}

type ReviewItem struct {
	QuestionID         string   `json:"questionId"`
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	StudentAnswerIndex *int     `json:"studentAnswerIndex"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	IsCorrect          bool     `json:"isCorrect"`
}

// Review lists every question with the student's answer, in quiz order.
func (s *Session) Review() ([]ReviewItem, error) {
	if s.phase != PhaseCompleted {
		return nil, ErrSessionInProgress
	}
	selected := s.SelectedAnswers()
	out := make([]ReviewItem, len(s.quiz.Questions))
	for i, q := range s.quiz.Questions {
		out[i] = ReviewItem{
			QuestionID:         q.ID,
			QuestionText:       q.Text,
			Options:            append([]string(nil), q.Options...),
			StudentAnswerIndex: selected[i],
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			IsCorrect:          selected[i] != nil && *selected[i] == q.CorrectAnswerIndex,
		}
	}
	return out, nil
}

// Snapshot is what the rendering layer sees. The correct answer is never included.
type Snapshot struct {
	QuizID         string          `json:"quizId"`
	CourseID       string          `json:"courseId,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Phase          Phase           `json:"phase"`
	Index          int             `json:"currentQuestionIndex"`
	Total          int             `json:"totalQuestions"`
	Progress       float64         `json:"progress"`
	IsLast         bool            `json:"isLast"`
	Question       *PublicQuestion `json:"question,omitempty"`
	SelectedAnswer *int            `json:"selectedAnswer"`
	AnsweredCount  int             `json:"answeredCount"`
	Score          *int            `json:"score,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		QuizID:      s.quiz.ID,
		CourseID:    s.quiz.CourseID,
		Title:       s.quiz.Title,
		Description: s.quiz.Description,
		Phase:       s.phase,
		Index:       s.current,
		Total:       len(s.quiz.Questions),
		Progress:    s.Progress(),
		IsLast:      s.IsLast(),
	}
	for _, a := range s.answers {
		if a.ok {
			snap.AnsweredCount++
		}
	}
	if s.phase == PhaseCompleted {
		score := s.score
		snap.Score = &score
		return snap
	}
	pq := s.quiz.Questions[s.current].Public()
	snap.Question = &pq
	if a := s.answers[s.current]; a.ok {
		v := a.index
		snap.SelectedAnswer = &v
	}
	return snap
}
