package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/Gama646/quizdash/internal/bank"
	qz "github.com/Gama646/quizdash/internal/quiz"
	"github.com/Gama646/quizdash/internal/router"
	"github.com/Gama646/quizdash/internal/screen"
	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/components"
	"github.com/Gama646/quizdash/internal/ui/layout"
)

type phase int

const (
	phaseName phase = iota
	phaseTopic
	phaseQuestions
	phaseReview
	phaseSaving
	phaseDone
)

const nameLimit = 64

// QuizScreen walks a learner from their name to a stored score.
type QuizScreen struct {
	bank   *bank.Bank
	store  store.Store
	logger *zap.Logger
	now    func() time.Time

	phase       phase
	presetTopic string
	name        string
	input       components.TextInput
	topics      components.Menu
	session     *qz.Session
	choices     []components.MultiChoice
	current     int
	submit      components.Button
	result      qz.Result
	saveErr     error
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.InputCapturer = (*QuizScreen)(nil)

// New creates a quiz screen. A non-blank name skips the name prompt and a
// topic skips the topic menu once the name is known.
func New(b *bank.Bank, st store.Store, logger *zap.Logger, name, topic string) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &QuizScreen{
		bank:        b,
		store:       st,
		logger:      logger.Named("quiz"),
		now:         time.Now,
		presetTopic: topic,
		input:       components.NewTextInput("Your name", nameLimit),
	}
	q.topics = q.topicMenu()
	q.submit = components.NewButton("Submit", true, q.save)

	if name != "" {
		q.input.SetValue(name)
		q.confirmName()
	}
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	if q.phase == phaseName {
		return q.input.Init()
	}
	return nil
}

func (q *QuizScreen) Title() string {
	if q.session != nil {
		return "Quiz: " + q.session.Topic
	}
	return "Take Quiz"
}

// CapturesEsc keeps Esc inside the screen while reviewing answers and
// while the attempt is being saved.
func (q *QuizScreen) CapturesEsc() bool {
	return q.phase == phaseReview || q.phase == phaseSaving
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.phase {
	case phaseName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseTopic:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestions:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case phaseReview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "1-5", Description: "Edit answer"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Home"},
			{Key: "R", Description: "Another quiz"},
		}
	}
	return nil
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicChosenMsg:
		q.start(msg.Topic)
		return q, nil

	case savedMsg:
		return q.handleSaved(msg)

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}

	if q.phase == phaseName {
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch q.phase {
	case phaseName:
		if key == "enter" {
			q.confirmName()
			return q, nil
		}
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd

	case phaseTopic:
		var cmd tea.Cmd
		q.topics, cmd = q.topics.Update(msg)
		return q, cmd

	case phaseQuestions:
		switch key {
		case "left", "shift+tab":
			if q.current > 0 {
				q.current--
			}
			return q, nil
		case "right", "tab":
			q.advance()
			return q, nil
		}
		q.choices[q.current], _ = q.choices[q.current].Update(msg)
		q.record(q.current)
		if (key == "enter" || key == "space") && q.choices[q.current].Answered() {
			q.advance()
		}
		return q, nil

	case phaseReview:
		switch key {
		case "esc", "left":
			q.phase = phaseQuestions
			q.current = len(q.choices) - 1
			return q, nil
		}
		if n := int(msg.Code - '0'); msg.Text != "" && n >= 1 && n <= len(q.choices) {
			q.phase = phaseQuestions
			q.current = n - 1
			return q, nil
		}
		var cmd tea.Cmd
		q.submit, cmd = q.submit.Update(msg)
		return q, cmd

	case phaseDone:
		switch key {
		case "enter":
			return q, func() tea.Msg { return router.PopToRootMsg{} }
		case "r":
			next := New(q.bank, q.store, q.logger, q.name, "")
			return q, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}

	return q, nil
}

func (q *QuizScreen) confirmName() {
	name := q.input.Value()
	if name == "" {
		q.errMsg = "Please enter your name to start."
		return
	}
	q.name = name
	q.errMsg = ""
	q.phase = phaseTopic
	if q.presetTopic != "" {
		q.start(q.presetTopic)
	}
}

func (q *QuizScreen) topicMenu() components.Menu {
	topics := q.bank.Topics()
	items := make([]components.MenuItem, 0, len(topics))
	for _, topic := range topics {
		items = append(items, components.MenuItem{
			Label: topic,
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{Topic: topic} }
			},
		})
	}
	return components.NewMenu(items)
}

// start begins the questions for topic, staying on the topic menu when
// the topic is unknown.
func (q *QuizScreen) start(topic string) {
	s, err := qz.NewSession(q.bank, q.name, topic)
	if err != nil {
		var nf *bank.ErrTopicNotFound
		if errors.As(err, &nf) {
			q.errMsg = err.Error()
			q.phase = phaseTopic
			return
		}
		q.errMsg = err.Error()
		q.phase = phaseName
		return
	}

	q.session = s
	q.errMsg = ""
	q.current = 0
	q.choices = make([]components.MultiChoice, len(s.Questions))
	for i, question := range s.Questions {
		q.choices[i] = components.NewMultiChoice(question.Prompt, question.Options)
	}
	q.phase = phaseQuestions

	q.logger.Info("quiz started",
		zap.String("session", s.ID),
		zap.String("topic", s.Topic),
		zap.Int("questions", len(s.Questions)))
}

func (q *QuizScreen) record(i int) {
	if c := q.choices[i]; c.Answered() {
		_ = q.session.Answer(i, c.Chosen())
	}
}

func (q *QuizScreen) advance() {
	if q.current < len(q.choices)-1 {
		q.current++
		return
	}
	q.phase = phaseReview
}

// save scores the session and appends the attempt in the background.
func (q *QuizScreen) save() tea.Cmd {
	q.phase = phaseSaving
	q.result = q.session.Result()
	attempt := q.result.Attempt(q.session.Name, q.now())

	q.logger.Info("quiz submitted",
		zap.String("session", q.session.ID),
		zap.String("topic", q.result.Topic),
		zap.Int("score", q.result.Score),
		zap.Int("total", q.result.Total))

	st := q.store
	return func() tea.Msg {
		saved, err := st.Append(context.Background(), attempt)
		return savedMsg{Attempt: saved, Err: err}
	}
}

func (q *QuizScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	q.phase = phaseDone
	for i, question := range q.session.Questions {
		q.choices[i].Reveal(question.CorrectIndex)
	}

	if msg.Err != nil {
		q.saveErr = msg.Err
		q.logger.Error("save result failed", zap.String("session", q.session.ID), zap.Error(msg.Err))
		return q, nil
	}
	return q, func() tea.Msg { return screen.ResultsChangedMsg{} }
}
