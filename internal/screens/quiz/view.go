package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/Gama646/quizdash/internal/quiz"
	"github.com/Gama646/quizdash/internal/ui/components"
	"github.com/Gama646/quizdash/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch q.phase {
	case phaseName:
		body = q.renderName(cw)
	case phaseTopic:
		body = q.renderTopic(cw)
	case phaseQuestions:
		body = q.renderQuestion(cw)
	case phaseReview:
		body = q.renderReview(cw)
	case phaseSaving:
		body = components.Panel("", theme.Hint.Render("Saving your result..."), cw)
	case phaseDone:
		body = q.renderDone(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (q *QuizScreen) renderError() string {
	if q.errMsg == "" {
		return ""
	}
	return "\n\n" + theme.ErrorText.Render(q.errMsg)
}

func (q *QuizScreen) renderName(cw int) string {
	content := theme.Body.Render("Enter your name:") + "\n\n" +
		q.input.View() +
		q.renderError()
	return components.Panel("Take a Quiz", content, cw)
}

func (q *QuizScreen) renderTopic(cw int) string {
	content := theme.Body.Render(fmt.Sprintf("Hi %s! Choose a topic:", q.name)) + "\n\n" +
		q.topics.View() +
		q.renderError()
	return components.Panel("Take a Quiz", content, cw)
}

func (q *QuizScreen) renderQuestion(cw int) string {
	n := len(q.choices)
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", q.current+1, n),
		float64(q.current+1)/float64(n),
		false,
		cw-4,
	).View()

	content := progress + "\n\n" + q.choices[q.current].View()
	return components.Panel(q.session.Topic, content, cw)
}

func (q *QuizScreen) renderReview(cw int) string {
	var b strings.Builder
	for i, question := range q.session.Questions {
		b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%d. %s", i+1, question.Prompt)))
		b.WriteString("\n   ")
		if c := q.choices[i]; c.Answered() {
			b.WriteString(theme.Selected.Render(c.Chosen()))
		} else {
			b.WriteString(theme.Hint.Render("(no answer)"))
		}
		b.WriteString("\n")
	}

	if !q.session.Complete() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Unanswered questions count as wrong."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(q.submit.View())

	return components.Panel("Review your answers", b.String(), cw)
}

func (q *QuizScreen) renderDone(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Correct.Render(qz.FormatScore(q.result.Score, q.result.Total, q.result.Percentage)))
	b.WriteString("\n\n")

	if q.saveErr != nil {
		b.WriteString(theme.ErrorText.Render("Your result could not be saved: " + q.saveErr.Error()))
	} else {
		b.WriteString(theme.Hint.Render("Result saved."))
	}
	b.WriteString("\n\n")

	answers := q.session.Answers()
	for i, question := range q.session.Questions {
		line := fmt.Sprintf("%d. %s", i+1, question.Prompt)
		if question.IsCorrect(answers[i]) {
			b.WriteString(theme.Correct.Render("✓ " + line))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ " + line))
			b.WriteString("\n     ")
			b.WriteString(theme.Hint.Render("answer: " + question.Answer()))
		}
		b.WriteString("\n")
	}

	return components.Panel(q.session.Topic, b.String(), cw)
}
