package survey

import "github.com/pitchperfect/pitch-backend/internal/entity"

// VisibleQuestions filters the survey down to questions whose show_if
// condition is met by the current answers. Unconditional questions are
// always visible; a conditional one requires its referenced question
// to be answered with a matching value.
func VisibleQuestions(survey *entity.Survey, answers map[string]entity.SurveyAnswer) []entity.SurveyQuestion {
	visible := make([]entity.SurveyQuestion, 0, len(survey.Questions))
	for _, question := range survey.Questions {
		if question.ShowIf == nil || answerMatches(answers, question.ShowIf) {
			visible = append(visible, question)
		}
	}

	return visible
}

// answerMatches implements the show_if rule: equality for single
// values, non-empty intersection for multi-select answers.
func answerMatches(answers map[string]entity.SurveyAnswer, cond *entity.ShowIf) bool {
	answer, ok := answers[cond.QuestionID]
	if !ok {
		return false
	}

	if len(answer.Selected) > 0 {
		for _, selected := range answer.Selected {
			for _, accepted := range cond.AnyOf {
				if selected == accepted {
					return true
				}
			}
		}
		return false
	}

	if answer.Text != "" {
		for _, accepted := range cond.AnyOf {
			if answer.Text == accepted {
				return true
			}
		}
	}

	return false
}

// ClampIndex keeps the current question index inside the visible set.
// Answering a gating question can shrink the set, leaving a stale
// index pointing past the end.
func ClampIndex(index, visibleCount int) int {
	if visibleCount == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= visibleCount {
		return visibleCount - 1
	}

	return index
}
