package survey

import "github.com/pitchperfect/pitch-backend/internal/entity"

// Survey definitions ship with the service. Question IDs are stable:
// stored answers reference them.
var (
	quickSurvey = entity.Survey{
		ID:   "quick-v1",
		Kind: entity.SurveyKindQuick,
		Questions: []entity.SurveyQuestion{
			{
				ID:      "satisfaction",
				Type:    entity.QuestionTypeScale,
				Prompt:  "How satisfied are you with your session today?",
				Options: []string{"1", "2", "3", "4", "5"},
			},
			{
				ID:      "would_recommend",
				Type:    entity.QuestionTypeSingleSelect,
				Prompt:  "Would you recommend PitchPerfect to a colleague?",
				Options: []string{"yes", "maybe", "no"},
			},
			{
				ID:     "recommend_blocker",
				Type:   entity.QuestionTypeText,
				Prompt: "What is holding you back from recommending it?",
				ShowIf: &entity.ShowIf{
					QuestionID: "would_recommend",
					AnyOf:      []string{"maybe", "no"},
				},
			},
		},
	}

	comprehensiveSurvey = entity.Survey{
		ID:   "comprehensive-v1",
		Kind: entity.SurveyKindComprehensive,
		Questions: []entity.SurveyQuestion{
			{
				ID:      "primary_goal",
				Type:    entity.QuestionTypeSingleSelect,
				Prompt:  "What do you mainly use PitchPerfect for?",
				Options: []string{"investor_pitch", "sales_demo", "interview_prep", "other"},
			},
			{
				ID:      "features_used",
				Type:    entity.QuestionTypeMultiSelect,
				Prompt:  "Which features have you used so far?",
				Options: []string{"wizard", "ai_coach", "simulator", "script_export"},
			},
			{
				ID:      "coach_value",
				Type:    entity.QuestionTypeScale,
				Prompt:  "How useful was the AI Coach feedback?",
				Options: []string{"1", "2", "3", "4", "5"},
				ShowIf: &entity.ShowIf{
					QuestionID: "features_used",
					AnyOf:      []string{"ai_coach"},
				},
			},
			{
				ID:      "simulator_realism",
				Type:    entity.QuestionTypeScale,
				Prompt:  "How realistic did the simulated counterpart feel?",
				Options: []string{"1", "2", "3", "4", "5"},
				ShowIf: &entity.ShowIf{
					QuestionID: "features_used",
					AnyOf:      []string{"simulator"},
				},
			},
			{
				ID:      "friction_tags",
				Type:    entity.QuestionTypeMultiSelect,
				Prompt:  "Did anything get in your way?",
				Options: []string{"slow_generation", "confusing_navigation", "audio_issues", "inaccurate_feedback", "pricing", "nothing"},
			},
			{
				ID:     "improvement",
				Type:   entity.QuestionTypeText,
				Prompt: "If you could change one thing, what would it be?",
			},
		},
	}
)

// frictionQuestionID marks the question whose selections are stored as
// categorized friction tags on the submitted response.
const frictionQuestionID = "friction_tags"

func surveyByID(surveyID string) (*entity.Survey, bool) {
	switch surveyID {
	case quickSurvey.ID:
		return &quickSurvey, true
	case comprehensiveSurvey.ID:
		return &comprehensiveSurvey, true
	default:
		return nil, false
	}
}

func surveyByKind(kind entity.SurveyKind) *entity.Survey {
	if kind == entity.SurveyKindComprehensive {
		return &comprehensiveSurvey
	}

	return &quickSurvey
}
