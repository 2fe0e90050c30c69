package api

import "github.com/abhisek/dass21/internal/questionnaire"

// IdentityRequest carries the respondent details of a submission.
type IdentityRequest struct {
	Name      string `json:"name" validate:"max=200"`
	StudentID string `json:"student_id" validate:"max=64"`
	Campus    string `json:"campus" validate:"max=64"`
	Phone     string `json:"phone" validate:"max=32"`
}

// SubmissionRequest is the POST /api/submissions body. A null answer
// means the item was left unanswered.
type SubmissionRequest struct {
	Variant  string          `json:"variant" validate:"max=64"`
	Identity IdentityRequest `json:"identity"`
	Answers  []*int          `json:"answers" validate:"required,len=21"`
}

func (r *SubmissionRequest) identity() questionnaire.Identity {
	return questionnaire.Identity{
		Name:      r.Identity.Name,
		StudentID: r.Identity.StudentID,
		Campus:    r.Identity.Campus,
		Phone:     r.Identity.Phone,
	}
}

func (r *SubmissionRequest) responses() questionnaire.Responses {
	out := questionnaire.NewResponses()
	for i, a := range r.Answers {
		if a != nil {
			out[i+1] = questionnaire.Answer(*a)
		}
	}
	return out
}

// VariantSummary is one entry of GET /api/variants.
type VariantSummary struct {
	ID     string `json:"id"`
	Locale string `json:"locale"`
	Title  string `json:"title"`
}

// IdentityForm describes the identity fields a variant collects.
type IdentityForm struct {
	Fields       []questionnaire.IdentityField          `json:"fields"`
	Required     []questionnaire.IdentityField          `json:"required"`
	Labels       map[questionnaire.IdentityField]string `json:"labels"`
	Campuses     []string                               `json:"campuses,omitempty"`
	CampusPrompt string                                 `json:"campus_prompt,omitempty"`
}

// ItemView is one prompt of a form.
type ItemView struct {
	Position int    `json:"position"`
	Prompt   string `json:"prompt"`
}

// VariantForm is the full form description of GET /api/variants/:id.
type VariantForm struct {
	VariantSummary
	Options  []string     `json:"options"`
	Items    []ItemView   `json:"items"`
	Identity IdentityForm `json:"identity"`
	Submit   string       `json:"submit"`
}

func newVariantForm(v *questionnaire.Variant) VariantForm {
	labels := make(map[questionnaire.IdentityField]string, len(v.Identity.Fields))
	for _, f := range v.Identity.Fields {
		labels[f] = v.Identity.Label(f)
	}
	items := make([]ItemView, 0, len(v.Items))
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		items = append(items, ItemView{Position: pos, Prompt: v.Prompt(pos)})
	}
	return VariantForm{
		VariantSummary: VariantSummary{ID: v.ID, Locale: v.Locale, Title: v.Title},
		Options:        v.Options,
		Items:          items,
		Identity: IdentityForm{
			Fields:       v.Identity.Fields,
			Required:     v.Identity.Required,
			Labels:       labels,
			Campuses:     v.Identity.Campuses,
			CampusPrompt: v.Identity.CampusPrompt,
		},
		Submit: v.Messages.Submit,
	}
}

// SubmissionResponse is the data of a recorded submission.
type SubmissionResponse struct {
	SubmissionID string                        `json:"submission_id"`
	Variant      string                        `json:"variant"`
	Recorded     bool                          `json:"recorded"`
	Scores       []questionnaire.SubscaleScore `json:"scores"`
}

// RejectionDetails explains a ValidationError.
type RejectionDetails struct {
	Reason   questionnaire.Reason        `json:"reason"`
	Field    questionnaire.IdentityField `json:"field,omitempty"`
	Position int                         `json:"position,omitempty"`
}
