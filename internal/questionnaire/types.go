package questionnaire

import "fmt"

// ItemCount is the number of items in every question bank.
const ItemCount = 21

// ItemsPerSubscale is the number of items scored by each subscale.
const ItemsPerSubscale = 7

// MaxAnswer is the highest value on the answer scale (0..3).
const MaxAnswer = 3

// Answer is a single Likert response. Valid values are 0..3.
type Answer int

// Unanswered marks an item the respondent has not answered yet.
// It is never a score and must never be summed.
const Unanswered Answer = -1

// Valid reports whether a is a scorable value.
func (a Answer) Valid() bool {
	return a >= 0 && a <= MaxAnswer
}

// Responses maps item position (1..21) to the respondent's answer.
// A missing position is treated exactly like Unanswered.
type Responses map[int]Answer

// NewResponses returns a response map with every position unanswered.
func NewResponses() Responses {
	r := make(Responses, ItemCount)
	for pos := 1; pos <= ItemCount; pos++ {
		r[pos] = Unanswered
	}
	return r
}

// FromSlice builds Responses from answers in position order.
// Shorter slices leave the trailing positions absent.
func FromSlice(answers []Answer) Responses {
	r := make(Responses, len(answers))
	for i, a := range answers {
		r[i+1] = a
	}
	return r
}

// Slice returns the answers in position order, Unanswered for gaps.
func (r Responses) Slice() []Answer {
	out := make([]Answer, ItemCount)
	for pos := 1; pos <= ItemCount; pos++ {
		a, ok := r[pos]
		if !ok {
			a = Unanswered
		}
		out[pos-1] = a
	}
	return out
}

// Clone returns an independent copy of r.
func (r Responses) Clone() Responses {
	out := make(Responses, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// SubscaleID identifies one of the three DASS-21 subscales.
type SubscaleID string

const (
	Stress     SubscaleID = "stress"
	Anxiety    SubscaleID = "anxiety"
	Depression SubscaleID = "depression"
)

// AllSubscales returns the subscales in result order.
func AllSubscales() []SubscaleID {
	return []SubscaleID{Stress, Anxiety, Depression}
}

// Valid reports whether id names a known subscale.
func (id SubscaleID) Valid() bool {
	switch id {
	case Stress, Anxiety, Depression:
		return true
	}
	return false
}

// Partition is the item grouping shared by every question bank.
// Variants restate it in their documents; load validation checks they agree.
var Partition = map[SubscaleID][]int{
	Stress:     {1, 6, 8, 11, 12, 14, 18},
	Anxiety:    {2, 4, 7, 9, 15, 19, 20},
	Depression: {3, 5, 10, 13, 16, 17, 21},
}

// Band is a closed score interval mapped to a severity label.
type Band struct {
	Low   int    `yaml:"low" json:"low"`
	High  int    `yaml:"high" json:"high"`
	Label string `yaml:"label" json:"label"`
}

// Contains reports whether total lies within the band.
func (b Band) Contains(total int) bool {
	return b.Low <= total && total <= b.High
}

func (b Band) String() string {
	return fmt.Sprintf("[%d,%d] %s", b.Low, b.High, b.Label)
}

// Subscale is a named scale with its item positions and severity bands.
type Subscale struct {
	ID    SubscaleID `yaml:"id"`
	Name  string     `yaml:"name"`
	Items []int      `yaml:"items"`
	Bands []Band     `yaml:"bands"`
}

// IdentityField names a respondent detail a deployment may collect.
type IdentityField string

const (
	FieldName      IdentityField = "name"
	FieldStudentID IdentityField = "student_id"
	FieldCampus    IdentityField = "campus"
	FieldPhone     IdentityField = "phone"
)

// AllIdentityFields returns every identity field in canonical order.
func AllIdentityFields() []IdentityField {
	return []IdentityField{FieldName, FieldStudentID, FieldCampus, FieldPhone}
}

// Valid reports whether f is a known identity field.
func (f IdentityField) Valid() bool {
	switch f {
	case FieldName, FieldStudentID, FieldCampus, FieldPhone:
		return true
	}
	return false
}

// IdentityConfig describes which respondent details a variant collects.
type IdentityConfig struct {
	Fields   []IdentityField          `yaml:"fields"`
	Required []IdentityField          `yaml:"required"`
	Campuses []string                 `yaml:"campuses"`
	Labels   map[IdentityField]string `yaml:"labels"`
	// CampusPrompt is the placeholder shown before a campus is chosen.
	CampusPrompt string `yaml:"campus_prompt"`
}

// Collects reports whether the variant records field f.
func (c IdentityConfig) Collects(f IdentityField) bool {
	for _, x := range c.Fields {
		if x == f {
			return true
		}
	}
	return false
}

// IsRequired reports whether field f must be filled before scoring.
func (c IdentityConfig) IsRequired(f IdentityField) bool {
	for _, x := range c.Required {
		if x == f {
			return true
		}
	}
	return false
}

// Label returns the display label for f, falling back to the field key.
func (c IdentityConfig) Label(f IdentityField) string {
	if l, ok := c.Labels[f]; ok && l != "" {
		return l
	}
	return string(f)
}

// Messages holds the fixed display strings of a variant.
type Messages struct {
	Submit       string `yaml:"submit"`
	Recorded     string `yaml:"recorded"`
	NotRecorded  string `yaml:"not_recorded"`
	Unanswered   string `yaml:"unanswered"`
	InvalidValue string `yaml:"invalid_value"`
	MissingField string `yaml:"missing_field"`
	// MissingChoice is used instead of MissingField for list fields (campus).
	MissingChoice string `yaml:"missing_choice"`
	ResultTitle   string `yaml:"result_title"`
}

// Variant is a complete question-bank configuration for one locale/edition.
type Variant struct {
	ID         string         `yaml:"id"`
	Locale     string         `yaml:"locale"`
	Title      string         `yaml:"title"`
	Multiplier int            `yaml:"multiplier"`
	Options    []string       `yaml:"options"`
	Items      []string       `yaml:"items"`
	Subscales  []Subscale     `yaml:"subscales"`
	Identity   IdentityConfig `yaml:"identity"`
	Messages   Messages       `yaml:"messages"`
}

// Prompt returns the text of the item at position pos (1-based).
func (v *Variant) Prompt(pos int) string {
	if pos < 1 || pos > len(v.Items) {
		return ""
	}
	return v.Items[pos-1]
}

// Subscale returns the subscale definition for id, or nil.
func (v *Variant) Subscale(id SubscaleID) *Subscale {
	for i := range v.Subscales {
		if v.Subscales[i].ID == id {
			return &v.Subscales[i]
		}
	}
	return nil
}

// MaxTotal is the highest reachable subscale total for this variant.
func (v *Variant) MaxTotal() int {
	return ItemsPerSubscale * MaxAnswer * v.multiplier()
}

func (v *Variant) multiplier() int {
	if v.Multiplier == 0 {
		return 1
	}
	return v.Multiplier
}

// Identity carries the respondent details entered on the form.
type Identity struct {
	Name      string `json:"name,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Campus    string `json:"campus,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Get returns the value of field f.
func (id Identity) Get(f IdentityField) string {
	switch f {
	case FieldName:
		return id.Name
	case FieldStudentID:
		return id.StudentID
	case FieldCampus:
		return id.Campus
	case FieldPhone:
		return id.Phone
	}
	return ""
}

// Input is one submission attempt handed to the engine.
type Input struct {
	Identity  Identity
	Responses Responses
}

// SubscaleScore is the outcome for a single subscale.
type SubscaleScore struct {
	ID    SubscaleID `json:"id"`
	Name  string     `json:"name"`
	Raw   int        `json:"raw"`
	Total int        `json:"total"`
	Label string     `json:"label"`
}

// Result is the scored outcome of a valid submission.
// Scores are always in Stress, Anxiety, Depression order.
type Result struct {
	Variant string          `json:"variant"`
	Scores  []SubscaleScore `json:"scores"`
}

// Score returns the score for id.
func (r *Result) Score(id SubscaleID) (SubscaleScore, bool) {
	for _, s := range r.Scores {
		if s.ID == id {
			return s, true
		}
	}
	return SubscaleScore{}, false
}
