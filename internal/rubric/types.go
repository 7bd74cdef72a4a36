// Package rubric provides loading and lookup of grading rubrics for MOS Word practice projects.
package rubric

import (
	"encoding/json"
	"fmt"
)

// Rubric is the scoring definition for one practice project. It is
// deserialized once at load time and treated as immutable afterwards.
type Rubric struct {
	ProjectID    int           `json:"projectId" validate:"gt=0"`
	ProjectName  string        `json:"projectName,omitempty"`
	MaxScore     int           `json:"maxScore" validate:"gt=0"`
	PassingScore int           `json:"passingScore" validate:"gte=0"`
	Tasks        []GradingTask `json:"gradingTasks" validate:"min=1,dive"`

	// Generated is set on fallback rubrics produced when no rubric file
	// entry exists for the requested project.
	Generated bool `json:"-"`
}

// GradingTask is one checkable requirement within a rubric, worth a fixed
// number of points.
type GradingTask struct {
	TaskID    int    `json:"taskId" validate:"gte=0"`
	TaskName  string `json:"taskName" validate:"required"`
	ShortName string `json:"shortName,omitempty"`
	MaxPoints int    `json:"maxScore" validate:"gt=0"`
	Criteria  []Rule `json:"gradingCriteria"`
}

// Task resolves the rubric task to bind to a criterion at the given
// 1-based task id. It first tries an exact taskId match and then falls
// back to positional lookup by array index. The positional fallback
// tolerates rubric/task-id drift between rubric revisions and is
// intentional compatibility behavior, not a bug to collapse into a
// single lookup.
func (r *Rubric) Task(taskID, index int) (*GradingTask, bool) {
	for i := range r.Tasks {
		if r.Tasks[i].TaskID == taskID {
			return &r.Tasks[i], true
		}
	}
	if index >= 0 && index < len(r.Tasks) {
		return &r.Tasks[index], true
	}
	return nil, false
}

// RunFormat describes expected character formatting for a run of text.
// Nil pointer fields are not checked.
type RunFormat struct {
	Bold      *bool   `json:"bold,omitempty"`
	Italic    *bool   `json:"italic,omitempty"`
	Underline *bool   `json:"underline,omitempty"`
	Font      string  `json:"font,omitempty"`
	SizePt    float64 `json:"sizePt,omitempty"`
	Color     string  `json:"color,omitempty"`
	Highlight string  `json:"highlight,omitempty"`
}

// Margins holds expected page margins in twips (twentieths of a point).
type Margins struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Rule is one validation rule within a grading task. A rubric criterion
// is either a structured rule (an object with a type and expected
// values) or a plain human-readable verification step; the latter
// decodes into a Rule with Manual set and only Description populated.
type Rule struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	// Text targeting and expectations. Exact switches substring matching
	// to whitespace-normalized exact matching.
	Text  string `json:"text,omitempty"`
	Exact bool   `json:"exact,omitempty"`

	Style       string     `json:"style,omitempty"`
	Format      *RunFormat `json:"format,omitempty"`
	Count       *int       `json:"count,omitempty"`
	MinCount    *int       `json:"minCount,omitempty"`
	Rows        *int       `json:"rows,omitempty"`
	Columns     *int       `json:"columns,omitempty"`
	Section     string     `json:"section,omitempty"`
	URL         string     `json:"url,omitempty"`
	Orientation string     `json:"orientation,omitempty"`
	Margins     *Margins   `json:"margins,omitempty"`

	// Weight enables weighted sub-rule scoring when every structured
	// rule of a task carries a positive weight. Otherwise scoring is
	// binary per task.
	Weight float64 `json:"weight,omitempty"`

	// Manual marks a human-readable verification step that cannot be
	// checked mechanically.
	Manual bool `json:"-"`
}

// ruleAlias avoids recursing into Rule.UnmarshalJSON.
type ruleAlias Rule

// UnmarshalJSON decodes a rule from either a JSON string (a manual
// verification step) or a structured rule object.
func (ru *Rule) UnmarshalJSON(data []byte) error {
	var step string
	if err := json.Unmarshal(data, &step); err == nil {
		*ru = Rule{Description: step, Manual: true}
		return nil
	}

	var alias ruleAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("failed to parse grading criterion: %w", err)
	}
	*ru = Rule(alias)
	ru.Manual = ru.Type == ""
	return nil
}
