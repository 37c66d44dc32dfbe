package futureforged

import (
	"errors"
	"fmt"
	"strings"
)

// StudentCategory is the kind of student a roadmap is generated for.
type StudentCategory string

const (
	CategorySchool  StudentCategory = "school"
	CategoryCollege StudentCategory = "college"
)

// ParseStudentCategory accepts "school" or "college" in any letter case.
func ParseStudentCategory(s string) (StudentCategory, error) {
	switch StudentCategory(strings.ToLower(strings.TrimSpace(s))) {
	case CategorySchool:
		return CategorySchool, nil
	case CategoryCollege:
		return CategoryCollege, nil
	default:
		return "", NewInvalidProfileError(fmt.Sprintf("Unknown student category %q. Choose School or College.", s))
	}
}

func (c StudentCategory) Valid() bool {
	return c == CategorySchool || c == CategoryCollege
}

// Label returns the display form used in prompts and UIs.
func (c StudentCategory) Label() string {
	switch c {
	case CategorySchool:
		return "School"
	case CategoryCollege:
		return "College"
	default:
		return string(c)
	}
}

// StudentProfile is the user-supplied input to roadmap generation.
type StudentProfile struct {
	Name        string          `json:"name"`
	YearOrGrade string          `json:"yearOrGrade"`
	Goals       string          `json:"goals"`
	Category    StudentCategory `json:"category"`
}

// Validate reports the first empty field as an invalid-input error.
func (p StudentProfile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return NewInvalidProfileError("Please enter your name.")
	case strings.TrimSpace(p.YearOrGrade) == "":
		return NewInvalidProfileError("Please enter your current year or grade.")
	case strings.TrimSpace(p.Goals) == "":
		return NewInvalidProfileError("Please describe your goals.")
	case !p.Category.Valid():
		return NewInvalidProfileError("Please choose School or College.")
	}
	return nil
}

type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type RoadmapStep struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	Resources   []ResourceLink `json:"resources"`
}

type WeeklyScheduleEntry struct {
	Day   string   `json:"day"`
	Tasks []string `json:"tasks"`
}

// Roadmap is the structured plan returned by the generation pipeline.
type Roadmap struct {
	MotivationalQuote string                `json:"motivationalQuote"`
	Steps             []RoadmapStep         `json:"steps"`
	WeeklySchedule    []WeeklyScheduleEntry `json:"weeklySchedule"`
	SecurityNote      string                `json:"securityNote"`
}

var (
	errMissingQuote = errors.New("motivationalQuote is missing")
	errMissingSteps = errors.New("steps are missing")
)

// Validate checks that the roadmap carries a quote and at least one step.
func (r *Roadmap) Validate() error {
	if strings.TrimSpace(r.MotivationalQuote) == "" {
		return errMissingQuote
	}
	if len(r.Steps) == 0 {
		return errMissingSteps
	}
	return nil
}

// normalize replaces null collections with empty ones so renderers can range freely.
func (r *Roadmap) normalize() {
	if r.WeeklySchedule == nil {
		r.WeeklySchedule = []WeeklyScheduleEntry{}
	}
	for i := range r.Steps {
		if r.Steps[i].Resources == nil {
			r.Steps[i].Resources = []ResourceLink{}
		}
	}
	for i := range r.WeeklySchedule {
		if r.WeeklySchedule[i].Tasks == nil {
			r.WeeklySchedule[i].Tasks = []string{}
		}
	}
}
