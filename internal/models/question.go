package models

import "sort"

// Option keys in display order.
const (
	OptionA = "ア"
	OptionI = "イ"
	OptionU = "ウ"
	OptionE = "エ"
)

var OptionKeys = []string{OptionA, OptionI, OptionU, OptionE}

type Question struct {
	Number      string            `json:"number"`
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation,omitempty"`
	ExamID      string            `json:"examId,omitempty"`
	HasImages   bool              `json:"hasImages,omitempty"`
	ImagePaths  map[string]string `json:"imagePaths,omitempty"`
}

// Key identifies a question across exams.
func (q Question) Key() string {
	return QuestionKey(q.ExamID, q.Number)
}

// OrderedOptions returns the option keys of q in display order.
// Keys outside OptionKeys follow in sorted order.
func (q Question) OrderedOptions() []string {
	keys := make([]string, 0, len(q.Options))
	seen := make(map[string]bool, len(q.Options))
	for _, k := range OptionKeys {
		if _, ok := q.Options[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var extra []string
	for k := range q.Options {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func QuestionKey(examID, number string) string {
	return examID + ":" + number
}

type Exam struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Questions       []Question `json:"questions"`
	HasExplanations bool       `json:"hasExplanations"`
}

type ExamInfo struct {
	ID   string
	Name string
}
