package constants

import "strings"

// LabelStatus is the user's verdict on an extracted candidate. Labeled
// candidates (with their feature vectors) form the training corpus for the
// external weight trainer.
type LabelStatus string

const (
	LabelApproved LabelStatus = "APPROVED"
	LabelDenied   LabelStatus = "DENIED"
	LabelEdited   LabelStatus = "EDITED"
)

var allLabelStatuses = []LabelStatus{
	LabelApproved,
	LabelDenied,
	LabelEdited,
}

func LabelStatusStrings() []string {
	result := make([]string, len(allLabelStatuses))
	for i, s := range allLabelStatuses {
		result[i] = string(s)
	}
	return result
}

// CanonicalizeLabel maps loose user input ("approve", "yes", "reject", ...)
// onto a LabelStatus. The second return reports whether the input was
// recognized.
func CanonicalizeLabel(input string) (LabelStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]LabelStatus{
		"approve":  LabelApproved,
		"accept":   LabelApproved,
		"yes":      LabelApproved,
		"deny":     LabelDenied,
		"reject":   LabelDenied,
		"no":       LabelDenied,
		"edit":     LabelEdited,
		"modified": LabelEdited,
	}
	if s, ok := synonyms[normalized]; ok {
		return s, true
	}

	for _, s := range allLabelStatuses {
		if normalized == strings.ToLower(string(s)) {
			return s, true
		}
	}
	return "", false
}
