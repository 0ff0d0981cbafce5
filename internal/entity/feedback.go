package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/josephvaleri/mlmp/constants"
)

// FeedbackLabel is a user verdict on a stored candidate. Labeled rows (text
// plus the candidate's feature vector) are the training corpus the external
// trainer periodically retrains on.
type FeedbackLabel struct {
	ID          uuid.UUID             `json:"id"`
	CandidateID uuid.UUID             `json:"candidate_id"`
	PageNumber  int                   `json:"page_number"`
	Text        string                `json:"text"`
	EditedText  *string               `json:"edited_text,omitempty"`
	Status      constants.LabelStatus `json:"status"`
	Features    CandidateFeatures     `json:"features"`
	Confidence  float32               `json:"confidence"`
	CreatedAt   time.Time             `json:"created_at"`
}
