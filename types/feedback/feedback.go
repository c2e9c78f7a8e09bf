package feedback

import (
	"fmt"
	"strings"
)

// FeedbackRequest represents the requester's rating of a booking.
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty"`
}

func (r FeedbackRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if len(strings.TrimSpace(r.Comment)) > 2000 {
		return fmt.Errorf("comment must be at most 2000 characters")
	}
	return nil
}
