package rules

import (
	"log"

	"github.com/placepulse/notifier/internal/models"
)

// backfillOrder is the precedence used when several typed ids are populated
// and the generic target id is empty. First match wins.
var backfillOrder = []string{models.TargetPost, models.TargetPlace, models.TargetReview, models.TargetComment}

// Reconcile normalizes the mixed id vocabulary into one canonical target.
// A typed id missing its value is filled from the generic pair when the
// types line up; an empty generic pair is filled back from the typed ids.
// Idempotent, and unset ids stay empty strings.
func Reconcile(t models.Target) models.Target {
	// Forward-fill: generic pair into the matching typed id.
	if t.TargetID != "" {
		switch t.TargetType {
		case models.TargetPost:
			if t.PostID == "" {
				t.PostID = t.TargetID
			}
		case models.TargetPlace:
			if t.PlaceID == "" {
				t.PlaceID = t.TargetID
			}
		case models.TargetReview:
			if t.ReviewID == "" {
				t.ReviewID = t.TargetID
			}
		case models.TargetComment:
			if t.CommentID == "" {
				t.CommentID = t.TargetID
			}
		}
		return t
	}

	// Back-fill: typed ids into the generic pair.
	populated := 0
	for _, kind := range backfillOrder {
		if typedID(t, kind) != "" {
			populated++
		}
	}
	if populated > 1 {
		log.Printf("reconcile: %d typed ids populated at once, picking by precedence %v", populated, backfillOrder)
	}
	for _, kind := range backfillOrder {
		if id := typedID(t, kind); id != "" {
			t.TargetID = id
			t.TargetType = kind
			break
		}
	}
	return t
}

func typedID(t models.Target, kind string) string {
	switch kind {
	case models.TargetPost:
		return t.PostID
	case models.TargetPlace:
		return t.PlaceID
	case models.TargetReview:
		return t.ReviewID
	case models.TargetComment:
		return t.CommentID
	}
	return ""
}
