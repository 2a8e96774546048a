package events

import "time"

// EventType tags a change notification with what happened.
type EventType string

const (
	QuestionCreated   EventType = "questions.created"
	QuestionCompleted EventType = "questions.completed"
	AnswerCreated     EventType = "answers.created"
	AnswerUpdated     EventType = "answers.updated"
	PointsCredited    EventType = "points.credited"
)

// Collection names a client-side data set that must be re-fetched after an
// event. Clients reload whole collections instead of applying deltas, so
// duplicate or reordered notifications are harmless.
type Collection string

const (
	CollectionQuestions      Collection = "questions"
	CollectionAnswers        Collection = "answers"
	CollectionProfiles       Collection = "profiles"
	CollectionPointHistories Collection = "point_histories"
)

// ChangeEvent is the payload published on the change channel.
type ChangeEvent struct {
	Type       EventType `json:"type"`
	QuestionID string    `json:"question_id,omitempty"`
	AnswerID   string    `json:"answer_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AffectedCollections maps an event type to the collections it invalidates.
func AffectedCollections(t EventType) []Collection {
	switch t {
	case QuestionCreated:
		return []Collection{CollectionQuestions}
	case QuestionCompleted:
		return []Collection{CollectionQuestions, CollectionAnswers, CollectionProfiles, CollectionPointHistories}
	case AnswerCreated:
		return []Collection{CollectionQuestions, CollectionAnswers}
	case AnswerUpdated:
		return []Collection{CollectionAnswers}
	case PointsCredited:
		return []Collection{CollectionProfiles, CollectionPointHistories}
	}
	return nil
}
