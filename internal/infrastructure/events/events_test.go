package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffectedCollections(t *testing.T) {
	for _, eventType := range []EventType{
		QuestionCreated, QuestionCompleted, AnswerCreated, AnswerUpdated, PointsCredited,
	} {
		assert.NotEmpty(t, AffectedCollections(eventType), "event %s must invalidate something", eventType)
	}

	assert.Contains(t, AffectedCollections(QuestionCompleted), CollectionPointHistories,
		"completion credits points, clients must refresh the ledger")
	assert.Nil(t, AffectedCollections(EventType("unknown")))
}
