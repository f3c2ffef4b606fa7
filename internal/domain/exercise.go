// internal/domain/exercise.go
package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single exercise definition in the library. Plans reference
// exercises by ID from their day slots.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	MuscleGroup string   `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g. "Chest", "Legs", "Back"
	Type        string   `bson:"type,omitempty" json:"type,omitempty"`               // e.g. "compound", "isolation", "cardio"
	Tags        []string `bson:"tags,omitempty" json:"tags,omitempty"`               // e.g. "olympic", "unilateral", "mobility"

	// MediaObjectKey points at a demo video/image in object storage. Empty
	// until a media upload is confirmed for this exercise.
	MediaObjectKey string `bson:"mediaObjectKey,omitempty" json:"mediaObjectKey,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasTag reports whether the exercise carries the given tag, case-insensitively.
func (e *Exercise) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
