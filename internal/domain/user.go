package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin  Role = "admin"  // plan and exercise authoring
	RoleMember Role = "member" // regular app user
)

// User represents an account in the system together with the training profile
// collected by the registration wizard. Profile answers are stored as the
// wizard sent them (possibly Polish, possibly older vocabularies); the
// recommender normalizes them per request.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Profile      UserProfile        `bson:"profile,omitempty" json:"profile"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile holds the raw survey answers attached to an account. All fields
// are optional; the recommender applies defaults and unknown markers.
type UserProfile struct {
	Goal                   string   `bson:"goal,omitempty" json:"goal,omitempty"`
	Level                  string   `bson:"level,omitempty" json:"level,omitempty"`
	Equipment              string   `bson:"equipment,omitempty" json:"equipment,omitempty"`
	TrainingDaysPerWeek    string   `bson:"trainingDaysPerWeek,omitempty" json:"trainingDaysPerWeek,omitempty"`
	SessionDurationMinutes string   `bson:"sessionDurationMinutes,omitempty" json:"sessionDurationMinutes,omitempty"`
	FocusAreas             []string `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	Avoidances             []string `bson:"avoidances,omitempty" json:"avoidances,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
