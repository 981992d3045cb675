package domain

import "time"

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Gender           Gender    `json:"gender,omitempty"`
	HeightCm         int       `json:"heightCm"`
	WeightKg         int       `json:"weightKg"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
