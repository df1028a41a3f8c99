package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hongminglow/crime-report-hub/internal/validation"
)

// User is the persisted account record. ID is assigned by the store.
type User struct {
	ID           string       `bson:"-" json:"-"`
	PersonalInfo PersonalInfo `bson:"personal_info" json:"personal_info"`
	SocialLinks  SocialLinks  `bson:"social_links" json:"social_links"`
	AccountInfo  AccountInfo  `bson:"account_info" json:"account_info"`
	GoogleAuth   bool         `bson:"google_auth" json:"google_auth"`
	JoinedAt     time.Time    `bson:"joinedAt" json:"joinedAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// PersonalInfo holds identity fields. Password is always a bcrypt digest.
type PersonalInfo struct {
	Fullname   string `bson:"fullname" json:"fullname"`
	Email      string `bson:"email" json:"email"`
	Password   string `bson:"password" json:"-"`
	Username   string `bson:"username" json:"username"`
	Bio        string `bson:"bio" json:"bio"`
	ProfileImg string `bson:"profile_img" json:"profile_img"`
}

type SocialLinks struct {
	Youtube   string `bson:"youtube" json:"youtube"`
	Instagram string `bson:"instagram" json:"instagram"`
	Facebook  string `bson:"facebook" json:"facebook"`
	Twitter   string `bson:"twitter" json:"twitter"`
	Github    string `bson:"github" json:"github"`
	Website   string `bson:"website" json:"website"`
}

type AccountInfo struct {
	TotalPosts int64 `bson:"total_posts" json:"total_posts"`
	TotalReads int64 `bson:"total_reads" json:"total_reads"`
}

// NewUserInput describes the fields supplied at signup.
type NewUserInput struct {
	Fullname     string
	Email        string
	PasswordHash string
	Username     string
	ProfileImg   string
}

// NewUser builds a record with defaults applied and text fields case-folded
// the way the store keeps them.
func NewUser(input NewUserInput, now time.Time) User {
	now = now.UTC()
	return User{
		PersonalInfo: PersonalInfo{
			Fullname:   strings.ToLower(strings.TrimSpace(input.Fullname)),
			Email:      strings.ToLower(strings.TrimSpace(input.Email)),
			Password:   input.PasswordHash,
			Username:   input.Username,
			ProfileImg: input.ProfileImg,
		},
		JoinedAt:  now,
		UpdatedAt: now,
	}
}

// Validate re-checks the record constraints every backend enforces before a
// write. Violations are reported as a single error listing each field.
func (u User) Validate() error {
	var problems []string
	p := u.PersonalInfo

	switch n := utf8.RuneCountInString(p.Fullname); {
	case n == 0:
		problems = append(problems, "Fullname is required")
	case n < validation.MinFullnameLength:
		problems = append(problems, "Fullname must be at least 3 characters long")
	case n > validation.MaxFullnameLength:
		problems = append(problems, "Fullname must not exceed 20 characters")
	}
	switch {
	case p.Email == "":
		problems = append(problems, "Email is required")
	case !validation.IsEmail(p.Email):
		problems = append(problems, "Please enter a valid email address")
	}
	if p.Password == "" {
		problems = append(problems, "Password is required")
	}
	switch n := utf8.RuneCountInString(p.Username); {
	case n == 0:
		problems = append(problems, "Username is required")
	case n < validation.MinUsernameLength:
		problems = append(problems, "Username must be at least 3 characters long")
	}
	if utf8.RuneCountInString(p.Bio) > validation.MaxBioLength {
		problems = append(problems, "Bio should not exceed 200 characters")
	}

	if len(problems) > 0 {
		return fmt.Errorf("user validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
