package models

import (
	"fmt"
	"strings"
)

// Random is the subset of *math/rand/v2.Rand the record defaults need.
type Random interface {
	IntN(n int) int
}

var profileImgCollections = []string{
	"notionists-neutral",
	"adventurer-neutral",
	"fun-emoji",
}

var profileImgSeeds = []string{
	"Garfield", "Tinkerbell", "Annie", "Loki", "Cleo",
	"Angel", "Bob", "Mia", "Coco", "Gracie",
	"Bear", "Bella", "Abby", "Harley", "Cali",
	"Leo", "Luna", "Jack", "Felix", "Kiki",
}

// DefaultProfileImg picks an avatar style and seed at random.
func DefaultProfileImg(r Random) string {
	collection := profileImgCollections[r.IntN(len(profileImgCollections))]
	seed := profileImgSeeds[r.IntN(len(profileImgSeeds))]
	return fmt.Sprintf("https://api.dicebear.com/6.x/%s/svg?seed=%s", collection, seed)
}

const usernameSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// UsernameSuffixLength is the number of characters appended on collision.
const UsernameSuffixLength = 5

// UsernameFromEmail returns the local part of an address.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// WithUsernameSuffix appends a random lower-case alphanumeric suffix.
func WithUsernameSuffix(username string, r Random) string {
	var b strings.Builder
	b.Grow(len(username) + UsernameSuffixLength)
	b.WriteString(username)
	for range UsernameSuffixLength {
		b.WriteByte(usernameSuffixAlphabet[r.IntN(len(usernameSuffixAlphabet))])
	}
	return b.String()
}
