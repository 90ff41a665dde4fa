// ABOUTME: Core data models for feed posts, post form input, and the local profile.
// ABOUTME: Provides constructor functions and defaults shared by the feed, storage, and TUI.
package models

import (
	"strings"
	"time"
)

// Post represents a single photo post in the feed.
type Post struct {
	ID        int
	Author    string
	Caption   string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Timestamp returns the most recent client-side timestamp for display.
func (p Post) Timestamp() time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// PostInput is the editable subset of a post submitted by a form.
type PostInput struct {
	Author   string
	Caption  string
	ImageURL string
}

// NewPostInput creates a post input with surrounding whitespace trimmed from every field.
func NewPostInput(author, caption, imageURL string) PostInput {
	return PostInput{
		Author:   strings.TrimSpace(author),
		Caption:  strings.TrimSpace(caption),
		ImageURL: strings.TrimSpace(imageURL),
	}
}

// InputFromPost extracts the editable fields of a post.
func InputFromPost(p Post) PostInput {
	return PostInput{
		Author:   p.Author,
		Caption:  p.Caption,
		ImageURL: p.ImageURL,
	}
}

// Profile holds the locally persisted profile settings.
type Profile struct {
	Name         string `yaml:"name"`
	Bio          string `yaml:"bio"`
	AvatarURL    string `yaml:"avatar_url"`
	FilterAuthor string `yaml:"filter_author"`
}

// Default profile values used when nothing has been saved yet.
const (
	DefaultProfileName   = "My Profile"
	DefaultProfileBio    = "Sharing special moments"
	DefaultProfileAvatar = "https://api.dicebear.com/7.x/adventurer/svg?seed=pixelsnap"
)

// DefaultProfile returns the profile shown before the user edits it.
func DefaultProfile() Profile {
	return Profile{
		Name:      DefaultProfileName,
		Bio:       DefaultProfileBio,
		AvatarURL: DefaultProfileAvatar,
	}
}

// WithDefaults fills blank name, bio, and avatar fields from the default profile.
// The author filter may stay blank, which means "show everything".
func (p Profile) WithDefaults() Profile {
	d := DefaultProfile()
	p.Name = strings.TrimSpace(p.Name)
	p.Bio = strings.TrimSpace(p.Bio)
	p.AvatarURL = strings.TrimSpace(p.AvatarURL)
	p.FilterAuthor = strings.TrimSpace(p.FilterAuthor)
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.Bio == "" {
		p.Bio = d.Bio
	}
	if p.AvatarURL == "" {
		p.AvatarURL = d.AvatarURL
	}
	return p
}
