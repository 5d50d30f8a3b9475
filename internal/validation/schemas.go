// Package validation defines one statically typed payload schema per request
// body. Each schema exposes Validate, which reports every violated constraint
// at once (joined with ", ") instead of failing on the first one.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	MaxPostImages = 4
	MaxPostVideos = 1
)

type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (p *RegisterPayload) Normalize() {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
}

func (p RegisterPayload) Validate() error {
	return collect(validate.Struct(p), map[string]string{
		"Username.required": "username must contain at least 3 character(s)",
		"Username.min":      "username must contain at least 3 character(s)",
		"Username.alphanum": "username cannot contain spaces or special characters",
		"Email.required":    "Email is required",
		"Email.email":       "Invalid Email",
		"Password.required": "Password must contain at least 6 character(s)",
		"Password.min":      "Password must contain at least 6 character(s)",
	}, nil)
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginPayload) Normalize() {
	p.Email = strings.TrimSpace(p.Email)
}

func (p LoginPayload) Validate() error {
	return collect(validate.Struct(p), map[string]string{
		"Email.required":    "Email is required",
		"Email.email":       "Invalid Email",
		"Password.required": "Password is required",
	}, nil)
}

type MediaItem struct {
	Type string `json:"type" validate:"required,oneof=image video"`
	URL  string `json:"url" validate:"required,url"`
}

type PostPayload struct {
	Text  string      `json:"text"`
	Media []MediaItem `json:"media" validate:"max=4,dive"`
}

func (p *PostPayload) Normalize() {
	p.Text = strings.TrimSpace(p.Text)
}

func (p PostPayload) Validate() error {
	var extra []string
	if p.Text == "" && len(p.Media) == 0 {
		extra = append(extra, "text or media is required")
	}
	if !validMediaMix(p.Media) {
		extra = append(extra, "You can upload up to 4 images or 1 video only")
	}
	return collect(validate.Struct(p), map[string]string{
		"Media.max":  "You can upload up to 4 images or 1 video only",
		"Type.oneof": "media type must be image or video",
		"URL.url":    "media url must be a valid url",
	}, extra)
}

// validMediaMix enforces the post media composition rule: up to four images
// with no video, or exactly one video with no images.
func validMediaMix(media []MediaItem) bool {
	if len(media) == 0 {
		return true
	}
	images, videos := 0, 0
	for _, m := range media {
		switch m.Type {
		case MediaTypeImage:
			images++
		case MediaTypeVideo:
			videos++
		}
	}
	return (images <= MaxPostImages && videos == 0) || (videos == MaxPostVideos && images == 0)
}

type CommentPayload struct {
	Text string `json:"text" validate:"required"`
}

func (p *CommentPayload) Normalize() {
	p.Text = strings.TrimSpace(p.Text)
}

func (p CommentPayload) Validate() error {
	return collect(validate.Struct(p), map[string]string{
		"Text.required": "Comment is required",
	}, nil)
}

type AccountPayload struct {
	Fullname string `json:"fullname"`
	Title    string `json:"title"`
}

func (p *AccountPayload) Normalize() {
	p.Fullname = strings.TrimSpace(p.Fullname)
	p.Title = strings.TrimSpace(p.Title)
}

func (p AccountPayload) Validate() error {
	var extra []string
	if p.Fullname == "" && p.Title == "" {
		extra = append(extra, "At least one field is required")
	}
	return collect(nil, nil, extra)
}

// collect flattens a validator result plus any cross-field messages into a
// single error whose text lists every violation.
func collect(err error, messages map[string]string, extra []string) error {
	out := make([]string, 0, len(extra)+2)

	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				key := fe.StructField() + "." + fe.Tag()
				if msg, ok := messages[key]; ok {
					out = appendUnique(out, msg)
				} else {
					out = appendUnique(out, fe.StructField()+" is invalid")
				}
			}
		} else {
			return err
		}
	}

	for _, msg := range extra {
		out = appendUnique(out, msg)
	}
	if len(out) == 0 {
		return nil
	}
	return errors.New(strings.Join(out, ", "))
}

func appendUnique(list []string, msg string) []string {
	for _, existing := range list {
		if existing == msg {
			return list
		}
	}
	return append(list, msg)
}
