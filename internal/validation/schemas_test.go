package validation

import "testing"

func TestRegisterPayloadCollectsEveryViolation(t *testing.T) {
	p := RegisterPayload{Username: "a b", Email: "not-an-email", Password: "123"}
	p.Normalize()

	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	want := "username cannot contain spaces or special characters, Invalid Email, Password must contain at least 6 character(s)"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestRegisterPayloadShortUsername(t *testing.T) {
	p := RegisterPayload{Username: "ab", Email: "a@b.co", Password: "secret123"}
	p.Normalize()

	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "username must contain at least 3 character(s)" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestRegisterPayloadAcceptsValidInput(t *testing.T) {
	p := RegisterPayload{Username: "alice1", Email: "alice@example.com", Password: "secret123"}
	p.Normalize()

	if err := p.Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestLoginPayloadMessages(t *testing.T) {
	p := LoginPayload{Email: "bad", Password: ""}
	p.Normalize()

	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "Invalid Email, Password is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestPostPayloadRequiresTextOrMedia(t *testing.T) {
	p := PostPayload{}
	p.Normalize()

	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "text or media is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestPostPayloadMediaComposition(t *testing.T) {
	image := MediaItem{Type: MediaTypeImage, URL: "https://cdn.local/a.jpg"}
	video := MediaItem{Type: MediaTypeVideo, URL: "https://cdn.local/a.mp4"}

	cases := []struct {
		name  string
		media []MediaItem
		valid bool
	}{
		{"four images", []MediaItem{image, image, image, image}, true},
		{"one video", []MediaItem{video}, true},
		{"five images", []MediaItem{image, image, image, image, image}, false},
		{"two videos", []MediaItem{video, video}, false},
		{"image and video mixed", []MediaItem{image, video}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := PostPayload{Text: "hello", Media: tc.media}
			p.Normalize()

			err := p.Validate()
			if tc.valid && err != nil {
				t.Fatalf("valid composition rejected: %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("invalid composition accepted")
			}
		})
	}
}

func TestCommentPayloadRequired(t *testing.T) {
	p := CommentPayload{Text: "   "}
	p.Normalize()

	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "Comment is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAccountPayloadNeedsOneField(t *testing.T) {
	p := AccountPayload{}
	p.Normalize()

	err := p.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "At least one field is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	p = AccountPayload{Title: "Engineer"}
	p.Normalize()
	if err := p.Validate(); err != nil {
		t.Fatalf("payload with title rejected: %v", err)
	}
}
