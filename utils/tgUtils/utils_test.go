package tgUtils

import (
	"testing"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

func TestAnyText(t *testing.T) {
	tests := []struct {
		name    string
		message *gotgbot.Message
		want    string
	}{
		{
			name:    "text message",
			message: &gotgbot.Message{Text: "/doggo"},
			want:    "/doggo",
		},
		{
			name:    "caption only",
			message: &gotgbot.Message{Caption: "nice dog"},
			want:    "nice dog",
		},
		{
			name:    "no text at all",
			message: &gotgbot.Message{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnyText(tt.message); got != tt.want {
				t.Errorf("AnyText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	t.Setenv("ADMIN_ID", "1234")

	if !IsAdmin(&gotgbot.User{Id: 1234}) {
		t.Error("expected user 1234 to be admin")
	}
	if IsAdmin(&gotgbot.User{Id: 5678}) {
		t.Error("expected user 5678 to not be admin")
	}
}

func TestFromGroup(t *testing.T) {
	tests := []struct {
		name     string
		chatType string
		want     bool
	}{
		{name: "group", chatType: gotgbot.ChatTypeGroup, want: true},
		{name: "supergroup", chatType: gotgbot.ChatTypeSupergroup, want: true},
		{name: "private", chatType: gotgbot.ChatTypePrivate, want: false},
		{name: "channel", chatType: gotgbot.ChatTypeChannel, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &gotgbot.Message{Chat: gotgbot.Chat{Type: tt.chatType}}
			if got := FromGroup(msg); got != tt.want {
				t.Errorf("FromGroup() = %v, want %v", got, tt.want)
			}
		})
	}
}
