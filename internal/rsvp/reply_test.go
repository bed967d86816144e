package rsvp

import (
	"testing"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		text   string
		want   models.ExternalStatus
		wantOK bool
	}{
		{"Yes!", models.StatusConfirmed, true},
		{"yeah we'll be there", models.StatusConfirmed, true},
		{"✅", models.StatusConfirmed, true},
		{"We will be there", models.StatusConfirmed, true},
		{"NO", models.StatusUnavailable, true},
		{"Sorry, not coming", models.StatusUnavailable, true},
		{"can't make it, sorry", models.StatusUnavailable, true},
		{"❌", models.StatusUnavailable, true},
		{"maybe, depends on work", models.StatusMaybe, true},
		{"not sure yet", models.StatusMaybe, true},
		{"Yes, no problem!", models.StatusConfirmed, true},
		{"No problem, we'll be there", models.StatusConfirmed, true},
		{"Of course we're coming, no doubt", models.StatusConfirmed, true},
		{"Yes! Might be a little late", models.StatusConfirmed, true},
		{"No, maybe next time", models.StatusUnavailable, true},
		{"I'm not sure we're coming", models.StatusMaybe, true},
		{"I can’t come", models.StatusUnavailable, true},
		{"We won’t make it, sorry", models.StatusUnavailable, true},
		{"Sorry, I'm unable to attend", models.StatusUnavailable, true},
		{"I don't know the venue address", "", false},
		{"what time does it start?", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ClassifyReply(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("ClassifyReply(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyReplyNormalises(t *testing.T) {
	tests := []struct {
		text string
		want models.RSVPStatus
	}{
		{"yes", models.RSVPAccepted},
		{"nope", models.RSVPDeclined},
		{"perhaps", models.RSVPPending},
	}
	for _, tt := range tests {
		status, ok := ClassifyReply(tt.text)
		if !ok {
			t.Fatalf("ClassifyReply(%q) not recognised", tt.text)
		}
		if got := MapStatusToRSVP(status); got != tt.want {
			t.Errorf("%q normalised to %q, want %q", tt.text, got, tt.want)
		}
	}
}
