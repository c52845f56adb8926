package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasActiveSubscription(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
		sub     *Subscription
		want    bool
	}{
		{name: "admin without row", isAdmin: true, sub: nil, want: true},
		{name: "admin with inactive row", isAdmin: true, sub: &Subscription{Status: SubscriptionInactive}, want: true},
		{name: "user without row", isAdmin: false, sub: nil, want: false},
		{name: "user with active row", isAdmin: false, sub: &Subscription{Status: SubscriptionActive}, want: true},
		{name: "user with inactive row", isAdmin: false, sub: &Subscription{Status: SubscriptionInactive}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasActiveSubscription(tt.isAdmin, tt.sub))
		})
	}
}

func TestShouldActivateFreeTier(t *testing.T) {
	tests := []struct {
		name        string
		nationality string
		isAdmin     bool
		sub         *Subscription
		want        bool
	}{
		{name: "rwandan without row", nationality: "rwandan", want: true},
		{name: "rwandan case-insensitive", nationality: "Rwandan", want: true},
		{name: "rwandan uppercase", nationality: "RWANDAN", want: true},
		{name: "rwandan with inactive row", nationality: "rwandan", sub: &Subscription{Status: SubscriptionInactive}, want: true},
		{name: "rwandan already active", nationality: "rwandan", sub: &Subscription{Status: SubscriptionActive}, want: false},
		{name: "rwandan admin", nationality: "rwandan", isAdmin: true, want: false},
		{name: "foreigner without row", nationality: "german", want: false},
		{name: "empty nationality", nationality: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldActivateFreeTier(tt.nationality, tt.isAdmin, tt.sub))
		})
	}
}
