package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProductTiers(t *testing.T) {
	cases := []struct {
		name  string
		facts Facts
		want  Verification
	}{
		{
			name:  "try-on beats full profile",
			facts: Facts{EmailVerified: true, HasFirstName: true, HasLastName: true, TriedOnProduct: true},
			want:  Verification{Verified: true, Type: VerificationTryOn, Level: 1},
		},
		{
			name:  "try-on without verified email does not count",
			facts: Facts{TriedOnProduct: true, HasFirstName: true, HasLastName: true},
			want:  Verification{},
		},
		{
			name:  "full profile without try-on",
			facts: Facts{EmailVerified: true, HasFirstName: true, HasLastName: true},
			want:  Verification{Verified: true, Type: VerificationEmailProfile, Level: 2},
		},
		{
			name:  "first name alone is not a full profile",
			facts: Facts{EmailVerified: true, HasFirstName: true},
			want:  Verification{Verified: true, Type: VerificationEmail, Level: 3},
		},
		{
			name:  "verified email alone",
			facts: Facts{EmailVerified: true},
			want:  Verification{Verified: true, Type: VerificationEmail, Level: 3},
		},
		{
			name:  "nothing",
			facts: Facts{},
			want:  Verification{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(ItemTypeProduct, tc.facts))
		})
	}
}

func TestClassifyBoutiqueIgnoresTryOn(t *testing.T) {
	// A try-on fact on a boutique review must not produce the try_on tier;
	// the best a boutique reviewer can reach is email_profile.
	got := Classify(ItemTypeBoutique, Facts{EmailVerified: true, HasFirstName: true, HasLastName: true, TriedOnProduct: true})
	assert.Equal(t, Verification{Verified: true, Type: VerificationEmailProfile, Level: 2}, got)

	got = Classify(ItemTypeBoutique, Facts{EmailVerified: true, TriedOnProduct: true})
	assert.Equal(t, Verification{Verified: true, Type: VerificationEmail, Level: 3}, got)
}

func TestClassifyUnverifiedShape(t *testing.T) {
	got := Classify(ItemTypeBoutique, Facts{HasFirstName: true, HasLastName: true})
	assert.False(t, got.Verified)
	assert.Empty(t, got.Type)
	assert.Zero(t, got.Level)
}

func TestClassifyDeterministic(t *testing.T) {
	facts := Facts{EmailVerified: true, TriedOnProduct: true}
	first := Classify(ItemTypeProduct, facts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(ItemTypeProduct, facts))
	}
}
