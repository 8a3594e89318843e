package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFee(t *testing.T) {
	cases := []struct {
		fee  float64
		want Reason
	}{
		{-0.01, FeeNegative},
		{-500, FeeNegative},
		{0, ""},
		{250, ""},
		{50000, ""},
		{50000.01, FeeTooHigh},
		{60000, FeeTooHigh},
	}

	for _, tc := range cases {
		err := ValidateFee(tc.fee)
		if tc.want == "" {
			assert.NoError(t, err, "fee %.2f", tc.fee)
			continue
		}
		reason, ok := ReasonOf(err)
		require.True(t, ok, "fee %.2f: expected a violation, got %v", tc.fee, err)
		assert.Equal(t, tc.want, reason, "fee %.2f", tc.fee)
	}
}

func TestValidateContact(t *testing.T) {
	cases := []struct {
		name  string
		email string
		phone string
		want  Reason
	}{
		{"valid", "ana@example.com", "+1 (555) 123-4567", ""},
		{"valid subdomain", "a.b+c@mail.shelter.org", "5551234567", ""},
		{"missing at", "ana.example.com", "5551234567", InvalidEmailFormat},
		{"missing tld", "ana@example", "5551234567", InvalidEmailFormat},
		{"spaces", "ana maria@example.com", "5551234567", InvalidEmailFormat},
		{"short phone", "ana@example.com", "555-1234", PhoneTooShort},
		{"email wins over phone", "bad", "1", InvalidEmailFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateContact(tc.email, tc.phone)
			if tc.want == "" {
				require.NoError(t, err)
				return
			}
			reason, ok := ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.want, reason)
		})
	}
}

func TestValidateStatusTransition(t *testing.T) {
	for _, s := range []string{"Completed", "Trial Period", "Returned", "Cancelled"} {
		assert.NoError(t, ValidateStatusTransition(KindAdoption, "Completed", s))
	}
	for _, s := range []string{"Pending", "Approved", "Rejected", "Under Review"} {
		assert.NoError(t, ValidateStatusTransition(KindApplication, "Pending", s))
	}

	// terminal states are not locked
	assert.NoError(t, ValidateStatusTransition(KindAdoption, "Returned", "Completed"))

	err := ValidateStatusTransition(KindAdoption, "Completed", "Approved")
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidStatus, reason)

	err = ValidateStatusTransition(KindApplication, "Pending", "completed")
	reason, _ = ReasonOf(err)
	assert.Equal(t, InvalidStatus, reason)
}

func TestValidateCapacity(t *testing.T) {
	assert.NoError(t, ValidateCapacity(0, 1))
	assert.NoError(t, ValidateCapacity(9, 10))

	for _, occ := range []int{10, 11} {
		reason, ok := ReasonOf(ValidateCapacity(occ, 10))
		require.True(t, ok)
		assert.Equal(t, ShelterAtCapacity, reason)
	}
}

func TestPermittedStatuses_ReturnsCopy(t *testing.T) {
	got := PermittedStatuses(KindPet)
	got[0] = "mutated"
	assert.Equal(t, "Available", PermittedStatuses(KindPet)[0])
}
