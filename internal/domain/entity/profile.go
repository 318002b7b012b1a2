package entity

import "time"

// DonationDeferralPeriod is the minimum interval between whole blood donations.
const DonationDeferralPeriod = 56 * 24 * time.Hour

// Profile is the stored application profile for one authenticated identity.
// Exactly one profile exists per identifier.
type Profile struct {
	UID               string      `json:"uid"`
	Email             string      `json:"email"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Phone             *string     `json:"phone,omitempty"`
	DateOfBirth       *time.Time  `json:"date_of_birth,omitempty"`
	BloodGroup        *BloodGroup `json:"blood_group,omitempty"`
	Gender            *string     `json:"gender,omitempty"`
	Role              Role        `json:"role"`
	MedicalConditions *string     `json:"medical_conditions,omitempty"`
	IsEligible        bool        `json:"is_eligible"`
	NextEligibleDate  *time.Time  `json:"next_eligible_date,omitempty"`
	LastDonationDate  *time.Time  `json:"last_donation_date,omitempty"`
	TotalDonations    int         `json:"total_donations"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// NewDefaultProfile builds the stub persisted on first sign-in when no
// profile exists yet for the identity.
func NewDefaultProfile(uid, email string) *Profile {
	return &Profile{
		UID:        uid,
		Email:      email,
		Role:       RoleDonor,
		IsEligible: true,
	}
}

// FullName returns the display name, which may be empty for stub profiles.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "" && p.LastName == "":
		return ""
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// RecordDonation applies the profile-side effects of a verified donation.
// The donor is deferred until the standard eligibility window elapses.
func (p *Profile) RecordDonation(donatedAt time.Time) {
	next := donatedAt.Add(DonationDeferralPeriod)
	p.TotalDonations++
	p.LastDonationDate = &donatedAt
	p.NextEligibleDate = &next
	p.IsEligible = false
}

// CanDonate reports whether the donor is eligible at the given time.
func (p *Profile) CanDonate(now time.Time) bool {
	if p.IsEligible {
		return true
	}
	if p.NextEligibleDate != nil && !now.Before(*p.NextEligibleDate) {
		return true
	}

	return false
}
