package entity

// BloodGroup is one of the eight ABO/Rh blood types.
type BloodGroup string

const (
	BloodAPositive  BloodGroup = "A+"
	BloodANegative  BloodGroup = "A-"
	BloodBPositive  BloodGroup = "B+"
	BloodBNegative  BloodGroup = "B-"
	BloodABPositive BloodGroup = "AB+"
	BloodABNegative BloodGroup = "AB-"
	BloodOPositive  BloodGroup = "O+"
	BloodONegative  BloodGroup = "O-"
)

// AllBloodGroups lists every valid blood group in display order.
func AllBloodGroups() []BloodGroup {
	return []BloodGroup{
		BloodAPositive, BloodANegative,
		BloodBPositive, BloodBNegative,
		BloodABPositive, BloodABNegative,
		BloodOPositive, BloodONegative,
	}
}

// String returns the string representation of the BloodGroup.
func (b BloodGroup) String() string {
	return string(b)
}

// IsValid checks if the BloodGroup is a valid value.
func (b BloodGroup) IsValid() bool {
	switch b {
	case BloodAPositive, BloodANegative,
		BloodBPositive, BloodBNegative,
		BloodABPositive, BloodABNegative,
		BloodOPositive, BloodONegative:
		return true
	default:
		return false
	}
}
