package entity

// DashboardStats are the aggregate figures shown on the admin dashboard.
// Every field is produced by a count or grouped aggregate pushed down to
// the database, never by scanning full tables in application code.
type DashboardStats struct {
	TotalProfiles      int64                `json:"total_profiles"`
	TotalDonors        int64                `json:"total_donors"`
	TotalBanks         int64                `json:"total_banks"`
	TotalDonations     int64                `json:"total_donations"`
	VerifiedDonations  int64                `json:"verified_donations"`
	PendingRequests    int64                `json:"pending_requests"`
	ActiveRequests     int64                `json:"active_requests"`
	ActiveCampaigns    int64                `json:"active_campaigns"`
	DonorsByBloodGroup map[BloodGroup]int64 `json:"donors_by_blood_group"`
}
