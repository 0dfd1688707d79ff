package dto

// PlatformStatsResponse summarizes activity across every hotel.
type PlatformStatsResponse struct {
	TotalHotels         int `json:"total_hotels"`
	TotalGuests         int `json:"total_guests"`
	RecentRegistrations int `json:"recent_registrations"`
}

// HotelStatsResponse summarizes a single hotel's registrations for the
// current day.
type HotelStatsResponse struct {
	HotelID        string `json:"hotel_id"`
	TotalGuests    int    `json:"total_guests"`
	CheckInsToday  int    `json:"check_ins_today"`
	CheckOutsToday int    `json:"check_outs_today"`
}
