package dto

type DashboardStatsResponse struct {
	TotalDemoRequests     int `json:"total_demo_requests"`
	ScheduledDemoRequests int `json:"scheduled_demo_requests"`
	TotalSubscribers      int `json:"total_subscribers"`
	NewContactMessages    int `json:"new_contact_messages"`
}
