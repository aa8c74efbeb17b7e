package checklist

import "github.com/louisbranch/personnel.board/internal/services/board/domain"

var onboardingFallback = []domain.ChecklistItem{
	{Description: "Send Offer Letter & Contract", Category: "Legal", Department: domain.DepartmentHR, Timeline: "Day -14"},
	{Description: "Collect Signed Documents", Category: "Legal", Department: domain.DepartmentHR, Timeline: "Day -10"},
	{Description: "Order Laptop & Peripherals", Category: "Hardware", Department: domain.DepartmentIT, Timeline: "Day -7"},
	{Description: "Create Email & Slack Account", Category: "Accounts", Department: domain.DepartmentIT, Timeline: "Day -3"},
	{Description: "Assign Desk Seating", Category: "Facilities", Department: domain.DepartmentAdmin, Timeline: "Day -2"},
	{Description: "Prepare Access Badge", Category: "Security", Department: domain.DepartmentAdmin, Timeline: "Day -1"},
}

var offboardingFallback = []domain.ChecklistItem{
	{Description: "Conduct Exit Interview", Category: "HR", Department: domain.DepartmentHR, Timeline: "Day -7"},
	{Description: "Revoke System Access", Category: "Security", Department: domain.DepartmentIT, Timeline: "Day 0"},
	{Description: "Collect Laptop", Category: "Hardware", Department: domain.DepartmentIT, Timeline: "Day 0"},
	{Description: "Collect Building Badge", Category: "Facilities", Department: domain.DepartmentAdmin, Timeline: "Day 0"},
}

// Fallback returns the fixed checklist used when generation is unavailable.
// Anything other than OFFBOARDING gets the onboarding list.
func Fallback(processType domain.ProcessType) []domain.ChecklistItem {
	if processType == domain.ProcessOffboarding {
		return append([]domain.ChecklistItem(nil), offboardingFallback...)
	}
	return append([]domain.ChecklistItem(nil), onboardingFallback...)
}
