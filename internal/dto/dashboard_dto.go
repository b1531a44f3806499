package dto

// DashboardStats is the teacher overview.
type DashboardStats struct {
	TotalStudents      int64 `json:"totalStudents"`
	ActiveStudents     int64 `json:"activeStudents"`
	TotalLessons       int64 `json:"totalLessons"`
	PendingAssignments int64 `json:"pendingAssignments"`
}

// StudentStats summarises one student's assignments and schedule.
type StudentStats struct {
	TotalAssignments     int `json:"totalAssignments"`
	PendingAssignments   int `json:"pendingAssignments"`
	CompletedAssignments int `json:"completedAssignments"`
	AverageGrade         int `json:"averageGrade"`
	UpcomingClasses      int `json:"upcomingClasses"`
}

// StudentDashboardResponse is the student portal landing payload.
type StudentDashboardResponse struct {
	Stats             StudentStats         `json:"stats"`
	RecentAssignments []AssignmentResponse `json:"recentAssignments"`
	UpcomingClasses   []ClassResponse      `json:"upcomingClasses"`
}
