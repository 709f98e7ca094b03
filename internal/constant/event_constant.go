package constant

// Schema.org event vocabulary as delivered by the scrapers.
const (
	EventStatusScheduled   = "EventScheduled"
	EventStatusCancelled   = "EventCancelled"
	EventStatusPostponed   = "EventPostponed"
	EventStatusRescheduled = "EventRescheduled"

	AttendanceModeOffline = "OfflineEventAttendanceMode"
	AttendanceModeOnline  = "OnlineEventAttendanceMode"
	AttendanceModeMixed   = "MixedEventAttendanceMode"
)
