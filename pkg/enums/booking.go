package enums

// CallStatus is the astrologer's decision on a booking request.
type CallStatus string

const (
	CallStatusApprove CallStatus = "Approve"
	CallStatusReject  CallStatus = "Reject"
)

var validCallStatuses = []CallStatus{CallStatusApprove, CallStatusReject}

func (c CallStatus) IsValid() bool { return contains(validCallStatuses, c) }

func ParseCallStatus(value string) (CallStatus, error) {
	return parse("call status", value, validCallStatuses)
}

// BookingStatus tracks the lifecycle of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func (b BookingStatus) IsValid() bool { return contains(validBookingStatuses, b) }

func ParseBookingStatus(value string) (BookingStatus, error) {
	return parse("booking status", value, validBookingStatuses)
}
