package enums

type StreamVisibility string

const (
	StreamVisibilityPublic   StreamVisibility = "public"
	StreamVisibilityPrivate  StreamVisibility = "private"
	StreamVisibilityUnlisted StreamVisibility = "unlisted"
)

var validStreamVisibilities = []StreamVisibility{
	StreamVisibilityPublic,
	StreamVisibilityPrivate,
	StreamVisibilityUnlisted,
}

func (v StreamVisibility) IsValid() bool { return contains(validStreamVisibilities, v) }

func ParseStreamVisibility(value string) (StreamVisibility, error) {
	return parse("stream visibility", value, validStreamVisibilities)
}

// SessionStatus is the live state of a stream session.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusLive      SessionStatus = "live"
	SessionStatusEnded     SessionStatus = "ended"
	SessionStatusCancelled SessionStatus = "cancelled"
)

var validSessionStatuses = []SessionStatus{
	SessionStatusScheduled,
	SessionStatusLive,
	SessionStatusEnded,
	SessionStatusCancelled,
}

func (s SessionStatus) IsValid() bool { return contains(validSessionStatuses, s) }

func ParseSessionStatus(value string) (SessionStatus, error) {
	return parse("session status", value, validSessionStatuses)
}
