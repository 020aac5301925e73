package enums

// ClassType is the delivery format of an astrologer class.
type ClassType string

const (
	ClassTypeRecordedVideo ClassType = "Recorded Video"
	ClassTypeAudio         ClassType = "Audio"
	ClassTypePDF           ClassType = "PDF"
	ClassTypeLiveSession   ClassType = "Live Session"
)

var validClassTypes = []ClassType{
	ClassTypeRecordedVideo,
	ClassTypeAudio,
	ClassTypePDF,
	ClassTypeLiveSession,
}

func (c ClassType) IsValid() bool { return contains(validClassTypes, c) }

func ParseClassType(value string) (ClassType, error) {
	return parse("class type", value, validClassTypes)
}

// ClassAccess gates who can consume a class.
type ClassAccess string

const (
	ClassAccessFree    ClassAccess = "Free"
	ClassAccessPremium ClassAccess = "Premium"
)

var validClassAccess = []ClassAccess{ClassAccessFree, ClassAccessPremium}

func (c ClassAccess) IsValid() bool { return contains(validClassAccess, c) }

func ParseClassAccess(value string) (ClassAccess, error) {
	return parse("class access", value, validClassAccess)
}
