package enums

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var validGenders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) IsValid() bool { return contains(validGenders, g) }

func ParseGender(value string) (Gender, error) {
	return parse("gender", value, validGenders)
}

// ContentFormat is the user's preferred consumption format.
type ContentFormat string

const (
	ContentFormatText  ContentFormat = "Text"
	ContentFormatAudio ContentFormat = "Audio"
)

var validContentFormats = []ContentFormat{ContentFormatText, ContentFormatAudio}

func (c ContentFormat) IsValid() bool { return contains(validContentFormats, c) }

func ParseContentFormat(value string) (ContentFormat, error) {
	return parse("content format", value, validContentFormats)
}

// Seeded reference ids.
const (
	DefaultRoleID    int64 = 1
	DefaultCountryID int64 = 1
	DefaultStateID   int64 = 1
	DefaultCityID    int64 = 1

	// OTPTypeLogin is the otp_types row used for passwordless login.
	OTPTypeLogin int64 = 1
)
