package models

// All lists every table model, in dependency order, for schema tooling and tests.
func All() []any {
	return []any{
		&Role{},
		&Country{},
		&State{},
		&City{},
		&Category{},
		&AppCategory{},
		&StatusLabel{},
		&OTPType{},
		&NotificationType{},
		&User{},
		&Wallet{},
		&OTP{},
		&Notification{},
		&AstrologerClass{},
		&ClassJoinUser{},
		&ClassShareUser{},
		&ClassViewUser{},
		&BookingAstrologer{},
		&MyShorts{},
		&LikeShorts{},
		&ShareShorts{},
		&TagShorts{},
		&CommentShorts{},
		&Stream{},
		&Plan{},
		&PlanSubscriptionByUser{},
		&Gift{},
		&HoroscopeQuiz{},
		&HoroscopeQuizMapUser{},
		&HoroscopeQuizClaimGift{},
	}
}
