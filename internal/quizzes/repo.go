package quizzes

import (
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
)

var QuizDescriptor = resource.Descriptor{
	Name:          "Horoscope quiz",
	IDColumn:      "question_id",
	SearchColumns: []string{"question_text"},
	SortColumns:   []string{"time_minutes"},
	DeletePolicy:  resource.SoftDelete,
}

var AttemptDescriptor = resource.Descriptor{
	Name:     "Horoscope quiz map user",
	IDColumn: "quiz_map_user_id",
	Filters: map[string]string{
		"user_id":     "user_id",
		"question_id": "question_id",
	},
	SortColumns:  []string{"score", "question_id", "user_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

var ClaimDescriptor = resource.Descriptor{
	Name:          "Horoscope quiz claim gift",
	IDColumn:      "quiz_claim_gift_id",
	SearchColumns: []string{"name", "mobileno", "pincode"},
	Filters:       map[string]string{"gift_id": "gift_id"},
	SortColumns:   []string{"name", "gift_id"},
	DeletePolicy:  resource.SoftDelete,
}
