package catalog

import "github.com/angelmondragon/astrosocial-backend/internal/resource"

var RoleDescriptor = resource.Descriptor{
	Name:          "Role",
	IDColumn:      "role_id",
	SearchColumns: []string{"name"},
	SortColumns:   []string{"name"},
	DeletePolicy:  resource.SoftDelete,
}

var CountryDescriptor = resource.Descriptor{
	Name:          "Country",
	IDColumn:      "country_id",
	SearchColumns: []string{"name"},
	SortColumns:   []string{"name"},
	DefaultSort:   "name",
	DeletePolicy:  resource.HardDelete,
}

var StateDescriptor = resource.Descriptor{
	Name:          "State",
	IDColumn:      "state_id",
	SearchColumns: []string{"name"},
	Filters:       map[string]string{"country_id": "country_id"},
	SortColumns:   []string{"name", "country_id"},
	DefaultSort:   "name",
	DeletePolicy:  resource.HardDelete,
}

var CityDescriptor = resource.Descriptor{
	Name:          "City",
	IDColumn:      "city_id",
	SearchColumns: []string{"name"},
	Filters: map[string]string{
		"state_id":   "state_id",
		"country_id": "country_id",
	},
	SortColumns:  []string{"name", "state_id", "country_id"},
	DefaultSort:  "name",
	DeletePolicy: resource.HardDelete,
}

var CategoryDescriptor = resource.Descriptor{
	Name:          "Category",
	IDColumn:      "category_id",
	SearchColumns: []string{"category_name"},
	SortColumns:   []string{"category_name"},
	DeletePolicy:  resource.SoftDelete,
}

var AppCategoryDescriptor = resource.Descriptor{
	Name:          "App category",
	IDColumn:      "app_category_id",
	SearchColumns: []string{"category_name"},
	SortColumns:   []string{"category_name"},
	DeletePolicy:  resource.SoftDelete,
}

var StatusDescriptor = resource.Descriptor{
	Name:          "Status",
	IDColumn:      "status_id",
	SearchColumns: []string{"name"},
	SortColumns:   []string{"name"},
	DeletePolicy:  resource.HardDelete,
}

var AstrologerClassDescriptor = resource.Descriptor{
	Name:          "Astrologer class",
	IDColumn:      "astrologer_class_id",
	SearchColumns: []string{"title", "description", "target_audience"},
	Filters: map[string]string{
		"astrologer_id": "astrologer_id",
		"category_id":   "category_id",
		"class_type":    "class_type",
		"access":        "access",
	},
	SortColumns:  []string{"title", "pricing", "class_type"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "astrologer_id",
}

var classActivityFilters = map[string]string{"class_id": "class_id", "user_id": "created_by"}

var ClassJoinDescriptor = resource.Descriptor{
	Name:         "Class join",
	IDColumn:     "class_join_user_id",
	Filters:      classActivityFilters,
	SortColumns:  []string{"class_id"},
	DeletePolicy: resource.SoftDelete,
}

var ClassShareDescriptor = resource.Descriptor{
	Name:         "Class share",
	IDColumn:     "class_share_user_id",
	Filters:      classActivityFilters,
	SortColumns:  []string{"class_id"},
	DeletePolicy: resource.SoftDelete,
}

var ClassViewDescriptor = resource.Descriptor{
	Name:         "Class view",
	IDColumn:     "class_view_user_id",
	Filters:      classActivityFilters,
	SortColumns:  []string{"class_id"},
	DeletePolicy: resource.SoftDelete,
}

var BookingDescriptor = resource.Descriptor{
	Name:     "Booking",
	IDColumn: "booking_astrologer_id",
	Filters: map[string]string{
		"astrologer_id":  "astrologer_id",
		"user_id":        "user_id",
		"call_status":    "call_status",
		"booking_status": "booking_status",
	},
	SortColumns:  []string{"booking_status", "call_status"},
	DeletePolicy: resource.SoftDelete,
}

var StreamDescriptor = resource.Descriptor{
	Name:          "Stream",
	IDColumn:      "stream_id",
	SearchColumns: []string{"title", "category_topic_tag", "description_session_agenda"},
	Filters: map[string]string{
		"stream_type":      "stream_type",
		"language_id":      "language_id",
		"visibility":       "visibility",
		"session_status":   "session_status",
		"byuser_stream_id": "byuser_stream_id",
	},
	SortColumns:  []string{"title", "datetime", "entry_fee"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "byuser_stream_id",
}

var PlanDescriptor = resource.Descriptor{
	Name:          "Plan",
	IDColumn:      "plan_id",
	SearchColumns: []string{"name", "main_heading_text"},
	SortColumns:   []string{"name", "start_date"},
	DeletePolicy:  resource.SoftDelete,
}

var PlanSubscriptionDescriptor = resource.Descriptor{
	Name:     "Plan subscription",
	IDColumn: "plan_subscription_id",
	Filters: map[string]string{
		"plan_id":            "plan_id",
		"user_id":            "user_id",
		"payment_status":     "payment_status",
		"transaction_status": "transaction_status",
	},
	SortColumns:  []string{"expiry_date", "plan_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

var GiftDescriptor = resource.Descriptor{
	Name:          "Gift",
	IDColumn:      "gift_id",
	SearchColumns: []string{"name"},
	SortColumns:   []string{"name", "cost"},
	DeletePolicy:  resource.SoftDelete,
}
