package resource

// Creatable is a validated create body. actor is the authenticated user id.
type Creatable[T any] interface {
	ToModel(actor int64) *T
}

// Patch is a validated update body.
type Patch interface {
	Changes() map[string]any
}
