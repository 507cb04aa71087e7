package domain

// Entity is implemented by every record the generic list services manage.
type Entity interface {
	EntityID() int64
}
