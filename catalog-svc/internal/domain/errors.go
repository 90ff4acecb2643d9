package domain

// NotFoundError is returned when a query succeeded but matched no rows.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFound(resource, qualifier string) *NotFoundError {
	msg := "No " + resource + " found"
	if qualifier != "" {
		msg += " for " + qualifier
	}
	return &NotFoundError{Message: msg}
}
