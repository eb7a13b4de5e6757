package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type CreateRequest struct {
	Name  string
	Email string
	Phone string
}

// UpdateRequest carries owner-supplied fields; empty fields keep their
// current value.
type UpdateRequest struct {
	Name  string
	Email string
	Phone string
}
