package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. UpdatedAt records the instant of the
// last lifecycle change; when Disabled is true it marks the disable instant
// that bounds the patient's reporting window.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	Disabled  bool       `db:"disabled" json:"disabled"`
}
