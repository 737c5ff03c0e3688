package role

import (
	"strings"

	"github.com/roleadmin/roleadmin/internal/db/models"
)

// Input is the form data of a role.
type Input struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=255"`
}

func inputFrom(r *models.Role) *Input {
	return &Input{Name: r.Name, Description: r.Description}
}

func (in *Input) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

func (in *Input) apply(r *models.Role) {
	r.Name = in.Name
	r.Description = in.Description
}
