package internal

import (
	"bitwise74/task-api/config"
	"bitwise74/task-api/internal/store"
	"bitwise74/task-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Tokens   *security.TokenService
	Users    *store.Users
	Projects *store.Projects
	Tasks    *store.Tasks
}
