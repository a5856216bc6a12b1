package internal

import (
	"github.com/artemdev/contacts-book-rest-api/aws"
	"github.com/artemdev/contacts-book-rest-api/internal/repository"
	"github.com/artemdev/contacts-book-rest-api/internal/service"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Users    *repository.UserRepo
	Contacts *repository.ContactRepo
	Argon    *security.ArgonHash
	Tokens   *security.Tokens
	Mail     *service.Mailer
	Avatars  *service.Gravatar
	S3       *aws.S3Client
	Tasks    *service.Tasks
}
