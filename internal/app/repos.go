package app

import (
	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/repos"
)

type Repos struct {
	User          repos.UserRepo
	UserToken     repos.UserTokenRepo
	Document      repos.DocumentRepo
	DocumentChunk repos.DocumentChunkRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:          repos.NewUserRepo(db, log),
		UserToken:     repos.NewUserTokenRepo(db, log),
		Document:      repos.NewDocumentRepo(db, log),
		DocumentChunk: repos.NewDocumentChunkRepo(db, log),
	}
}
