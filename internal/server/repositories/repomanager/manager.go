package repomanager

import (
	"context"
	"database/sql"

	"github.com/vaultbox/vaultbox/internal/dbx"
	"github.com/vaultbox/vaultbox/internal/server/repositories/accounts"
	"github.com/vaultbox/vaultbox/internal/server/repositories/files"
	"github.com/vaultbox/vaultbox/internal/server/repositories/folders"
	"github.com/vaultbox/vaultbox/internal/server/repositories/sharelinks"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
}
