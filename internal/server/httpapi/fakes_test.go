package httpapi

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/dbx"
	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/models"
	"github.com/vaultbox/vaultbox/internal/server/repositories/accounts"
	"github.com/vaultbox/vaultbox/internal/server/repositories/files"
	"github.com/vaultbox/vaultbox/internal/server/repositories/folders"
	"github.com/vaultbox/vaultbox/internal/server/repositories/sharelinks"
)

// In-memory repositories so the full HTTP stack can run without Postgres.
// The DBTX handle passed to the accessors is ignored.

type memRepos struct {
	mu         sync.Mutex
	accounts   map[string]*models.Account
	folders    map[string]*models.Folder
	files      map[string]*models.FileRecord
	sharelinks map[string]*models.ShareLink
}

func newMemRepos() *memRepos {
	return &memRepos{
		accounts:   make(map[string]*models.Account),
		folders:    make(map[string]*models.Folder),
		files:      make(map[string]*models.FileRecord),
		sharelinks: make(map[string]*models.ShareLink),
	}
}

func (m *memRepos) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *memRepos) Accounts(db dbx.DBTX) accounts.Repository     { return (*memAccounts)(m) }
func (m *memRepos) Folders(db dbx.DBTX) folders.Repository       { return (*memFolders)(m) }
func (m *memRepos) Files(db dbx.DBTX) files.Repository           { return (*memFiles)(m) }
func (m *memRepos) ShareLinks(db dbx.DBTX) sharelinks.Repository { return (*memShareLinks)(m) }

type memAccounts memRepos

func (r *memAccounts) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return common.ErrorAlreadyExists
		}
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *memAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memFolders memRepos

func (r *memFolders) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *memFolders) GetByID(ctx context.Context, accountID, id string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.AccountID != accountID {
		return nil, common.ErrorNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFolders) ListByParent(ctx context.Context, accountID string, parentID *string) ([]*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Folder
	for _, f := range r.folders {
		if f.AccountID == accountID && samePtr(f.ParentID, parentID) {
			cp := *f
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *memFolders) UpdateParent(ctx context.Context, accountID, id string, parentID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.AccountID != accountID {
		return common.ErrorNotFound
	}
	f.ParentID = parentID
	return nil
}

func (r *memFolders) Delete(ctx context.Context, accountID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.AccountID != accountID {
		return common.ErrorNotFound
	}
	delete(r.folders, id)
	return nil
}

func (r *memFolders) CountChildren(ctx context.Context, accountID, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, f := range r.folders {
		if f.AccountID == accountID && f.ParentID != nil && *f.ParentID == id {
			count++
		}
	}
	for _, f := range r.files {
		if f.AccountID == accountID && f.FolderID != nil && *f.FolderID == id {
			count++
		}
	}
	return count, nil
}

type memFiles memRepos

func (r *memFiles) Create(ctx context.Context, file *models.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *file
	r.files[file.ID] = &cp
	return nil
}

func (r *memFiles) GetByID(ctx context.Context, accountID, id string) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok || f.AccountID != accountID {
		return nil, common.ErrorNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFiles) ListByFolder(ctx context.Context, accountID string, folderID *string) ([]*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.FileRecord
	for _, f := range r.files {
		if f.AccountID == accountID && samePtr(f.FolderID, folderID) {
			cp := *f
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *memFiles) ListAll(ctx context.Context, accountID string) ([]*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.FileRecord
	for _, f := range r.files {
		if f.AccountID == accountID {
			cp := *f
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memFiles) Delete(ctx context.Context, accountID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok || f.AccountID != accountID {
		return common.ErrorNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *memFiles) StatsByAccount(ctx context.Context, accountID string) ([]*models.TypeStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byType := make(map[string]*models.TypeStat)
	for _, f := range r.files {
		if f.AccountID != accountID {
			continue
		}
		stat, ok := byType[f.FileType]
		if !ok {
			stat = &models.TypeStat{FileType: f.FileType}
			byType[f.FileType] = stat
		}
		stat.Count++
		stat.TotalBytes += f.SizeBytes
	}
	var result []*models.TypeStat
	for _, stat := range byType {
		result = append(result, stat)
	}
	return result, nil
}

type memShareLinks memRepos

func (r *memShareLinks) Create(ctx context.Context, link *models.ShareLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sharelinks[link.Token]; ok {
		return common.ErrorAlreadyExists
	}
	cp := *link
	r.sharelinks[link.Token] = &cp
	return nil
}

func (r *memShareLinks) GetByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.sharelinks[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *link
	return &cp, nil
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type quietLogger struct{}

func (quietLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (quietLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (quietLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l quietLogger) With(args ...any) logging.Logger                  { return l }
