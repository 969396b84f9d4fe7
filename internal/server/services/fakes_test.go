package services

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

// In-memory repositories backing service tests. They ignore the DBTX handle
// handed to the manager accessors, so services can be exercised without a
// database.

type fakeAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*models.Account)}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return common.ErrorAlreadyExists
	}
	cp := *account
	r.byEmail[account.Email] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *account
	return &cp, nil
}

type fakeFolderRepo struct {
	mu    sync.Mutex
	byID  map[string]*models.Folder
	files *fakeFileRepo
}

func newFakeFolderRepo(files *fakeFileRepo) *fakeFolderRepo {
	return &fakeFolderRepo{byID: make(map[string]*models.Folder), files: files}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *folder
	r.byID[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, accountID, id string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.byID[id]
	if !ok || folder.AccountID != accountID {
		return nil, common.ErrorNotFound
	}
	cp := *folder
	return &cp, nil
}

func (r *fakeFolderRepo) ListByParent(ctx context.Context, accountID string, parentID *string) ([]*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Folder
	for _, folder := range r.byID {
		if folder.AccountID == accountID && equalPtr(folder.ParentID, parentID) {
			cp := *folder
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) UpdateParent(ctx context.Context, accountID, id string, parentID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.byID[id]
	if !ok || folder.AccountID != accountID {
		return common.ErrorNotFound
	}
	folder.ParentID = parentID
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, accountID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.byID[id]
	if !ok || folder.AccountID != accountID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeFolderRepo) CountChildren(ctx context.Context, accountID, id string) (int64, error) {
	r.mu.Lock()
	var count int64
	for _, folder := range r.byID {
		if folder.AccountID == accountID && folder.ParentID != nil && *folder.ParentID == id {
			count++
		}
	}
	r.mu.Unlock()

	r.files.mu.Lock()
	for _, file := range r.files.byID {
		if file.AccountID == accountID && file.FolderID != nil && *file.FolderID == id {
			count++
		}
	}
	r.files.mu.Unlock()
	return count, nil
}

type fakeFileRepo struct {
	mu   sync.Mutex
	byID map[string]*models.FileRecord
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{byID: make(map[string]*models.FileRecord)}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *file
	r.byID[file.ID] = &cp
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, accountID, id string) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.byID[id]
	if !ok || file.AccountID != accountID {
		return nil, common.ErrorNotFound
	}
	cp := *file
	return &cp, nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, accountID string, folderID *string) ([]*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.FileRecord
	for _, file := range r.byID {
		if file.AccountID == accountID && equalPtr(file.FolderID, folderID) {
			cp := *file
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeFileRepo) ListAll(ctx context.Context, accountID string) ([]*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.FileRecord
	for _, file := range r.byID {
		if file.AccountID == accountID {
			cp := *file
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, accountID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.byID[id]
	if !ok || file.AccountID != accountID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeFileRepo) StatsByAccount(ctx context.Context, accountID string) ([]*models.TypeStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byType := make(map[string]*models.TypeStat)
	for _, file := range r.byID {
		if file.AccountID != accountID {
			continue
		}
		stat, ok := byType[file.FileType]
		if !ok {
			stat = &models.TypeStat{FileType: file.FileType}
			byType[file.FileType] = stat
		}
		stat.Count++
		stat.TotalBytes += file.SizeBytes
	}
	var result []*models.TypeStat
	for _, stat := range byType {
		result = append(result, stat)
	}
	return result, nil
}

type fakeShareLinkRepo struct {
	mu      sync.Mutex
	byToken map[string]*models.ShareLink
}

func newFakeShareLinkRepo() *fakeShareLinkRepo {
	return &fakeShareLinkRepo{byToken: make(map[string]*models.ShareLink)}
}

func (r *fakeShareLinkRepo) Create(ctx context.Context, link *models.ShareLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byToken[link.Token]; ok {
		return common.ErrorAlreadyExists
	}
	cp := *link
	r.byToken[link.Token] = &cp
	return nil
}

func (r *fakeShareLinkRepo) GetByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *link
	return &cp, nil
}

// fakeRepoManager vends the fakes regardless of the handle it is given.
type fakeRepoManager struct {
	accounts   *fakeAccountRepo
	folders    *fakeFolderRepo
	files      *fakeFileRepo
	sharelinks *fakeShareLinkRepo
}

func newFakeRepoManager() *fakeRepoManager {
	fileRepo := newFakeFileRepo()
	return &fakeRepoManager{
		accounts:   newFakeAccountRepo(),
		folders:    newFakeFolderRepo(fileRepo),
		files:      fileRepo,
		sharelinks: newFakeShareLinkRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository     { return m.accounts }
func (m *fakeRepoManager) Folders(db dbx.DBTX) folders.Repository       { return m.folders }
func (m *fakeRepoManager) Files(db dbx.DBTX) files.Repository           { return m.files }
func (m *fakeRepoManager) ShareLinks(db dbx.DBTX) sharelinks.Repository { return m.sharelinks }

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// noopLogger discards everything.
type noopLogger struct{}

func (noopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (noopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (noopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l noopLogger) With(args ...any) logging.Logger                  { return l }

var _ logging.Logger = noopLogger{}
