package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/dbx"
	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/models"
	"github.com/vaultbox/vaultbox/internal/server/repositories/repomanager"
	"github.com/vaultbox/vaultbox/internal/server/storage"
)

// DirectoryService owns the per-account folder hierarchy and file
// placement. Uploads are two-phase: the encrypted blob is made durable in
// the content store first, and only then does a file row become visible, so
// a record never references content that is not yet durable.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	masterKey   []byte
	logger      logging.Logger
	now         func() time.Time
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, masterKey []byte, logger logging.Logger) *DirectoryService {
	return &DirectoryService{
		db:          db,
		repomanager: m,
		store:       store,
		masterKey:   masterKey,
		logger:      logger,
		now:         time.Now,
	}
}

// ListChildren returns the folders and files directly under folderID (nil
// means the account root). A non-nil folderID that does not belong to the
// account yields ErrorNotFound.
func (s *DirectoryService) ListChildren(ctx context.Context, accountID string, folderID *string) ([]*models.Folder, []*models.FileRecord, error) {
	folderRepo := s.repomanager.Folders(s.db)
	fileRepo := s.repomanager.Files(s.db)

	if folderID != nil {
		if _, err := folderRepo.GetByID(ctx, accountID, *folderID); err != nil {
			return nil, nil, err
		}
	}

	folders, err := folderRepo.ListByParent(ctx, accountID, folderID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing folders: %w", err)
	}
	files, err := fileRepo.ListByFolder(ctx, accountID, folderID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing files: %w", err)
	}
	return folders, files, nil
}

// ListAllFiles returns every file of the account across all folders,
// newest first.
func (s *DirectoryService) ListAllFiles(ctx context.Context, accountID string) ([]*models.FileRecord, error) {
	files, err := s.repomanager.Files(s.db).ListAll(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return files, nil
}

// CreateFolder creates a folder under parentID (nil means the account
// root). The name must be non-empty after trimming; duplicate names are
// permitted.
func (s *DirectoryService) CreateFolder(ctx context.Context, accountID, name string, parentID *string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorInvalidInput
	}

	folderRepo := s.repomanager.Folders(s.db)

	if parentID != nil {
		if _, err := folderRepo.GetByID(ctx, accountID, *parentID); err != nil {
			return nil, err
		}
	}

	folder := &models.Folder{
		ID:        uuid.NewString(),
		AccountID: accountID,
		ParentID:  parentID,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := folderRepo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}
	return folder, nil
}

// MoveFolder re-parents a folder (nil parent means the account root). A
// move that would make the folder its own descendant yields
// ErrorInvalidInput, keeping parent chains acyclic.
func (s *DirectoryService) MoveFolder(ctx context.Context, accountID, folderID string, newParentID *string) (*models.Folder, error) {
	folderRepo := s.repomanager.Folders(s.db)

	folder, err := folderRepo.GetByID(ctx, accountID, folderID)
	if err != nil {
		return nil, err
	}

	if newParentID != nil {
		if *newParentID == folderID {
			return nil, common.ErrorInvalidInput
		}
		// walk up from the new parent; meeting the moved folder means the
		// move would close a cycle
		cursor := newParentID
		for cursor != nil {
			parent, err := folderRepo.GetByID(ctx, accountID, *cursor)
			if err != nil {
				return nil, err
			}
			if parent.ID == folderID {
				return nil, common.ErrorInvalidInput
			}
			cursor = parent.ParentID
		}
	}

	if err := folderRepo.UpdateParent(ctx, accountID, folderID, newParentID); err != nil {
		return nil, err
	}
	folder.ParentID = newParentID
	return folder, nil
}

// DeleteFolder removes an empty folder. Deleting a folder that still
// contains folders or files is rejected with ErrorInvalidInput; the check
// and the delete run in one transaction so a concurrent upload cannot slip
// a file into a folder being removed.
func (s *DirectoryService) DeleteFolder(ctx context.Context, accountID, folderID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		folderRepo := s.repomanager.Folders(tx)

		if _, err := folderRepo.GetByID(ctx, accountID, folderID); err != nil {
			return err
		}
		count, err := folderRepo.CountChildren(ctx, accountID, folderID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: folder is not empty", common.ErrorInvalidInput)
		}
		return folderRepo.Delete(ctx, accountID, folderID)
	})
}

// PlaceFile encrypts and stores the uploaded content, then records the file
// under folderID (nil means the account root). The record is inserted only
// after the content store has accepted the blob; a crash in between leaves
// an orphaned blob, never a dangling record.
func (s *DirectoryService) PlaceFile(ctx context.Context, accountID string, folderID *string, filename string, data []byte) (*models.FileRecord, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, common.ErrorInvalidInput
	}

	folderRepo := s.repomanager.Folders(s.db)
	fileRepo := s.repomanager.Files(s.db)

	if folderID != nil {
		if _, err := folderRepo.GetByID(ctx, accountID, *folderID); err != nil {
			return nil, err
		}
	}

	sealed, err := sealContent(data, s.masterKey)
	if err != nil {
		return nil, common.ErrorInternal
	}

	contentRef := storage.NewContentRef()
	if err := s.store.Put(ctx, contentRef, sealed.Ciphertext); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageFailure, err)
	}

	file := &models.FileRecord{
		ID:               uuid.NewString(),
		AccountID:        accountID,
		FolderID:         folderID,
		Filename:         filename,
		FileType:         fileTypeOf(filename),
		SizeBytes:        int64(len(data)),
		ContentRef:       contentRef,
		EncryptedFileKey: sealed.EncryptedFileKey,
		KeyNonce:         sealed.KeyNonce,
		Nonce:            sealed.Nonce,
		CreatedAt:        s.now(),
	}
	if err := fileRepo.Create(ctx, file); err != nil {
		// the blob is already durable; leave it orphaned rather than risk
		// a record pointing at reclaimed content
		return nil, fmt.Errorf("error creating file record: %w", err)
	}
	return file, nil
}

// DeleteFile removes a file record and eagerly reclaims its blob. The row
// goes first: once it is gone no new reader can resolve the content ref,
// and an already-resolved download simply completes.
func (s *DirectoryService) DeleteFile(ctx context.Context, accountID, fileID string) error {
	fileRepo := s.repomanager.Files(s.db)

	file, err := fileRepo.GetByID(ctx, accountID, fileID)
	if err != nil {
		return err
	}
	if err := fileRepo.Delete(ctx, accountID, fileID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.ContentRef); err != nil {
		// the record is gone; the orphaned blob is unreachable and can be
		// cleaned up out of band
		s.logger.Warn(ctx, "failed to delete blob", "content_ref", file.ContentRef, "error", err.Error())
	}
	return nil
}

// Download returns the decrypted content of an owned file together with its
// record.
func (s *DirectoryService) Download(ctx context.Context, accountID, fileID string) (*models.FileRecord, []byte, error) {
	fileRepo := s.repomanager.Files(s.db)

	file, err := fileRepo.GetByID(ctx, accountID, fileID)
	if err != nil {
		return nil, nil, err
	}

	blob, err := s.store.Get(ctx, file.ContentRef)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorStorageFailure, err)
	}

	plaintext, err := openContent(file, blob, s.masterKey)
	if err != nil {
		return nil, nil, err
	}
	return file, plaintext, nil
}

// fileTypeOf derives the type bucket key from a filename extension.
func fileTypeOf(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "unknown"
	}
	return strings.ToLower(ext)
}
