package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	"trackdeck/internal/storage"
	"trackdeck/pkg/utils"
)

const (
	// MaxFileSize caps regular uploads; session archives get more room.
	MaxFileSize        = 5 << 30  // 5 GB
	MaxSessionFileSize = 60 << 30 // 60 GB

	// FreeTierMaxUpload is where an upload starts counting as
	// storage-heavy; beyond it (and for session archives generally)
	// the producer's workspace must have pro access.
	FreeTierMaxUpload = 1 << 30 // 1 GB
)

// allowedMimeTypes is the per-category whitelist. Notes accept documents,
// everything else is audio plus the archive formats DAWs export.
var allowedMimeTypes = map[db_models.FileCategory][]string{
	db_models.CategoryStems: {
		"audio/wav", "audio/x-wav", "audio/wave", "audio/aiff", "audio/x-aiff",
		"audio/flac", "application/zip", "application/x-zip-compressed",
	},
	db_models.CategoryMixes: {
		"audio/wav", "audio/x-wav", "audio/wave", "audio/aiff", "audio/x-aiff",
		"audio/flac", "audio/mpeg", "audio/mp4", "audio/aac", "audio/ogg",
	},
	db_models.CategorySessions: {
		"application/zip", "application/x-zip-compressed", "application/x-tar",
		"application/gzip", "application/octet-stream",
	},
	db_models.CategoryNotes: {
		"text/plain", "text/markdown", "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
}

// executableExtensions are rejected outright, in any position.
var executableExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true, ".scr": true,
	".msi": true, ".dll": true, ".sh": true, ".bash": true, ".ps1": true,
	".app": true, ".jar": true, ".vbs": true, ".js": true, ".php": true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._()\[\] -]`)

// ValidateUpload applies the full pre-upload gauntlet: size cap by
// category, MIME whitelist, double-extension and executable-extension
// rejection. Returns the sanitized filename the upload should store.
// None of these failures are retryable.
func ValidateUpload(fileName string, fileSize int64, mimeType string, category db_models.FileCategory) (string, error) {
	limit := int64(MaxFileSize)
	if category == db_models.CategorySessions {
		limit = MaxSessionFileSize
	}
	if fileSize > limit {
		return "", fmt.Errorf("%w: file exceeds the %d GB limit for %s", utils.ErrFileTooLarge, limit>>30, category)
	}

	allowed, ok := allowedMimeTypes[category]
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", utils.ErrValidation, category)
	}
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	match := false
	for _, m := range allowed {
		if m == mime {
			match = true
			break
		}
	}
	if !match {
		return "", fmt.Errorf("%w: %s is not accepted for %s", utils.ErrDisallowedMime, mime, category)
	}

	sanitized, err := SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return sanitized, nil
}

// SanitizeFileName strips any path component, rejects executable and
// stacked extensions, and squashes unsafe characters.
func SanitizeFileName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "" || base == "." || base == ".." {
		return "", fmt.Errorf("%w: empty file name", utils.ErrUnsafeFileName)
	}

	parts := strings.Split(base, ".")
	if len(parts) > 2 {
		// "mix.wav.exe" style names; one extension only
		return "", fmt.Errorf("%w: multiple extensions in %q", utils.ErrUnsafeFileName, base)
	}
	for _, p := range parts[1:] {
		if executableExtensions["."+strings.ToLower(p)] {
			return "", fmt.Errorf("%w: executable extension in %q", utils.ErrUnsafeFileName, base)
		}
	}

	sanitized := unsafeNameChars.ReplaceAllString(base, "_")
	if strings.Trim(sanitized, "._ ") == "" {
		return "", fmt.Errorf("%w: nothing left of %q after sanitizing", utils.ErrUnsafeFileName, base)
	}
	return sanitized, nil
}

type FileServiceInterface interface {
	ValidateFileUpload(ctx context.Context, req request_models.ValidateFileUploadRequest) (*response_models.ValidateFileResponse, error)
	Upload(ctx context.Context, sess *Session, projectID uuid.UUID, category db_models.FileCategory, fileName, mimeType, description string, content []byte) (*response_models.FileUploadResponse, error)
	Download(ctx context.Context, sess *Session, fileID uuid.UUID) (io.ReadCloser, *db_models.FileUpload, error)
	Delete(ctx context.Context, sess *Session, fileID uuid.UUID) error
	ListProjectFiles(ctx context.Context, sess *Session, projectID uuid.UUID, category *db_models.FileCategory) ([]response_models.FileUploadResponse, error)
}

type FileService struct {
	fileRepo repositories.FileRepository
	store    storage.ObjectStore
	perms    PermissionServiceInterface
	billing  BillingServiceInterface
}

func NewFileService(fileRepo repositories.FileRepository, store storage.ObjectStore, perms PermissionServiceInterface, billing BillingServiceInterface) FileServiceInterface {
	return &FileService{
		fileRepo: fileRepo,
		store:    store,
		perms:    perms,
		billing:  billing,
	}
}

func (s *FileService) ValidateFileUpload(ctx context.Context, req request_models.ValidateFileUploadRequest) (*response_models.ValidateFileResponse, error) {
	sanitized, err := ValidateUpload(req.FileName, req.FileSize, req.MimeType, db_models.FileCategory(req.Category))
	if err != nil {
		return nil, err
	}
	return &response_models.ValidateFileResponse{SanitizedName: sanitized}, nil
}

func (s *FileService) Upload(ctx context.Context, sess *Session, projectID uuid.UUID, category db_models.FileCategory, fileName, mimeType, description string, content []byte) (*response_models.FileUploadResponse, error) {
	caps, _, project, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanEditTasks {
		return nil, utils.ErrForbidden
	}

	sanitized, err := ValidateUpload(fileName, int64(len(content)), mimeType, category)
	if err != nil {
		return nil, err
	}

	// Storage-heavy uploads are gated on the producer's workspace, not
	// the uploader's: the producer pays for the project's storage.
	if category == db_models.CategorySessions || int64(len(content)) > FreeTierMaxUpload {
		pro, err := s.billing.HasProAccess(ctx, project.ProducerID)
		if err != nil {
			return nil, err
		}
		if !pro {
			return nil, utils.ErrProRequired
		}
	}

	key := fmt.Sprintf("projects/%s/%s/%s-%s", projectID, category, uuid.NewString(), sanitized)
	if err := storage.PutWithRetry(ctx, s.store, key, content, mimeType); err != nil {
		log.Printf("blob put for %s failed: %v", key, err)
		return nil, utils.ErrDatabaseError
	}

	file := &db_models.FileUpload{
		ProjectID:    projectID,
		Category:     category,
		StoragePath:  key,
		OriginalName: sanitized,
		SizeBytes:    int64(len(content)),
		MimeType:     mimeType,
		Description:  description,
		UploaderID:   sess.UserID,
	}
	if err := s.fileRepo.InsertWithNextVersion(ctx, file); err != nil {
		// the blob stays orphaned; the retention job sweeps aged objects
		log.Printf("file metadata insert failed, blob %s orphaned: %v", key, err)
		if err == utils.ErrVersionConflict {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	return fileToResponse(file), nil
}

func (s *FileService) Download(ctx context.Context, sess *Session, fileID uuid.UUID) (io.ReadCloser, *db_models.FileUpload, error) {
	file, err := s.fileRepo.FindById(ctx, fileID)
	if err != nil {
		log.Printf("file lookup failed: %v", err)
		return nil, nil, utils.ErrDatabaseError
	}
	if file == nil {
		return nil, nil, utils.ErrFileNotFound
	}

	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, file.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !caps.CanView {
		return nil, nil, utils.ErrForbidden
	}

	rc, err := s.store.Get(ctx, file.StoragePath)
	if err != nil {
		log.Printf("blob get for %s failed: %v", file.StoragePath, err)
		return nil, nil, utils.ErrFileNotFound
	}
	return rc, file, nil
}

func (s *FileService) Delete(ctx context.Context, sess *Session, fileID uuid.UUID) error {
	file, err := s.fileRepo.FindById(ctx, fileID)
	if err != nil {
		log.Printf("file lookup failed: %v", err)
		return utils.ErrDatabaseError
	}
	if file == nil {
		return utils.ErrFileNotFound
	}

	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, file.ProjectID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	if err := s.store.Delete(ctx, file.StoragePath); err != nil {
		log.Printf("blob delete for %s failed: %v", file.StoragePath, err)
	}
	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		log.Printf("file delete failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *FileService) ListProjectFiles(ctx context.Context, sess *Session, projectID uuid.UUID, category *db_models.FileCategory) ([]response_models.FileUploadResponse, error) {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	var files []db_models.FileUpload
	if category != nil {
		files, err = s.fileRepo.ListByProjectCategory(ctx, projectID, *category)
	} else {
		files, err = s.fileRepo.ListByProject(ctx, projectID)
	}
	if err != nil {
		log.Printf("file list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.FileUploadResponse, 0, len(files))
	for i := range files {
		out = append(out, *fileToResponse(&files[i]))
	}
	return out, nil
}

func fileToResponse(f *db_models.FileUpload) *response_models.FileUploadResponse {
	return &response_models.FileUploadResponse{
		ID:           f.ID.String(),
		Category:     string(f.Category),
		Version:      f.Version,
		OriginalName: f.OriginalName,
		SizeBytes:    f.SizeBytes,
		MimeType:     f.MimeType,
		Description:  f.Description,
		UploadedAt:   f.CreatedAt,
	}
}
