package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gowebpki/jcs"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/provider"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

// BackupFormatVersion is written into every backup document. Restores
// accept documents of the same major version.
const BackupFormatVersion = "1.0.0"

//go:embed backup.schema.json
var backupSchemaJSON string

const backupSchemaURL = "https://hotel-management.local/schemas/backup.schema.json"

// BackupDocument is the on-storage format of a database backup.
type BackupDocument struct {
	Version   string                     `json:"version"`
	CreatedAt time.Time                  `json:"created_at"`
	Checksum  string                     `json:"checksum"`
	Tables    map[string]json.RawMessage `json:"tables"`
}

type BackupService struct {
	Repo     repo.BackupRepository
	Storage  provider.ObjectStore
	Activity *ActivityService
	Logger   *logrus.Logger
	Prefix   string

	schema *jsonschema.Schema
	now    func() time.Time
}

func NewBackupService(r repo.BackupRepository, storage provider.ObjectStore, prefix string, logger *logrus.Logger) (*BackupService, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(backupSchemaURL, strings.NewReader(backupSchemaJSON)); err != nil {
		return nil, fmt.Errorf("load backup schema: %w", err)
	}
	schema, err := c.Compile(backupSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile backup schema: %w", err)
	}
	if prefix == "" {
		prefix = "backups"
	}
	return &BackupService{
		Repo:    r,
		Storage: storage,
		Logger:  logger,
		Prefix:  strings.Trim(prefix, "/"),
		schema:  schema,
		now:     time.Now,
	}, nil
}

// tablesChecksum hashes the canonical (RFC 8785) form of the tables so
// re-encoding the document does not change it.
func tablesChecksum(tables map[string]json.RawMessage) (string, error) {
	raw, err := json.Marshal(tables)
	if err != nil {
		return "", err
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func (s *BackupService) objectName(t time.Time) string {
	return path.Join(s.Prefix, t.UTC().Format("20060102T150405Z")+".json")
}

// Create exports the backed-up tables and uploads them as one document.
// It returns the object name.
func (s *BackupService) Create(ctx context.Context, actor Actor) (string, error) {
	if s.Storage == nil {
		return "", ErrStorageDisabled
	}
	tables, err := s.Repo.Export(ctx, repo.BackupTables)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	sum, err := tablesChecksum(tables)
	if err != nil {
		return "", err
	}
	now := s.now().UTC()
	doc := BackupDocument{Version: BackupFormatVersion, CreatedAt: now, Checksum: sum, Tables: tables}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	object := s.objectName(now)
	if _, err := s.Storage.Put(ctx, object, "application/json", body); err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	s.Activity.Record(ctx, actor, "backup.create", "backup", object, map[string]any{"bytes": len(body)})
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"object": object, "bytes": len(body)}).Info("backup created")
	}
	return object, nil
}

// List returns backup object names, newest first.
func (s *BackupService) List(ctx context.Context) ([]string, error) {
	if s.Storage == nil {
		return nil, ErrStorageDisabled
	}
	names, err := s.Storage.List(ctx, s.Prefix+"/")
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if strings.HasSuffix(n, ".json") {
			out = append(out, n)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

// Decode validates a backup document: schema, format version and checksum.
func (s *BackupService) Decode(body []byte) (*BackupDocument, error) {
	var generic any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupInvalid, err)
	}
	if err := s.schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupInvalid, err)
	}
	var doc BackupDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupInvalid, err)
	}
	v, err := semver.NewVersion(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q", ErrBackupInvalid, doc.Version)
	}
	if v.Major() != semver.MustParse(BackupFormatVersion).Major() {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrBackupInvalid, v)
	}
	sum, err := tablesChecksum(doc.Tables)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupInvalid, err)
	}
	if sum != doc.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrBackupInvalid)
	}
	for name := range doc.Tables {
		if !knownBackupTable(name) {
			return nil, fmt.Errorf("%w: unknown table %q", ErrBackupInvalid, name)
		}
	}
	return &doc, nil
}

func knownBackupTable(name string) bool {
	for _, t := range repo.BackupTables {
		if t == name {
			return true
		}
	}
	return false
}

// Restore replaces the backed-up tables with the content of object.
func (s *BackupService) Restore(ctx context.Context, actor Actor, object string) error {
	if s.Storage == nil {
		return ErrStorageDisabled
	}
	object = strings.TrimPrefix(object, "/")
	if !strings.HasPrefix(object, s.Prefix+"/") || !strings.HasSuffix(object, ".json") || strings.Contains(object, "..") {
		return ErrBackupNotFound
	}
	body, err := s.Storage.Get(ctx, object)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBackupNotFound
		}
		return err
	}
	doc, err := s.Decode(body)
	if err != nil {
		return err
	}
	if err := s.Repo.Restore(ctx, repo.BackupTables, doc.Tables); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	s.Activity.Record(ctx, actor, "backup.restore", "backup", object, map[string]any{"created_at": doc.CreatedAt})
	if s.Logger != nil {
		s.Logger.WithField("object", object).Warn("database restored from backup")
	}
	return nil
}
