// Package storage provides read access to the model artifacts the form
// consumes at startup. Artifacts come either as loose files or as a single
// BoltDB bundle holding the model, the scaler, the feature column list and a
// manifest of their digests.
//
// The running form only ever opens bundles read-only; PackBundle is used by
// the packaging command.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"
)

const (
	artifactsBucket = "artifacts" // Bucket name for all artifact blobs

	keyModel    = "model"
	keyScaler   = "scaler"
	keyColumns  = "columns"
	keyManifest = "manifest"
)

// Artifacts holds the raw serialized artifacts.
type Artifacts struct {
	Model    []byte
	Scaler   []byte
	Columns  []byte
	Manifest Manifest
}

// Manifest describes where a set of artifacts came from.
type Manifest struct {
	Source    string            `json:"source"`
	CreatedAt time.Time         `json:"created_at"`
	Digests   map[string]string `json:"digests"`
}

// ReadDir reads loose artifact files.
func ReadDir(modelPath, scalerPath, columnsPath string) (*Artifacts, error) {
	model, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	scaler, err := os.ReadFile(scalerPath)
	if err != nil {
		return nil, fmt.Errorf("read scaler: %w", err)
	}
	columns, err := os.ReadFile(columnsPath)
	if err != nil {
		return nil, fmt.Errorf("read feature columns: %w", err)
	}

	a := &Artifacts{Model: model, Scaler: scaler, Columns: columns}
	a.Manifest = Manifest{Source: modelPath, Digests: a.digests()}
	if info, err := os.Stat(modelPath); err == nil {
		a.Manifest.CreatedAt = info.ModTime()
	}
	return a, nil
}

func (a *Artifacts) digests() map[string]string {
	return map[string]string{
		keyModel:   digest(a.Model),
		keyScaler:  digest(a.Scaler),
		keyColumns: digest(a.Columns),
	}
}

// Verify checks the blobs against the manifest digests.
func (a *Artifacts) Verify() error {
	for key, want := range a.Manifest.Digests {
		var got string
		switch key {
		case keyModel:
			got = digest(a.Model)
		case keyScaler:
			got = digest(a.Scaler)
		case keyColumns:
			got = digest(a.Columns)
		default:
			return fmt.Errorf("manifest lists unknown artifact %q", key)
		}
		if got != want {
			return fmt.Errorf("artifact %s digest mismatch: manifest %s, content %s", key, want, got)
		}
	}
	return nil
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// PackBundle writes artifacts into a new BoltDB bundle at path.
func PackBundle(path string, a *Artifacts) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("bundle %s already exists", path)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	manifest := a.Manifest
	manifest.Digests = a.digests()
	if manifest.CreatedAt.IsZero() {
		manifest.CreatedAt = time.Now().UTC()
	}
	meta, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(artifactsBucket))
		if err != nil {
			return fmt.Errorf("create artifacts bucket: %w", err)
		}
		for key, value := range map[string][]byte{
			keyModel:    a.Model,
			keyScaler:   a.Scaler,
			keyColumns:  a.Columns,
			keyManifest: meta,
		} {
			if err := b.Put([]byte(key), value); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
		}
		return nil
	})
}

// Bundle is a read-only BoltDB artifact bundle.
type Bundle struct {
	db *bbolt.DB
}

// OpenBundle opens an existing bundle read-only.
func OpenBundle(path string) (*Bundle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}
	db, err := bbolt.Open(path, 0o400, &bbolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	return &Bundle{db: db}, nil
}

// Close closes the bundle. Closing twice is a no-op.
func (b *Bundle) Close() error {
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

// Artifacts reads every artifact and verifies it against the manifest.
func (b *Bundle) Artifacts() (*Artifacts, error) {
	a := &Artifacts{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(artifactsBucket))
		if bucket == nil {
			return fmt.Errorf("bundle has no %s bucket", artifactsBucket)
		}

		for key, dst := range map[string]*[]byte{
			keyModel:   &a.Model,
			keyScaler:  &a.Scaler,
			keyColumns: &a.Columns,
		} {
			v := bucket.Get([]byte(key))
			if v == nil {
				return fmt.Errorf("bundle is missing %s", key)
			}
			// Values are only valid inside the transaction.
			*dst = append([]byte(nil), v...)
		}

		meta := bucket.Get([]byte(keyManifest))
		if meta == nil {
			return fmt.Errorf("bundle is missing %s", keyManifest)
		}
		if err := json.Unmarshal(meta, &a.Manifest); err != nil {
			return fmt.Errorf("unmarshal manifest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.Verify(); err != nil {
		return nil, err
	}
	return a, nil
}

// ReadBundle opens, reads and closes a bundle.
func ReadBundle(path string) (*Artifacts, error) {
	b, err := OpenBundle(path)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return b.Artifacts()
}
