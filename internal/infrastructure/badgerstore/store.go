// Package badgerstore guarda el ámbito durable de la sesión ("recordarme") en Badger.
package badgerstore

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/hkdf"

	"github.com/jhoicas/Inventario-console/pkg/logger"
)

const (
	keyPrefix = "session/"
	hkdfInfo  = "inventario-console session store"
)

// Options configuración del almacén.
type Options struct {
	Path     string // directorio de Badger; ignorado con InMemory
	Secret   string // si no está vacío, los datos se cifran con una clave derivada (HKDF-SHA256)
	InMemory bool
	Log      *logger.Logger
}

// Store implementa session.Store sobre Badger.
type Store struct {
	db *badger.DB
}

// Open abre (o crea) el almacén.
func Open(opts Options) (*Store, error) {
	if !opts.InMemory && opts.Path == "" {
		return nil, fmt.Errorf("badgerstore: ruta vacía")
	}
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	bopts = bopts.WithLogger(badgerLogger{log.Named("badger")})
	if opts.Secret != "" {
		key, err := DeriveKey(opts.Secret)
		if err != nil {
			return nil, err
		}
		// Badger exige caché de índices cuando el cifrado está activo.
		bopts = bopts.WithEncryptionKey(key).WithIndexCacheSize(8 << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: abrir %q: %w", opts.Path, err)
	}
	return &Store{db: db}, nil
}

// DeriveKey clave AES-256 derivada del secreto configurado.
func DeriveKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("badgerstore: derivar clave: %w", err)
	}
	return key, nil
}

// Get lee una clave. ok=false si no existe.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("badgerstore: leer %s: %w", key, err)
	}
	return value, true, nil
}

// Set escribe una clave.
func (s *Store) Set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("badgerstore: escribir %s: %w", key, err)
	}
	return nil
}

// Delete borra una clave. Borrar una clave inexistente no es error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + key))
	})
	if err != nil {
		return fmt.Errorf("badgerstore: borrar %s: %w", key, err)
	}
	return nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// badgerLogger adapta el logger de la consola a la interfaz de Badger.
type badgerLogger struct {
	log *logger.Logger
}

func (l badgerLogger) Errorf(f string, args ...interface{})   { l.log.Error().Msgf(f, args...) }
func (l badgerLogger) Warningf(f string, args ...interface{}) { l.log.Warn().Msgf(f, args...) }
func (l badgerLogger) Infof(f string, args ...interface{})    { l.log.Debug().Msgf(f, args...) }
func (l badgerLogger) Debugf(f string, args ...interface{})   { l.log.Trace().Msgf(f, args...) }
