package persistence

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"machineMonitor/internal/core/domain"
)

var alteracoesBucket = []byte("alteracoes")

// Historico keeps every detected identity change in a bbolt file, keyed by
// the change time so iteration is chronological.
type Historico struct {
	db  *bolt.DB
	log zerolog.Logger
}

// AbrirHistorico opens or creates the database at path.
func AbrirHistorico(path string, log zerolog.Logger) (*Historico, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(alteracoesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating %s bucket: %w", alteracoesBucket, err)
	}

	return &Historico{db: db, log: log}, nil
}

func (h *Historico) Close() error {
	return h.db.Close()
}

// Registrar stores one change record.
func (h *Historico) Registrar(reg domain.RegistroAlteracao) error {
	data, err := msgpack.Marshal(&reg)
	if err != nil {
		return fmt.Errorf("encoding change record: %w", err)
	}

	return h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(alteracoesBucket)
		key := chaveMomento(reg.Momento)
		// Two records in the same nanosecond keep both.
		for n := 1; b.Get(key) != nil; n++ {
			key = chaveMomento(reg.Momento.Add(time.Duration(n)))
		}
		return b.Put(key, data)
	})
}

// listar returns all records, oldest first.
func (h *Historico) listar() ([]domain.RegistroAlteracao, error) {
	var registros []domain.RegistroAlteracao
	err := h.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(alteracoesBucket).ForEach(func(k, v []byte) error {
			var reg domain.RegistroAlteracao
			if err := msgpack.Unmarshal(v, &reg); err != nil {
				h.log.Warn().Err(err).Hex("key", k).Msg("Registro corrompido ignorado")
				return nil
			}
			registros = append(registros, reg)
			return nil
		})
	})
	return registros, err
}

// Ultimo returns the most recent record, or nil when the history is empty.
func (h *Historico) Ultimo() (*domain.RegistroAlteracao, error) {
	var ultimo *domain.RegistroAlteracao
	err := h.db.View(func(tx *bolt.Tx) error {
		_, v := tx.Bucket(alteracoesBucket).Cursor().Last()
		if v == nil {
			return nil
		}
		var reg domain.RegistroAlteracao
		if err := msgpack.Unmarshal(v, &reg); err != nil {
			return fmt.Errorf("decoding change record: %w", err)
		}
		ultimo = &reg
		return nil
	})
	return ultimo, err
}

func chaveMomento(t time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return key
}
