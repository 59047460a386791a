package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const auditPrefix = "audit:"

// AuditRecord is one durable trace of a link change or moderation
// outcome. Message bodies are never stored here.
type AuditRecord struct {
	ID     uuid.UUID
	Kind   string
	Detail string
	At     time.Time
}

type IAuditRepository interface {
	StoreAudit(record AuditRecord) error
	StoreBatch(records []AuditRecord) error
	RecentAudits(limit int) ([]AuditRecord, error)
}

// AuditRepository persists audit records in BadgerDB.
type AuditRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAuditRepository(db *badger.DB, log *slog.Logger) AuditRepository {
	return AuditRepository{db: db, log: log}
}

// StoreAudit writes one record. The key embeds a 19-digit zero padded
// timestamp so lexicographical order is chronological, with the UUID as
// a collision disconnector.
func (r AuditRepository) StoreAudit(record AuditRecord) error {
	key := fmt.Sprintf("%s%019d:%s", auditPrefix, record.At.UnixNano(), record.ID)
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// StoreBatch writes a batch through Badger's write batch, which splits
// into as many transactions as the batch needs.
func (r AuditRepository) StoreBatch(records []AuditRecord) error {
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	for _, record := range records {
		key := fmt.Sprintf("%s%019d:%s", auditPrefix, record.At.UnixNano(), record.ID)
		bytes, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := wb.Set([]byte(key), bytes); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// RecentAudits returns up to limit records, newest first.
func (r AuditRepository) RecentAudits(limit int) ([]AuditRecord, error) {
	var records []AuditRecord
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(auditPrefix)
		// Reverse iteration needs a seek key past every audit entry.
		seek := append(append([]byte(nil), prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record AuditRecord
				if err := json.Unmarshal(val, &record); err != nil {
					r.log.Warn("Skipping corrupt audit entry", "error", err)
					return nil
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}
