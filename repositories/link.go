//go:generate go run go.uber.org/mock/mockgen -source=link.go -destination=../mocks/mock_link_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"chatmux/domain"

	"github.com/dgraph-io/badger/v4"
)

const linkPrefix = "link:"

type ILinkRepository interface {
	SaveLink(link domain.ChannelLink) error
	DeleteLink(a, b domain.ChannelRef) error
	LoadLinks() ([]domain.ChannelLink, error)
}

// LinkRepository persists the channel-link table in BadgerDB so links
// survive restarts.
type LinkRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewLinkRepository(db *badger.DB, log *slog.Logger) LinkRepository {
	return LinkRepository{db: db, log: log}
}

// linkKey is order-independent: the two endpoints are canonicalized so
// saving (a,b) and deleting (b,a) address the same entry.
func linkKey(a, b domain.ChannelRef) []byte {
	first, second := a.String(), b.String()
	if second < first {
		first, second = second, first
	}
	return []byte(fmt.Sprintf("%s%s|%s", linkPrefix, first, second))
}

func (r LinkRepository) SaveLink(link domain.ChannelLink) error {
	bytes, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(linkKey(link.From, link.To), bytes)
	})
}

func (r LinkRepository) DeleteLink(a, b domain.ChannelRef) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(linkKey(a, b))
	})
}

// LoadLinks scans the link prefix and rebuilds the table. A corrupt
// entry is logged and skipped rather than blocking startup.
func (r LinkRepository) LoadLinks() ([]domain.ChannelLink, error) {
	var links []domain.ChannelLink
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(linkPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var link domain.ChannelLink
				if err := json.Unmarshal(val, &link); err != nil {
					r.log.Warn("Skipping corrupt link entry",
						"key", string(item.Key()), "error", err)
					return nil
				}
				links = append(links, link)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return links, err
}
