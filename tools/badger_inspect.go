package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"chatmux/domain"
	"chatmux/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

// badger_inspect dumps the relay's persisted state as a table. It opens
// the database read-only, so it is safe against a running relay.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "link:", "Prefix to scan (link: or audit:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Timestamp", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(toRow(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func toRow(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "link:"):
		var link domain.ChannelLink
		if err := json.Unmarshal(val, &link); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return []string{key, "LINK", "--:--:--", "<corrupt>"}
		}
		return []string{key, "LINK", "--:--:--", link.String()}

	case strings.HasPrefix(key, "audit:"):
		var record repositories.AuditRecord
		if err := json.Unmarshal(val, &record); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return []string{key, "AUDIT", "--:--:--", "<corrupt>"}
		}
		return []string{key, strings.ToUpper(record.Kind),
			record.At.Format("15:04:05"), record.Detail}

	default:
		return []string{key, "RAW", "--:--:--", "Size: " + strconv.Itoa(len(val)) + " bytes"}
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// Corruption needs one write-mode open to truncate the value log.
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
