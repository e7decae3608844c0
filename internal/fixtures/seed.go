// Package fixtures ships the bootstrap database used on first run, when the
// store holds no snapshot yet.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/demipay/demipay/pkg/ledger"
)

//go:embed seed.json
var seedJSON []byte

// SeedDatabase parses the embedded seed document into a ledger database.
// Each call returns a fresh copy; callers are free to mutate it.
func SeedDatabase() (*ledger.Database, error) {
	var db ledger.Database
	if err := json.Unmarshal(seedJSON, &db); err != nil {
		return nil, fmt.Errorf("parsing embedded seed database: %w", err)
	}
	return &db, nil
}
