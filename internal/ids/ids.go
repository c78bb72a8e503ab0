// Package ids generates time-ordered document identifiers such as
// "TX-1834529003477286912".
package ids

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	googleuuid "github.com/google/uuid"
)

// Document prefixes.
const (
	PrefixSale     = "TX"
	PrefixPurchase = "PUR"
	PrefixReturn   = "RET"
	PrefixExpense  = "EXP"
	PrefixLogin    = "LOG"
	PrefixProduct  = "PRD"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// SetNode selects the snowflake node number (0-1023). It must be called
// before the first New; later calls have no effect.
func SetNode(n int64) {
	nodeOnce.Do(func() {
		node, _ = snowflake.NewNode(n)
	})
}

// New returns prefix + "-" + a snowflake ID. Snowflake IDs embed the
// millisecond timestamp, so IDs from one node sort by creation time.
// If the node cannot be created the suffix falls back to a random UUID.
func New(prefix string) string {
	SetNode(1)
	if node == nil {
		return prefix + "-" + googleuuid.New().String()
	}
	return prefix + "-" + node.Generate().String()
}
