package common

import (
	"os"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a time-ordered unique int64 id.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		nodeID := cast.ToInt64(os.Getenv("MHRHCI_NODE_ID")) % 1024
		node, err := snowflake.NewNode(nodeID)
		if err != nil {
			node, _ = snowflake.NewNode(0)
		}
		snowflakeNode = node
	})
	return snowflakeNode.Generate().Int64()
}

// UUID returns an opaque token string suitable for capability links.
func UUID() string {
	return uuid.NewString()
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
