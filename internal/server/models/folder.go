package models

import "time"

// Folder is a node in an account's hierarchy. ParentID is nil for folders
// that sit directly under the account root; otherwise it references another
// folder owned by the same account. Parent chains never cycle.
type Folder struct {
	ID        string
	AccountID string
	ParentID  *string
	Name      string
	CreatedAt time.Time
}
