package domain

import (
	"errors"
	"strings"
	"time"
)

// Record is the organization metadata record. NormalizedName is the uniqueness
// key; PartitionKey is derived from it and names the tenant's data partition;
// AdminID references the single owning admin account.
type Record struct {
	NormalizedName string
	DisplayName    string
	PartitionKey   string
	AdminID        string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// partitionPrefix namespaces tenant partitions in the master database.
const partitionPrefix = "org_"

// NormalizeName returns the canonical form of an organization name: trimmed
// and lowercased. The result is the registry's uniqueness key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PartitionKey derives the partition key for a normalized name: the "org_"
// prefix plus the name with whitespace runs replaced by underscores. The
// derivation is deterministic, so equal names always map to the same partition.
func PartitionKey(normalizedName string) string {
	return partitionPrefix + strings.Join(strings.Fields(normalizedName), "_")
}

// Validate validates the record for persistence. Returns an error describing the first validation failure.
func (r *Record) Validate() error {
	if r.NormalizedName == "" {
		return errors.New("normalized name is required")
	}
	if r.PartitionKey == "" {
		return errors.New("partition key is required")
	}
	if r.AdminID == "" {
		return errors.New("admin id is required")
	}
	return nil
}
