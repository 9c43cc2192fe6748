package frame

import "fmt"

// MaxSchemaAccounts is the maximum number of account descriptors in a
// single schema. It bounds every per-instruction table in the engine, so
// loading never allocates lookup structures.
const MaxSchemaAccounts = 32

type bumpEntry struct {
	name string
	bump uint8
}

// BumpTable records the bump seed of every derived account of an
// instruction, keyed by account name in declaration order. Capacity is
// fixed at MaxSchemaAccounts and lookups are linear scans.
type BumpTable struct {
	entries [MaxSchemaAccounts]bumpEntry
	count   int
}

// put records a bump. Each name is written exactly once per load; a second
// write is a loader bug.
func (t *BumpTable) put(name string, bump uint8) {
	if _, ok := t.Get(name); ok {
		panic(fmt.Sprintf("bump for account %q recorded twice", name))
	}
	if t.count == len(t.entries) {
		panic("bump table capacity exceeded")
	}

	t.entries[t.count] = bumpEntry{
		name: name,
		bump: bump,
	}
	t.count++
}

// Get returns the bump recorded for the named account.
func (t *BumpTable) Get(name string) (uint8, bool) {
	for i := 0; i < t.count; i++ {
		if t.entries[i].name == name {
			return t.entries[i].bump, true
		}
	}

	return 0, false
}

// Len returns the number of recorded bumps.
func (t *BumpTable) Len() int {
	return t.count
}
