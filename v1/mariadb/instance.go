package mariadb

import "sync"

// Instance holds the one shared connection of an application. It starts uninitialized;
// Initialize opens the connection once and Get hands it out.
//
//	var accounts = mariadb.NewInstance()
//
//	func main() {
//		if err := accounts.Initialize(cfg); err != nil {
//			log.Fatal(err)
//		}
//		db, _ := accounts.Get()
//		...
//	}
type Instance struct {
	mu sync.Mutex
	db *MariaDB
}

// NewInstance returns an uninitialized Instance.
func NewInstance() *Instance {
	return &Instance{}
}

// Initialize opens the connection described by cfg. Once it has succeeded further calls
// return nil without reconnecting, even with a different cfg. When it fails the Instance
// stays uninitialized and Initialize may be called again.
func (i *Instance) Initialize(cfg Config, opts ...Option) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.db != nil {
		return nil
	}

	db, err := NewMariaDB(cfg, opts...)
	if err != nil {
		return err
	}
	i.db = db
	return nil
}

// Get returns the connection, or ErrNotInitialized before a successful Initialize.
func (i *Instance) Get() (*MariaDB, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.db == nil {
		return nil, ErrNotInitialized
	}
	return i.db, nil
}

// IsInitialized reports whether Initialize has succeeded.
func (i *Instance) IsInitialized() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.db != nil
}

// Close closes the connection. The Instance stays initialized: Get keeps returning the
// closed handle, whose methods fail with ErrNotInitialized, and Initialize remains a no-op.
func (i *Instance) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.db == nil {
		return nil
	}
	return i.db.Close()
}
