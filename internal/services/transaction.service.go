package services

import (
	"fmt"

	"gamestore/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

// TransactionService serializes access to the in-memory store. Execute holds the write
// lock, Query the read lock.
type TransactionService struct {
	store *database.Store
	log   logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		store: db.Store,
		log:   logger.New("TransactionService"),
	}
}

// Execute runs fn under the store's write lock. A panic inside fn is converted to an
// error; changes made before the panic are kept since the store has no undo log.
func (ts *TransactionService) Execute(fn func() error) (err error) {
	log := ts.log.Function("Execute")

	ts.store.Lock()
	defer ts.store.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = log.ErrMsg("panic during transaction: " + fmt.Sprintf("%v", r))
		}
	}()

	return fn()
}

// Query runs fn under the store's read lock. fn must not mutate records.
func (ts *TransactionService) Query(fn func() error) (err error) {
	log := ts.log.Function("Query")

	ts.store.RLock()
	defer ts.store.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			err = log.ErrMsg("panic during query: " + fmt.Sprintf("%v", r))
		}
	}()

	return fn()
}
