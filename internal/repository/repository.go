package repository

import "github.com/dastanaron/ffmarks/internal/models"

// Row is an archived record together with its depth in the tree (root = 0).
// Rows are stored and listed in pre-order.
type Row struct {
	Depth  int
	Record models.Record
}

// RecordRepository defines operations for archived bookmark records
type RecordRepository interface {
	// Replace deletes every stored record and saves rows in order, all in
	// one transaction. A row with a GUID replaces an earlier row with the
	// same GUID.
	Replace(rows []Row) error
	// List returns every row in pre-order
	List() ([]Row, error)
	GetByGUID(guid string) (*models.Record, error)
	Children(parentGUID string) ([]models.Record, error)
	Count() (int, error)
}

// Repository combines all repositories
type Repository interface {
	Records() RecordRepository
	Close() error
}
