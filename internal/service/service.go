package service

import (
	"errors"
	"strings"

	"github.com/dastanaron/ffmarks/internal/models"
	"github.com/dastanaron/ffmarks/internal/repository"
	"github.com/dastanaron/ffmarks/internal/tree"
)

// RecordService provides business logic for archived records
type RecordService struct {
	repo repository.Repository
}

// NewRecordService creates a new record service
func NewRecordService(repo repository.Repository) *RecordService {
	return &RecordService{repo: repo}
}

// ErrEmptyArchive is returned when a tree is requested from an empty archive
var ErrEmptyArchive = errors.New("archive is empty, run import first")

// Import replaces the archive with every record of t in pre-order.
// Either every record is stored or the archive is left unchanged.
// Returns the number of records stored.
func (s *RecordService) Import(t *tree.Tree) (int, error) {
	var rows []repository.Row
	for depth, n := range t.Walk() {
		rows = append(rows, repository.Row{Depth: depth, Record: n.Record})
	}
	if err := s.repo.Records().Replace(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ListAll returns all records in pre-order
func (s *RecordService) ListAll() ([]models.Record, error) {
	rows, err := s.repo.Records().List()
	if err != nil {
		return nil, err
	}
	records := make([]models.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].Record
	}
	return records, nil
}

// Tree rebuilds the imported bookmark tree from the archive
func (s *RecordService) Tree() (*tree.Tree, error) {
	rows, err := s.repo.Records().List()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyArchive
	}

	root := &tree.Tree{Record: rows[0].Record}
	path := []*tree.Tree{root}
	for _, row := range rows[1:] {
		depth := min(max(row.Depth, 1), len(path))
		node := &tree.Tree{Record: row.Record}
		parent := path[depth-1]
		parent.Children = append(parent.Children, node)
		path = append(path[:depth], node)
	}
	return root, nil
}

// Search filters records by query string over title and URI
func (s *RecordService) Search(query string) ([]models.Record, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return all, nil
	}

	return Filter(all, query), nil
}

// Children returns the direct children of a folder
func (s *RecordService) Children(parentGUID string) ([]models.Record, error) {
	return s.repo.Records().Children(parentGUID)
}

// GetByGUID returns a record by GUID, nil when missing
func (s *RecordService) GetByGUID(guid string) (*models.Record, error) {
	return s.repo.Records().GetByGUID(guid)
}

// Filter keeps records whose title or URI contains query, case-insensitively
func Filter(records []models.Record, query string) []models.Record {
	queryLower := strings.ToLower(query)
	var filtered []models.Record
	for _, r := range records {
		if Matches(&r, queryLower) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Matches reports whether r contains an already lower-cased query
func Matches(r *models.Record, queryLower string) bool {
	return strings.Contains(strings.ToLower(r.Title), queryLower) ||
		strings.Contains(strings.ToLower(r.Link()), queryLower)
}
