package models

import "time"

// FolderType is the type value Firefox assigns to containers.
// Any other type (url, separator) is treated as a link.
const FolderType = "text/x-moz-place-container"

// Record holds the attributes of one bookmark or folder from a Firefox
// JSON backup. Optional attributes are nil when absent from the source.
type Record struct {
	GUID         string
	ParentGUID   *string // nil only for the root
	Title        string
	Index        *int
	DateAdded    *int64 // microseconds since epoch
	LastModified *int64 // microseconds since epoch
	ID           *int64
	TypeCode     *int
	Type         string
	Root         *string // special top-level containers only (menu, toolbar...)
	URI          *string
}

// IsFolder reports whether the record is a container
func (r *Record) IsFolder() bool {
	return r.Type == FolderType
}

// HasParent reports whether a parent GUID was assigned
func (r *Record) HasParent() bool {
	return r.ParentGUID != nil
}

// Link returns the URI or an empty string
func (r *Record) Link() string {
	if r.URI == nil {
		return ""
	}
	return *r.URI
}

// Added converts DateAdded to a time. The zero time is returned when absent.
func (r *Record) Added() time.Time {
	return fromMicros(r.DateAdded)
}

// Modified converts LastModified to a time. The zero time is returned when absent.
func (r *Record) Modified() time.Time {
	return fromMicros(r.LastModified)
}

func fromMicros(v *int64) time.Time {
	if v == nil {
		return time.Time{}
	}
	return time.UnixMicro(*v)
}
