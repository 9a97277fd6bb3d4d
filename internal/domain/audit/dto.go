package audit

import "strings"

type ListFilter struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

func (f *ListFilter) Validate() error {
	f.EntityType = strings.TrimSpace(f.EntityType)
	f.EntityID = strings.TrimSpace(f.EntityID)
	if f.EntityType == "" || f.EntityID == "" {
		return ErrEntityRequired
	}
	return nil
}
