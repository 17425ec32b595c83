package service

import "gorm.io/gorm"

// collectionOrder is the display sort for every ordered child collection.
// Gaps in sort_order are permitted after removals; creation order breaks
// ties through the id column.
const collectionOrder = "sort_order asc, id asc"

// nextSortOrder returns the append position for a new child of the page.
func nextSortOrder(tx *gorm.DB, model interface{}, pageID uint) (int, error) {
	var maxSort int
	if err := tx.Model(model).
		Where("page_id = ?", pageID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxSort).Error; err != nil {
		return 0, err
	}
	return maxSort + 1, nil
}

// reorderChildren rewrites sort_order to match the given id sequence. Every
// id must belong to the page; duplicates and zero ids are rejected.
func reorderChildren(gdb *gorm.DB, model interface{}, pageID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return ErrOrderInvalid
		}
		if _, ok := seen[id]; ok {
			return ErrOrderInvalid
		}
		seen[id] = struct{}{}
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for idx, id := range ids {
			result := tx.Model(model).
				Where("id = ? AND page_id = ?", id, pageID).
				Update("sort_order", idx)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRecordNotFound
			}
		}
		return nil
	})
}
