package store

import (
	"fmt"

	"gorm.io/gorm"

	"maintenance-backend/internal/model"
)

// adjustTypeCount shifts the denormalised machine counter of a type. It must
// run inside the transaction that creates, re-types or deletes the machine;
// an error here rolls that write back.
func adjustTypeCount(tx *gorm.DB, typeID string, delta int) error {
	res := tx.Model(&model.MachineType{}).
		Where("id = ?", typeID).
		UpdateColumn("total_machines", gorm.Expr("total_machines + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust machine count of type %s: %w", typeID, res.Error)
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("failed to adjust machine count of type %s: type row missing", typeID)
	}
	return nil
}

// moveTypeCount moves one machine from oldTypeID to newTypeID. Equal ids are a no-op.
func moveTypeCount(tx *gorm.DB, oldTypeID, newTypeID string) error {
	if oldTypeID == newTypeID {
		return nil
	}
	if err := adjustTypeCount(tx, oldTypeID, -1); err != nil {
		return err
	}
	return adjustTypeCount(tx, newTypeID, 1)
}
