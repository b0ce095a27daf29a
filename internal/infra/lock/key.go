package lock

import "fmt"

// ProfessionalKey ключ блокировки расписания специалиста
func ProfessionalKey(tenantID, professionalID int64) string {
	return fmt.Sprintf("tenant:%d:professional:%d", tenantID, professionalID)
}
