package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// EncodeServiceIDs renders a selection the way it is stored on the row: "3,1,7".
func EncodeServiceIDs(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}

// ParseServiceIDs reads a stored selection back. Blank items are skipped.
func ParseServiceIDs(s string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid service id %q", part)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

// ServiceNames joins the names of ids in selection order. Ids with no
// matching service are left out.
func ServiceNames(ids []uint, services []models.Service) string {
	byID := make(map[uint]string, len(services))
	for _, s := range services {
		byID[s.ID] = s.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}
