package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
)

// ServiceSelection decodes the "service" request field, which clients send
// as [1, 2], ["1", "2"], "1,2" or a single id.
type ServiceSelection []uint

func (s *ServiceSelection) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = nil
		return nil
	}

	switch b[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			id, err := parseServiceID(item)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		*s = ids
		return nil

	case '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		ids, err := domain.ParseServiceIDs(str)
		if err != nil {
			return err
		}
		*s = ids
		return nil
	}

	id, err := parseServiceID(b)
	if err != nil {
		return err
	}
	*s = ServiceSelection{id}
	return nil
}

func parseServiceID(raw json.RawMessage) (uint, error) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid service id %s", raw)
	}
	return uint(n), nil
}
