package models

import "strings"

// VendorProfile представляет профиль поставщика. Профиль создаётся вне ядра
// и доступен ему только на чтение.
type VendorProfile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Experience     int      `json:"experience"`
	Specialization []string `json:"specialization"`
	Location       string   `json:"location"`
}

// VendorProfileRequest представляет структуру запроса для создания профиля поставщика.
type VendorProfileRequest struct {
	Name           string   `json:"name" validate:"required"`
	Experience     int      `json:"experience" validate:"gte=0"`
	Specialization []string `json:"specialization" validate:"required,min=1,dive,required"`
	Location       string   `json:"location" validate:"required"`
}

// NormalizeSpecialization приводит теги специализации к нижнему регистру без
// пробелов по краям и отбрасывает пустые.
func NormalizeSpecialization(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}
