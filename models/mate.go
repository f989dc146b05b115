package models

import (
	"strings"
	"time"
)

// AvailableDays is a mate's day-of-week booking policy.
type AvailableDays string

const (
	AvailableAll      AvailableDays = "all"
	AvailableWeekdays AvailableDays = "weekdays"
	AvailableWeekends AvailableDays = "weekends"
)

// IsValid reports whether d is one of the known policies.
func (d AvailableDays) IsValid() bool {
	switch d {
	case AvailableAll, AvailableWeekdays, AvailableWeekends:
		return true
	}
	return false
}

// Mate is the profile of a user who offers their time.
type Mate struct {
	ID             string        `bson:"id" json:"id"`
	Name           string        `bson:"name" json:"name"`
	SurName        string        `bson:"surName" json:"surName"`
	Nickname       string        `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Email          string        `bson:"email" json:"email"`
	PasswordHash   string        `bson:"passwordHash" json:"-"`
	Role           string        `bson:"role" json:"role"`
	PriceRate      float64       `bson:"priceRate" json:"priceRate"`
	Interest       []string      `bson:"interest" json:"interest"`
	Skill          []string      `bson:"skill" json:"skill"`
	Introduce      string        `bson:"introduce" json:"introduce"`
	City           string        `bson:"city" json:"city"`
	AvailableDays  AvailableDays `bson:"availableDays" json:"availableDays"`
	AvailableTime  []string      `bson:"availableTime" json:"availableTime"`
	ReviewRate     float64       `bson:"reviewRate" json:"reviewRate"`
	TransactionIDs []string      `bson:"transactionIds" json:"-"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// IsBookingReady reports whether every field a renter needs before booking is filled in.
func (m *Mate) IsBookingReady() bool {
	return len(nonBlank(m.Skill)) > 0 &&
		m.AvailableDays != "" &&
		len(nonBlank(m.AvailableTime)) > 0 &&
		len(nonBlank(m.Interest)) > 0 &&
		strings.TrimSpace(m.Introduce) != "" &&
		m.PriceRate > 0 &&
		strings.TrimSpace(m.City) != ""
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// MateProfile is the public view of a mate shown to renters.
type MateProfile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	SurName       string        `json:"surName"`
	Nickname      string        `json:"nickname,omitempty"`
	Interest      []string      `json:"interest"`
	Skill         []string      `json:"skill"`
	Introduce     string        `json:"introduce"`
	City          string        `json:"city"`
	PriceRate     float64       `json:"priceRate"`
	ReviewRate    float64       `json:"reviewRate"`
	AvailableDays AvailableDays `json:"availableDays"`
	AvailableTime []string      `json:"availableTime"`
}

// PublicProfile projects the mate onto its renter-facing fields.
func (m *Mate) PublicProfile() MateProfile {
	return MateProfile{
		ID:            m.ID,
		Name:          m.Name,
		SurName:       m.SurName,
		Nickname:      m.Nickname,
		Interest:      m.Interest,
		Skill:         m.Skill,
		Introduce:     m.Introduce,
		City:          m.City,
		PriceRate:     m.PriceRate,
		ReviewRate:    m.ReviewRate,
		AvailableDays: m.AvailableDays,
		AvailableTime: m.AvailableTime,
	}
}

// MateProfileUpdate carries the editable fields of a mate's own profile.
type MateProfileUpdate struct {
	Name          string        `json:"name"`
	SurName       string        `json:"surName"`
	Nickname      string        `json:"nickname"`
	Introduce     string        `json:"introduce" binding:"required"`
	Skill         string        `json:"skill" binding:"required"`
	Interest      string        `json:"interest" binding:"required"`
	City          string        `json:"city" binding:"required"`
	AvailableDays AvailableDays `json:"availableDays" binding:"required,oneof=all weekdays weekends"`
	AvailableTime []string      `json:"availableTime" binding:"required,len=2,dive,clock"`
	PriceRate     int           `json:"priceRate" binding:"required,gt=0"`
}
